package praytimes

import (
	"errors"
	"testing"
)

func TestValidateDate(t *testing.T) {
	tests := []struct {
		y, m, d int
		ok      bool
	}{
		{2018, 9, 5, true},
		{2024, 2, 29, true},
		{2023, 2, 29, false},
		{1900, 2, 29, false},
		{2000, 2, 29, true},
		{2018, 4, 31, false},
		{2018, 12, 31, true},
		{2018, 13, 1, false},
		{2018, 0, 10, false},
		{2018, 1, 0, false},
		{2018, 1, 32, false},
	}
	for _, tt := range tests {
		err := ValidateDate(tt.y, tt.m, tt.d)
		if (err == nil) != tt.ok {
			t.Errorf("ValidateDate(%d, %d, %d) = %v, want ok=%v", tt.y, tt.m, tt.d, err, tt.ok)
			continue
		}
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ValidateDate(%d, %d, %d) error does not match ErrInvalidDate", tt.y, tt.m, tt.d)
		}
		var de *InvalidDateError
		if !errors.As(err, &de) || de.Month != tt.m || de.Day != tt.d {
			t.Errorf("error = %#v", err)
		}
	}
	if got := ValidateDate(2023, 2, 29).Error(); got != "invalid date 2023-02-29" {
		t.Errorf("Error() = %q", got)
	}
}

package praytimes

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is matched by errors.Is for every InvalidDateError.
var ErrInvalidDate = errors.New("invalid date")

// InvalidDateError reports a year, month and day that do not name a
// Gregorian calendar day.
type InvalidDateError struct {
	Year, Month, Day int
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %04d-%02d-%02d", e.Year, e.Month, e.Day)
}

func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// ValidateDate checks that year-month-day is a real calendar day. Compute
// does not call it; callers that want to fail fast on bad input should.
func ValidateDate(year, month, day int) error {
	if month < 1 || month > 12 || day < 1 {
		return &InvalidDateError{Year: year, Month: month, Day: day}
	}
	// Day 0 of the next month is the last day of this one.
	last := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		return &InvalidDateError{Year: year, Month: month, Day: day}
	}
	return nil
}

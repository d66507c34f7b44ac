package display

import (
	"strings"
	"testing"
)

// styled reports whether s wraps text in ANSI escape sequences.
func styled(s, text string) bool {
	return s != text && strings.HasPrefix(s, "\033[") && strings.Contains(s, text)
}

func withColor(t *testing.T) {
	t.Helper()
	SetEnabled(true)
	t.Cleanup(func() { SetEnabled(false) })
}

func TestStyle_Roles(t *testing.T) {
	withColor(t)

	tests := []struct {
		role Role
		fn   func(string) string
		sgr  string
	}{
		{Heading, Bold, "1"},
		{Muted, Gray, "90"},
		{Past, Dim, "2"},
		{Next, Accent, "36"},
		{Warning, Yellow, "33"},
	}

	for _, tt := range tests {
		got := Style(tt.role, "Fajr")
		if !styled(got, "Fajr") {
			t.Errorf("Style(%d) = %q, want ANSI wrapped", tt.role, got)
			continue
		}
		if !strings.Contains(got, tt.sgr) {
			t.Errorf("Style(%d) = %q, want SGR %s", tt.role, got, tt.sgr)
		}
		if short := tt.fn("Fajr"); short != got {
			t.Errorf("helper for role %d = %q, want %q", tt.role, short, got)
		}
	}
}

func TestStyle_PlainRoleIsUnstyled(t *testing.T) {
	withColor(t)
	if got := Style(Plain, "Isha"); got != "Isha" {
		t.Errorf("Style(Plain) = %q", got)
	}
}

func TestStyle_Disabled(t *testing.T) {
	SetEnabled(false)

	for _, fn := range []func(string) string{Bold, Gray, Dim, Accent, Yellow} {
		if got := fn("plain"); got != "plain" {
			t.Errorf("styling disabled, got %q", got)
		}
	}
}

func TestConfigure(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(func() { SetEnabled(false) })

	tests := []struct {
		mode    string
		want    bool
		wantErr bool
	}{
		{ColorAlways, true, false},
		{ColorNever, false, false},
		{ColorAuto, false, false},
		{"", false, false},
		{"rainbow", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			SetEnabled(false)
			err := Configure(tt.mode)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Configure(%q) error = %v, wantErr %v", tt.mode, err, tt.wantErr)
			}
			if !tt.wantErr && Enabled() != tt.want {
				t.Errorf("Configure(%q): Enabled() = %v, want %v", tt.mode, Enabled(), tt.want)
			}
		})
	}
}

func TestDetect_Env(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	t.Setenv("FORCE_COLOR", "1")
	if detect() {
		t.Error("NO_COLOR should win over FORCE_COLOR")
	}
}

package prayer

import (
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"
)

// Display modes accepted by FormatOutput.
const (
	FormatTimeRemaining      = "time-remaining"
	FormatNextPrayerTime     = "next-prayer-time"
	FormatNameAndTime        = "name-and-time"
	FormatNameAndRemaining   = "name-and-remaining"
	FormatShortNameAndTime   = "short-name-and-time"
	FormatShortNameAndRemain = "short-name-and-remaining"
	FormatCountdown          = "countdown"
	FormatFull               = "full"
)

// FormatData describes an upcoming prayer relative to now. It is the value
// custom templates are executed against.
type FormatData struct {
	Name      string // e.g. "Asr"
	ShortName string // e.g. "A"
	Time      string // e.g. "15:02" or "3:02 PM"
	Remaining string // e.g. "2h 15m"
	Countdown string // e.g. "02:15"
	Hours     int
	Minutes   int
	Tomorrow  bool // the prayer falls on a later calendar day than now
}

var modes = map[string]func(FormatData) string{
	FormatTimeRemaining:      func(d FormatData) string { return d.Remaining },
	FormatNextPrayerTime:     func(d FormatData) string { return d.Time },
	FormatNameAndTime:        func(d FormatData) string { return d.Name + " " + d.Time },
	FormatNameAndRemaining:   func(d FormatData) string { return d.Name + " " + d.Remaining },
	FormatShortNameAndTime:   func(d FormatData) string { return d.ShortName + " " + d.Time },
	FormatShortNameAndRemain: func(d FormatData) string { return d.ShortName + " " + d.Remaining },
	FormatCountdown:          func(d FormatData) string { return d.ShortName + " -" + d.Countdown },
	FormatFull:               func(d FormatData) string { return fmt.Sprintf("%s %s (%s)", d.Name, d.Time, d.Remaining) },
}

// templateFuncs are available to custom templates, e.g. {{upper .Name}}.
var templateFuncs = template.FuncMap{
	"upper": strings.ToUpper,
	"lower": strings.ToLower,
}

// Modes returns the names of the built-in display modes, sorted.
func Modes() []string {
	names := make([]string, 0, len(modes))
	for name := range modes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsTemplate reports whether mode is a custom Go template rather than a
// built-in mode name.
func IsTemplate(mode string) bool {
	return strings.Contains(mode, "{{")
}

// ValidFormat reports whether FormatOutput understands mode without falling
// back to name-and-time.
func ValidFormat(mode string) bool {
	_, ok := modes[mode]
	return ok || IsTemplate(mode)
}

// NewFormatData describes p as seen from now. timeFormat is a Go layout,
// "15:04" or "3:04 PM".
func NewFormatData(p Prayer, now time.Time, timeFormat string) FormatData {
	d := TimeRemaining(p, now)
	if d < 0 {
		d = 0
	}
	hours, minutes := int(d.Hours()), int(d.Minutes())%60
	return FormatData{
		Name:      p.Name,
		ShortName: ShortNames[p.Name],
		Time:      p.Time.Format(timeFormat),
		Remaining: FormatRemaining(d),
		Countdown: fmt.Sprintf("%02d:%02d", hours, minutes),
		Hours:     hours,
		Minutes:   minutes,
		Tomorrow:  isLaterDay(p.Time, now),
	}
}

// FormatOutput renders p in one of the built-in modes, or through mode as a
// Go template when it contains "{{". Unknown mode names render as
// name-and-time.
//
// Example: "{{.Name}} in {{.Remaining}}" -> "Asr in 2h 15m"
func FormatOutput(p Prayer, now time.Time, mode string, timeFormat string) string {
	data := NewFormatData(p, now, timeFormat)
	if IsTemplate(mode) {
		return formatCustom(mode, data)
	}
	render, ok := modes[mode]
	if !ok {
		render = modes[FormatNameAndTime]
	}
	return render(data)
}

// formatCustom executes a user-provided template. Errors are rendered
// inline so a status bar shows them instead of going blank.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Funcs(templateFuncs).Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}
	return sb.String()
}

// isLaterDay reports whether t is on a calendar day after now, both taken in
// t's location.
func isLaterDay(t, now time.Time) bool {
	now = now.In(t.Location())
	ty, tm, td := t.Date()
	ny, nm, nd := now.Date()
	return time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC).After(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC))
}

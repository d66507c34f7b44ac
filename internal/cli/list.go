package cli

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/smokyabdulrahman/praytimes/internal/display"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/smokyabdulrahman/praytimes/praytimes"
	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [days]",
		Short: "Show prayer times for multiple days",
		Long:  "Display a grid of prayer times for N days (default: 7), starting today or at --date.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, args, 7)
		},
	}
}

func newWeekCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "week",
		Short: "Show prayer times for the next 7 days",
		Long:  "Alias for 'list 7'. Display a grid of prayer times for 7 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 7)
		},
	}
}

func newMonthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "month",
		Short: "Show prayer times for the next 30 days",
		Long:  "Alias for 'list 30'. Display a grid of prayer times for 30 days.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, nil, 30)
		},
	}
}

// dayData holds a single day's computed times for list/query output.
type dayData struct {
	Date  time.Time
	Times praytimes.Times
}

// computeDays computes the requested number of consecutive days.
func computeDays(s *schedule, n int) []dayData {
	out := make([]dayData, 0, n)
	for _, d := range s.days(n) {
		out = append(out, dayData{Date: d, Times: s.timesFor(d)})
	}
	return out
}

// cell formats one event of one day for a table. Events that do not occur
// render as "--:--".
func cell(s *schedule, dd dayData, name string) (string, error) {
	h, err := prayer.ByName(dd.Times, name)
	if err != nil {
		return "", err
	}
	if math.IsNaN(h) {
		return prayer.FormatClock(h), nil
	}
	ps, err := prayer.FromTimes(dd.Times, dd.Date, s.loc, []string{name})
	if err != nil {
		return "", err
	}
	return ps[0].Time.Format(s.goTimeFmt), nil
}

// runList is the handler for the list subcommand.
func runList(cmd *cobra.Command, args []string, defaultDays int) error {
	days := defaultDays
	if len(args) > 0 {
		n, err := parseDays(args[0])
		if err != nil {
			return err
		}
		days = n
	}

	s, err := newSchedule(cmd)
	if err != nil {
		return err
	}

	daysList := computeDays(s, days)
	out := cmd.OutOrStdout()

	if FlagJSON {
		return printListJSON(out, s, daysList)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("Prayer Times, %d Days", days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s  %s\n", s.locationString(), display.Gray(s.loc.String()))
	fmt.Fprintf(out, "  %s\n", display.Gray(methodSummary(s)))
	fmt.Fprintln(out)

	headers := append([]string{"Date"}, s.selected...)
	tbl := display.NewTable(headers)
	for i := range s.selected {
		tbl.AlignRight(i + 1)
	}

	for i, dd := range daysList {
		row := []string{dateLabel(dd.Date)}
		for _, name := range s.selected {
			c, err := cell(s, dd, name)
			if err != nil {
				return err
			}
			row = append(row, c)
		}
		tbl.AddRow(row)

		// Highlight today's row, dim days already past.
		switch {
		case s.isToday(dd.Date):
			tbl.SetHighlightRow(i)
		case dd.Date.Before(startOfDay(s.now)):
			tbl.SetDimRow(i)
		}
	}

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

// listJSONOutput is the JSON structure for the list command.
type listJSONOutput struct {
	Location todayJSONLocation `json:"location"`
	Method   string            `json:"method"`
	Days     []listJSONDay     `json:"days"`
}

type listJSONDay struct {
	Date    string             `json:"date"`
	Timings map[string]*string `json:"timings"`
}

func printListJSON(w io.Writer, s *schedule, daysList []dayData) error {
	out := listJSONOutput{
		Location: jsonLocation(s),
		Method:   s.method.String(),
	}

	for _, dd := range daysList {
		prayers, err := prayer.FromTimes(dd.Times, dd.Date, s.loc, s.selected)
		if err != nil {
			return err
		}
		out.Days = append(out.Days, listJSONDay{
			Date:    dd.Date.Format("2006-01-02"),
			Timings: jsonTimings(prayers, missingPrayers(dd.Times, s.selected), s.goTimeFmt),
		})
	}

	return writeJSON(w, out)
}


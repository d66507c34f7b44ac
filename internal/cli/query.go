package cli

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/smokyabdulrahman/praytimes/internal/display"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/spf13/cobra"
)

var flagQueryDays string

func newQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <prayer>",
		Short: "Query a specific prayer time",
		Long: "Query a specific prayer time for today, or across multiple days with --days.\n\nValid prayer names: " +
			strings.Join(prayer.AllPrayerNames, ", "),
		Args: cobra.ExactArgs(1),
		RunE: runQuery,
	}

	cmd.Flags().StringVar(&flagQueryDays, "days", "", "Number of days to show (or 'week'/'month')")

	return cmd
}

// normalizePrayerName matches name case-insensitively against AllPrayerNames.
func normalizePrayerName(name string) (string, error) {
	for _, n := range prayer.AllPrayerNames {
		if strings.EqualFold(n, name) {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown prayer %q; valid names: %s", name, strings.Join(prayer.AllPrayerNames, ", "))
}

func runQuery(cmd *cobra.Command, args []string) error {
	prayerName, err := normalizePrayerName(args[0])
	if err != nil {
		return err
	}

	days := 1
	if flagQueryDays != "" {
		if days, err = parseDays(flagQueryDays); err != nil {
			return fmt.Errorf("invalid --days value: %w", err)
		}
	}

	s, err := newSchedule(cmd)
	if err != nil {
		return err
	}

	daysList := computeDays(s, days)
	out := cmd.OutOrStdout()

	if days == 1 {
		return printQuerySingleDay(out, s, prayerName, daysList[0])
	}

	if FlagJSON {
		return printQueryJSON(out, s, prayerName, daysList)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s\n", display.Bold(fmt.Sprintf("%s Times, %d Days", prayerName, days)))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %s  %s\n", s.locationString(), display.Gray(s.loc.String()))
	fmt.Fprintln(out)

	tbl := display.NewTable([]string{"Date", prayerName})
	tbl.AlignRight(1)

	for i, dd := range daysList {
		c, err := cell(s, dd, prayerName)
		if err != nil {
			return err
		}
		tbl.AddRow([]string{dateLabel(dd.Date), c})

		if s.isToday(dd.Date) {
			tbl.SetHighlightRow(i)
		}
	}

	fmt.Fprint(out, tbl.Render())
	fmt.Fprintln(out)
	return nil
}

func printQuerySingleDay(w io.Writer, s *schedule, prayerName string, dd dayData) error {
	timeStr, err := cell(s, dd, prayerName)
	if err != nil {
		return err
	}

	if FlagJSON {
		out := queryJSONSingle{
			Prayer: strings.ToLower(prayerName),
			Date:   dd.Date.Format("2006-01-02"),
		}
		if h, _ := prayer.ByName(dd.Times, prayerName); !math.IsNaN(h) {
			out.Time = &timeStr
		}
		return writeJSON(w, out)
	}

	fmt.Fprintf(w, "%s %s\n", prayerName, timeStr)
	return nil
}

type queryJSONSingle struct {
	Prayer string  `json:"prayer"`
	Time   *string `json:"time"`
	Date   string  `json:"date"`
}

type queryJSONMulti struct {
	Location todayJSONLocation `json:"location"`
	Prayer   string            `json:"prayer"`
	Days     []queryJSONDay    `json:"days"`
}

type queryJSONDay struct {
	Date string  `json:"date"`
	Time *string `json:"time"`
}

func printQueryJSON(w io.Writer, s *schedule, prayerName string, daysList []dayData) error {
	out := queryJSONMulti{
		Location: jsonLocation(s),
		Prayer:   strings.ToLower(prayerName),
	}

	for _, dd := range daysList {
		day := queryJSONDay{Date: dd.Date.Format("2006-01-02")}
		if h, _ := prayer.ByName(dd.Times, prayerName); !math.IsNaN(h) {
			timeStr, err := cell(s, dd, prayerName)
			if err != nil {
				return err
			}
			day.Time = &timeStr
		}
		out.Days = append(out.Days, day)
	}

	return writeJSON(w, out)
}

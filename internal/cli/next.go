package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/smokyabdulrahman/praytimes/internal/prayer"
	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagPrayers string
)

// maxLookahead bounds the search for the next prayer. Near the poles the
// selected events can be missing for weeks when NoAdjustment is in effect.
const maxLookahead = 366

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Show the next prayer with countdown",
		Long:  "Display the next upcoming prayer time with a countdown.\nSuitable for status bars such as tmux.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", prayer.FormatFull,
		"Display format: "+strings.Join(prayer.Modes(), ", ")+", or a custom Go template such as '{{.Name}} in {{.Remaining}}'")
	cmd.Flags().StringVar(&flagPrayers, "prayers", "", "Comma-separated list of prayers to track (overrides config)")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSchedule(cmd)
	if err != nil {
		return err
	}
	if !prayer.ValidFormat(flagFormat) {
		log.Warn().Str("format", flagFormat).Msg("unknown format, using name-and-time")
	}

	// Priority: --prayers flag > config > defaults.
	if flagWasSet(cmd.Flags(), cmd.Root().PersistentFlags(), "prayers") && flagPrayers != "" {
		if s.selected, err = prayer.ParseNames(flagPrayers); err != nil {
			return err
		}
	}

	// With --date the countdown starts at the beginning of that day.
	now := s.now
	if s.explicit {
		now = s.day
	}

	next, err := findNext(s, now)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), prayer.FormatOutput(*next, now, flagFormat, s.goTimeFmt))
	return nil
}

// findNext returns the first selected prayer after now.
func findNext(s *schedule, now time.Time) (*prayer.Prayer, error) {
	day := func(date time.Time) ([]prayer.Prayer, error) {
		return s.prayersFor(date, s.selected)
	}
	next, offset, err := prayer.FindNext(day, now, maxLookahead)
	if err != nil {
		return nil, err
	}
	if offset > 1 {
		log.Info().Int("days", offset).Msg("selected prayers do not occur on the next days")
	}
	return next, nil
}

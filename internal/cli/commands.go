package cli

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/smokyabdulrahman/praytimes/internal/config"
	"github.com/smokyabdulrahman/praytimes/internal/display"
	"github.com/smokyabdulrahman/praytimes/praytimes"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or modify configuration",
		Long:  "Display current configuration, or use subcommands to modify it.\nWhen run without subcommands, shows the current configuration.",
		// Config commands must work even when the stored config is invalid,
		// so they skip the root's validation.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupOutput(cmd.ErrOrStderr())
		},
		RunE: runConfigShow,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a config value",
		Long: fmt.Sprintf("Set a configuration value.\n\nKeys:\n%s\nEach key can also be set from the environment as %s<KEY>,\n"+
			"or in a .env file (see %s).\n\nExamples:\n"+
			"  prayer-times config set latitude 21.4225\n"+
			"  prayer-times config set longitude 39.8262\n"+
			"  prayer-times config set timezone Asia/Riyadh\n"+
			"  prayer-times config set method Makkah\n"+
			"  prayer-times config set time_format 12h\n"+
			"  prayer-times config set imsak \"10 min\"\n"+
			"  prayer-times config set prayers Fajr,Dhuhr,Asr,Maghrib,Isha",
			keyHelp(), config.EnvPrefix, config.EnvFileVar),
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Reset config to defaults",
		Long:  "Delete the config file and restore all settings to defaults.",
		RunE:  runConfigReset,
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print config file path",
		RunE:  runConfigPath,
	})

	return cmd
}

// keyHelp lists the config keys with their accepted values.
func keyHelp() string {
	var sb strings.Builder
	for _, key := range config.ValidKeys {
		fmt.Fprintf(&sb, "  %-15s %s\n", key, config.Usage(key))
	}
	return sb.String()
}

// runConfigShow displays the configuration file merged with the environment.
func runConfigShow(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		log.Warn().Msgf("config file has invalid values:\n%v", err)
	}
	if env, err := config.Environ(); err != nil {
		log.Warn().Err(err).Msg("ignoring environment overrides")
	} else if err := cfg.ApplyEnv(env); err != nil {
		log.Warn().Msgf("invalid environment overrides:\n%v", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  Configuration (%s)\n\n", path)

	defaults := config.Defaults()
	for _, key := range config.ValidKeys {
		val, _ := cfg.Get(key)
		shown := val
		if shown == "" {
			if def, _ := defaults.Get(key); def != "" {
				shown = display.Gray(def + " (default)")
			} else {
				shown = display.Gray("(not set)")
			}
		} else if key == "method" {
			shown = formatMethodValue(val)
		}
		fmt.Fprintf(out, "  %-15s %s\n", key, shown)
	}
	return nil
}

// runConfigSet sets a config key to the given value.
func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	// Only the file is updated; environment overrides are not persisted.
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := cfg.Set(key, value); err != nil {
		return err
	}

	if err := cfg.Save(); err != nil {
		return err
	}

	stored, _ := cfg.Get(key)
	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, stored)
	return nil
}

// runConfigReset deletes the config file.
func runConfigReset(cmd *cobra.Command, args []string) error {
	if err := config.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults.")
	return nil
}

// runConfigPath prints the config file path.
func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// formatMethodValue adds the method description to its short name.
func formatMethodValue(val string) string {
	m, err := praytimes.ParseCalculationMethod(val)
	if err != nil {
		return val
	}
	return fmt.Sprintf("%s (%s)", val, m.Description())
}

// formatParam renders a method parameter as "18°", "90 min" or "sunset".
func formatParam(v praytimes.AngleOrMinutes, zero string) string {
	switch {
	case v.IsMinutes() && v.Value() == 0:
		return zero
	case v.IsMinutes():
		return fmt.Sprintf("%g min", v.Value())
	default:
		return fmt.Sprintf("%g°", v.Value())
	}
}

func newMethodsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List all calculation methods",
		Long:  "Print the table of supported calculation methods with their twilight parameters.",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Supported calculation methods:")
			fmt.Fprintln(out)

			tbl := display.NewTable([]string{"Method", "Fajr", "Isha", "Maghrib", "Midnight", "Name"})
			for _, m := range praytimes.Methods() {
				tbl.AddRow([]string{
					m.String(),
					formatParam(m.Fajr(), "-"),
					formatParam(m.Isha(), "-"),
					formatParam(m.Maghrib(), "sunset"),
					m.DefaultMidnight().String(),
					m.Description(),
				})
			}
			fmt.Fprint(out, tbl.Render())

			fmt.Fprintln(out)
			fmt.Fprintln(out, "Use --method <Method> to select a calculation method (default: MWL).")
			fmt.Fprintln(out, "Minute values for Isha are counted after Maghrib.")
			return nil
		},
	}
}

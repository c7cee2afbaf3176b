// Command nld resolves natural-language date expressions from the command
// line. It is a thin front end over the nldates engine: flags and config
// pick the enabled languages, week start, and output format; subcommands
// map one-to-one onto the engine operations.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	nldates "github.com/Amato21/nldates-revived-sub000"
)

var (
	cfgFile    string
	verbose    bool
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "nld",
	Short: "Resolve natural-language dates",
	Long: `nld resolves free-form natural-language time expressions into
concrete dates and ranges, across every language enabled at once.

Examples:
  nld resolve "in 2 weeks and 3 days"
  nld resolve "next monday at 3pm" --week-start monday
  nld resolve "dans 2 semaines" --lang en,fr
  nld range "from monday to friday"
  nld hastime "in 30 minutes"`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default $HOME/.config/nld/config.yaml)")
	pf.StringSliceP("lang", "l", []string{"en"}, "enabled language codes, in priority order")
	pf.String("week-start", "", "week start weekday (sunday..saturday; default sunday)")
	pf.String("format", "", "output layout for dates (Go reference layout)")
	pf.String("ref", "", "reference time as RFC3339, instead of the wall clock")
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVar(&jsonOutput, "json", false, "emit JSON instead of styled text")

	_ = viper.BindPFlag("languages", pf.Lookup("lang"))
	_ = viper.BindPFlag("week-start", pf.Lookup("week-start"))
	_ = viper.BindPFlag("format", pf.Lookup("format"))
	_ = viper.BindPFlag("ref", pf.Lookup("ref"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.config/nld")
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("NLD")
	viper.AutomaticEnv()

	// Missing config files are fine; flags and defaults carry the day.
	_ = viper.ReadInConfig()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// newEngine builds an engine from the effective configuration.
func newEngine() *nldates.Engine {
	eng, err := nldates.New(viper.GetStringSlice("languages"), engineOptions()...)
	if err != nil {
		fatalf("building engine: %v", err)
	}
	if eng.FellBack() {
		slog.Warn("requested languages unusable, running with the default", "languages", eng.Languages())
	}
	return eng
}

func engineOptions() []nldates.Option {
	var opts []nldates.Option

	if layout := viper.GetString("format"); layout != "" {
		opts = append(opts, nldates.WithDateFormat(layout))
	}
	if ref := viper.GetString("ref"); ref != "" {
		t, err := time.Parse(time.RFC3339, ref)
		if err != nil {
			fatalf("invalid --ref %q: %v", ref, err)
		}
		opts = append(opts, nldates.WithClock(func() time.Time { return t }))
	}
	opts = append(opts, nldates.WithLogger(slog.Default()))
	return opts
}

func weekStartPref() nldates.WeekStart {
	return nldates.ParseWeekStart(viper.GetString("week-start"))
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "nld: "+format+"\n", args...)
	os.Exit(1)
}

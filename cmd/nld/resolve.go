package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <expression>",
	Short: "Resolve an expression to a single date",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng := newEngine()
		text := strings.Join(args, " ")
		d := eng.Resolve(text, weekStartPref())

		if jsonOutput {
			printJSON(map[string]interface{}{
				"input":     text,
				"formatted": d.Formatted,
				"time":      d.Time.Format(time.RFC3339),
				"has_clock": d.HasClock,
			})
			return
		}
		fmt.Printf("%s %s\n", labelStyle.Render(text+" →"), dateStyle.Render(d.Formatted))
	},
}

var rangeCmd = &cobra.Command{
	Use:   "range <expression>",
	Short: "Resolve an expression to a date range",
	Long: `Resolve a range expression ("from monday to friday", "next week")
to an inclusive span of days. Expressions that are not one of the two
range shapes are reported as not-a-range; use "nld resolve" for those.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng := newEngine()
		text := strings.Join(args, " ")
		r := eng.ResolveRange(text, weekStartPref())
		if r == nil {
			if jsonOutput {
				printJSON(map[string]interface{}{"input": text, "range": nil})
				return
			}
			fmt.Fprintf(os.Stderr, "not a range expression: %q\n", text)
			os.Exit(1)
		}

		if jsonOutput {
			days := make([]string, 0, len(r.Days))
			for _, d := range r.Days {
				days = append(days, d.Format("2006-01-02"))
			}
			printJSON(map[string]interface{}{
				"input":     text,
				"formatted": r.Formatted,
				"start":     r.Start.Format("2006-01-02"),
				"end":       r.End.Format("2006-01-02"),
				"days":      days,
			})
			return
		}
		fmt.Printf("%s %s\n", labelStyle.Render(text+" →"), dateStyle.Render(r.Formatted))
		fmt.Printf("%s\n", faintStyle.Render(fmt.Sprintf("%d days", r.DayCount())))
	},
}

var hastimeCmd = &cobra.Command{
	Use:   "hastime <expression>",
	Short: "Report whether an expression carries a clock time",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		eng := newEngine()
		text := strings.Join(args, " ")
		has := eng.HasTime(text)

		if jsonOutput {
			printJSON(map[string]interface{}{"input": text, "has_time": has})
			return
		}
		if has {
			fmt.Println(yesStyle.Render("time"))
		} else {
			fmt.Println(noStyle.Render("date only"))
		}
	},
}

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the languages the engine is running with",
	Run: func(cmd *cobra.Command, args []string) {
		eng := newEngine()
		langs := eng.Languages()
		if jsonOutput {
			printJSON(map[string]interface{}{"languages": langs, "fell_back": eng.FellBack()})
			return
		}
		for _, l := range langs {
			fmt.Println(l)
		}
	},
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatalf("encoding output: %v", err)
	}
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(rangeCmd)
	rootCmd.AddCommand(hastimeCmd)
	rootCmd.AddCommand(languagesCmd)
}

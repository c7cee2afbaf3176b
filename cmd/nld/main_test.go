package main

import (
	"encoding/json"
	"io"
	"os"
	"testing"

	"github.com/spf13/pflag"
)

// refFlag pins the reference clock to Monday 2024-01-01 09:00 UTC.
const refFlag = "2024-01-01T09:00:00Z"

// runCLI executes one command against the real root command, capturing
// stdout. Every call passes --json so output stays machine-readable and
// flag state carried over from earlier calls cannot change the shape.
func runCLI(t *testing.T, args ...string) map[string]interface{} {
	t.Helper()

	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := os.Stdout
	os.Stdout = w

	// pflag slice flags append on every Set after the first, so a --lang
	// value from an earlier Execute on the shared rootCmd would accumulate.
	// Empty the slice so the next Set lands on a clean value; with Changed
	// reset, runs without --lang still see the flag default.
	langFlag := rootCmd.PersistentFlags().Lookup("lang")
	if err := langFlag.Value.(pflag.SliceValue).Replace(nil); err != nil {
		t.Fatalf("resetting --lang: %v", err)
	}
	langFlag.Changed = false

	rootCmd.SetArgs(append(args, "--ref", refFlag, "--json"))
	execErr := rootCmd.Execute()

	w.Close()
	os.Stdout = orig
	out, readErr := io.ReadAll(r)
	if readErr != nil {
		t.Fatalf("reading output: %v", readErr)
	}
	if execErr != nil {
		t.Fatalf("command %v: %v", args, execErr)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decoding output %q: %v", out, err)
	}
	return got
}

func TestResolveCommand(t *testing.T) {
	got := runCLI(t, "resolve", "in 2 weeks and 3 days")
	if got["formatted"] != "2024-01-18" {
		t.Errorf("formatted = %v, want 2024-01-18", got["formatted"])
	}
	if got["has_clock"] != false {
		t.Errorf("has_clock = %v, want false", got["has_clock"])
	}
}

func TestResolveCommandClockTime(t *testing.T) {
	got := runCLI(t, "resolve", "in 30 minutes")
	if got["formatted"] != "2024-01-01 09:30" {
		t.Errorf("formatted = %v, want 2024-01-01 09:30", got["formatted"])
	}
	if got["has_clock"] != true {
		t.Errorf("has_clock = %v, want true", got["has_clock"])
	}
}

func TestResolveCommandCustomFormat(t *testing.T) {
	got := runCLI(t, "resolve", "tomorrow", "--format", "02.01.2006")
	if got["formatted"] != "02.01.2024" {
		t.Errorf("formatted = %v, want 02.01.2024", got["formatted"])
	}
}

func TestResolveCommandMultilingual(t *testing.T) {
	got := runCLI(t, "resolve", "demain", "--lang", "en,fr", "--format", "2006-01-02")
	if got["formatted"] != "2024-01-02" {
		t.Errorf("formatted = %v, want 2024-01-02", got["formatted"])
	}
}

func TestRangeCommand(t *testing.T) {
	got := runCLI(t, "range", "from monday to friday")
	if got["start"] != "2024-01-01" || got["end"] != "2024-01-05" {
		t.Errorf("range = %v..%v, want 2024-01-01..2024-01-05", got["start"], got["end"])
	}
	days, ok := got["days"].([]interface{})
	if !ok || len(days) != 5 {
		t.Errorf("days = %v, want 5 entries", got["days"])
	}
}

func TestRangeCommandNotARange(t *testing.T) {
	got := runCLI(t, "range", "tomorrow")
	if got["range"] != nil {
		t.Errorf("range = %v, want null", got["range"])
	}
}

func TestRangeCommandWeekStart(t *testing.T) {
	got := runCLI(t, "range", "next week", "--week-start", "monday")
	if got["start"] != "2024-01-08" || got["end"] != "2024-01-14" {
		t.Errorf("range = %v..%v, want 2024-01-08..2024-01-14", got["start"], got["end"])
	}
}

func TestHastimeCommand(t *testing.T) {
	got := runCLI(t, "hastime", "in 30 minutes")
	if got["has_time"] != true {
		t.Errorf("has_time(in 30 minutes) = %v, want true", got["has_time"])
	}

	got = runCLI(t, "hastime", "in 2 days")
	if got["has_time"] != false {
		t.Errorf("has_time(in 2 days) = %v, want false", got["has_time"])
	}
}

func TestLanguagesCommand(t *testing.T) {
	got := runCLI(t, "languages", "--lang", "en,fr")
	langs, ok := got["languages"].([]interface{})
	if !ok || len(langs) != 2 || langs[0] != "en" || langs[1] != "fr" {
		t.Errorf("languages = %v, want [en fr]", got["languages"])
	}
	if got["fell_back"] != false {
		t.Errorf("fell_back = %v, want false", got["fell_back"])
	}
}

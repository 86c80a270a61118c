package main

import (
	"fmt"
	"log/slog"
	"os"

	"heatcli/internal/calc"
	"heatcli/internal/config"
	"heatcli/internal/dataprocessing"
)

// verify checks that a deployment can actually serve requests: the
// configuration parses, the data directory holds the required tables,
// the numeric converter behaves, and the calculations run.
func main() {
	failures := 0
	check := func(name string, err error) {
		if err != nil {
			failures++
			fmt.Printf("  FAIL  %s: %v\n", name, err)
			return
		}
		fmt.Printf("  ok    %s\n", name)
	}

	fmt.Println("Verifying setup...")

	cfg, err := config.Load()
	check("configuration", err)
	if err != nil {
		os.Exit(1)
	}

	check("data directory", checkDataDir(cfg))
	check("numeric converter", checkConverter())
	check("calculations", checkCalculations())

	if failures > 0 {
		fmt.Printf("\n%d check(s) failed\n", failures)
		os.Exit(1)
	}
	fmt.Println("\nAll checks passed")
}

func checkDataDir(cfg *config.Config) error {
	info, err := os.Stat(cfg.Paths.DataDir)
	if err != nil {
		return fmt.Errorf("data dir %s: %w", cfg.Paths.DataDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", cfg.Paths.DataDir)
	}

	store := dataprocessing.NewStore(slog.Default())
	if err := store.LoadDir(cfg.Paths.DataDir); err != nil {
		return err
	}
	if len(cfg.Ingest.RequiredTables) > 0 {
		return store.ValidateRequired(cfg.Ingest.RequiredTables)
	}
	if len(store.Names()) == 0 {
		return fmt.Errorf("no loadable tables in %s", cfg.Paths.DataDir)
	}
	return nil
}

func checkConverter() error {
	cases := map[string]float64{
		"1.234,56": 1234.56,
		"1,234.56": 1234.56,
		"1'234.56": 1234.56,
		"€1,375.2": 1375.2,
		"n/a":      0,
		"-12,5%":   -0.125,
		"1.2e3":    1200,
	}
	for input, want := range cases {
		got := dataprocessing.ParseString(input)
		if diff := got - want; diff > 1e-9 || diff < -1e-9 {
			return fmt.Errorf("ParseString(%q) = %v, want %v", input, got, want)
		}
	}
	return nil
}

func checkCalculations() error {
	registry := calc.NewDefaultRegistry()
	for _, name := range registry.List("") {
		c, err := registry.Get(name)
		if err != nil {
			return err
		}
		// Every registered calc must run cleanly on sample inputs
		inputs := map[string]float64{}
		for _, p := range c.Inputs() {
			if p.Default == nil {
				inputs[p.Name] = sampleInput(p)
			}
		}
		if _, err := c.Run(inputs); err != nil {
			return fmt.Errorf("calculation %s: %w", name, err)
		}
	}
	return nil
}

// sampleInput picks an in-range value for a parameter without a default:
// the midpoint when both bounds exist, the available bound when only one
// does, otherwise 1.
func sampleInput(p calc.Parameter) float64 {
	switch {
	case p.Min != nil && p.Max != nil:
		return (*p.Min + *p.Max) / 2
	case p.Min != nil:
		return *p.Min
	case p.Max != nil:
		return *p.Max
	default:
		return 1
	}
}

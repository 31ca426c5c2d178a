package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"happydash/domain/core"
	"happydash/domain/happiness"
	"happydash/internal/analysis"
	"happydash/internal/config"
	"happydash/internal/container"
	"happydash/internal/dataset"
	"happydash/internal/outwriter"
	"happydash/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "happydash-dev",
		Short: "Happiness dashboard development tools",
	}

	rootCmd.AddCommand(
		newSeedCmd(),
		newSmokeTestCmd(),
		newDeterminismTestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func generatorFlags(cmd *cobra.Command, gc *testkit.GeneratorConfig) {
	def := testkit.DefaultGeneratorConfig()
	cmd.Flags().IntVar(&gc.Countries, "countries", def.Countries, "Number of synthetic countries")
	cmd.Flags().IntVar(&gc.YearFrom, "year-from", def.YearFrom, "First year")
	cmd.Flags().IntVar(&gc.YearTo, "year-to", def.YearTo, "Last year")
	cmd.Flags().Float64Var(&gc.MissingRate, "missing-rate", def.MissingRate, "Share of factor cells left blank")
	cmd.Flags().Int64Var(&gc.Seed, "seed", def.Seed, "Random seed")
}

func newSeedCmd() *cobra.Command {
	var gc testkit.GeneratorConfig
	var out string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a synthetic data file in the source layout",
		Long: `Generate a deterministic synthetic happiness panel.

The output format follows the file extension: .xlsx or .csv.

Example: happydash-dev seed --out testdata/whr.xlsx --countries 40 --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generateSeedData(gc, out)
		},
	}
	generatorFlags(cmd, &gc)
	cmd.Flags().StringVarP(&out, "out", "o", "happiness.xlsx", "Output file (.xlsx or .csv)")
	return cmd
}

func generateSeedData(gc testkit.GeneratorConfig, out string) error {
	fmt.Println("Generating seed data...")
	if gc.YearFrom > gc.YearTo {
		return fmt.Errorf("year-from %d is after year-to %d", gc.YearFrom, gc.YearTo)
	}

	records := testkit.NewGenerator(gc).Records()
	var err error
	switch strings.ToLower(filepath.Ext(out)) {
	case ".csv":
		err = testkit.WriteCSV(out, records)
	case ".xlsx":
		err = testkit.WriteXLSX(out, records)
	default:
		return fmt.Errorf("unsupported output extension %q (use .xlsx or .csv)", filepath.Ext(out))
	}
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}

	fmt.Printf("Wrote %d records (%d countries, %d-%d) to %s\n", len(records), gc.Countries, gc.YearFrom, gc.YearTo, out)
	return nil
}

func newSmokeTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "smoke",
		Short: "Run smoke tests against a freshly seeded workbook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSmokeTests(cmd.Context())
		},
	}
}

func runSmokeTests(ctx context.Context) error {
	fmt.Println("Running smoke tests...")

	dir, err := os.MkdirTemp("", "happydash-smoke")
	if err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	file := filepath.Join(dir, "happiness.xlsx")
	if err := testkit.WriteXLSX(file, testkit.NewGenerator(testkit.DefaultGeneratorConfig()).Records()); err != nil {
		return fmt.Errorf("failed to seed workbook: %w", err)
	}

	cfg := config.Default()
	cfg.Data.File = file
	c, err := container.New(cfg)
	if err != nil {
		return err
	}

	var dashboard *analysis.Dashboard
	tests := []struct {
		name string
		fn   func(context.Context) error
	}{
		{"dataset_load", func(ctx context.Context) error {
			return c.Warm(ctx)
		}},
		{"dashboard_run", func(ctx context.Context) error {
			d, err := c.Runner.Run(ctx, analysis.Params{})
			if err != nil {
				return err
			}
			for _, f := range d.Frames() {
				if f.Status != happiness.StatusOK && f.Status != happiness.StatusEmpty {
					return fmt.Errorf("%s: %s", f.Analysis, f.Reason)
				}
			}
			dashboard = d
			return nil
		}},
		{"chart_render", func(ctx context.Context) error {
			if dashboard == nil {
				return fmt.Errorf("no dashboard")
			}
			for _, f := range dashboard.Frames() {
				if f.Status != happiness.StatusOK {
					continue
				}
				if err := c.Renderer.Render(dashboard, f.Analysis, "png", io.Discard); err != nil {
					return err
				}
			}
			return nil
		}},
		{"xlsx_export", func(ctx context.Context) error {
			if dashboard == nil {
				return fmt.Errorf("no dashboard")
			}
			ow := outwriter.NewOutWriter(outwriter.Options{
				Format: outwriter.FormatXLSX,
				Dest:   filepath.Join(dir, "dashboard.xlsx"),
			})
			_, err := ow.Write(dashboard, nil)
			return err
		}},
	}

	passed := 0
	for _, test := range tests {
		fmt.Printf("  Running %s...", test.name)
		if err := test.fn(ctx); err != nil {
			fmt.Printf(" FAILED: %v\n", err)
		} else {
			fmt.Println(" PASSED")
			passed++
		}
	}

	fmt.Printf("\nSmoke tests: %d/%d passed\n", passed, len(tests))
	if passed < len(tests) {
		return fmt.Errorf("some smoke tests failed")
	}
	return nil
}

func newDeterminismTestCmd() *cobra.Command {
	var gc testkit.GeneratorConfig

	cmd := &cobra.Command{
		Use:   "determinism",
		Short: "Check that the same seed yields identical datasets and tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return testDeterminism(cmd.Context(), gc)
		},
	}
	generatorFlags(cmd, &gc)
	return cmd
}

func testDeterminism(ctx context.Context, gc testkit.GeneratorConfig) error {
	fmt.Printf("Testing determinism for seed %d...\n", gc.Seed)

	original, err := runOnce(ctx, gc)
	if err != nil {
		return err
	}
	fmt.Println("Re-running with same seed...")
	replay, err := runOnce(ctx, gc)
	if err != nil {
		return err
	}

	if err := compareRuns(original, replay); err != nil {
		return fmt.Errorf("determinism test failed: %w", err)
	}

	fmt.Println("✓ Determinism test passed - results identical")
	return nil
}

type seededRun struct {
	fingerprint string
	frames      []happiness.Frame
}

func runOnce(ctx context.Context, gc testkit.GeneratorConfig) (*seededRun, error) {
	ds := testkit.NewGenerator(gc).Dataset()
	runner := analysis.NewRunner(dataset.NewStaticStore(ds), config.Default().Analysis, nil)
	d, err := runner.Run(ctx, analysis.Params{})
	if err != nil {
		return nil, err
	}
	return &seededRun{fingerprint: contentHash(ds), frames: d.Frames()}, nil
}

// contentHash fingerprints the records alone; the dataset fingerprint also
// covers the load time
func contentHash(ds *happiness.Dataset) string {
	var parts []string
	ds.Each(func(r happiness.Record) {
		parts = append(parts, strings.Join(testkit.Cells(r), ","))
	})
	return core.HashParts(parts...).Short()
}

func compareRuns(original, replay *seededRun) error {
	if original.fingerprint != replay.fingerprint {
		return fmt.Errorf("fingerprints differ: %s vs %s", original.fingerprint, replay.fingerprint)
	}
	if len(original.frames) != len(replay.frames) {
		return fmt.Errorf("table counts differ: %d vs %d", len(original.frames), len(replay.frames))
	}
	for i, f := range original.frames {
		if !reflect.DeepEqual(f, replay.frames[i]) {
			return fmt.Errorf("%s differs between runs", f.Analysis)
		}
	}
	return nil
}

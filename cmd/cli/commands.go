package main

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"happydash/adapters/api"
	"happydash/internal/mcp"
	"happydash/internal/outwriter"
	"happydash/ui"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

func newReportCmd() *cobra.Command {
	var analyses string
	var maxRows int
	var precision int

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard as terminal tables",
		Long: `Run one render cycle and print the KPI summary followed by each analysis table.

Example: happydash report --data whr.xlsx --year-min 2015 --analyses P2,P3 --top-n 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(viper.GetViper(), analyses, outwriter.Options{
				Format:    outwriter.FormatText,
				Precision: precision,
				MaxRows:   maxRows,
			})
		},
	}

	cmd.Flags().StringVar(&analyses, "analyses", "", "Comma-separated analyses to print (default: all)")
	cmd.Flags().IntVar(&maxRows, "max-rows", 20, "Rows printed per table (0 = all)")
	cmd.Flags().IntVar(&precision, "precision", 3, "Decimal precision for numeric columns")
	return cmd
}

func newExportCmd() *cobra.Command {
	var analyses string
	var format string
	var dest string
	var precision int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export analysis tables as CSV, JSON, XLSX or Parquet",
		Long: `Export the tables of one render cycle.

CSV and Parquet write one file per analysis into the destination directory.
JSON and XLSX write a single file; JSON and a single CSV table may go to stdout.

Example: happydash export --data whr.xlsx --format xlsx --dest dashboard.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := outwriter.ParseFormat(format)
			if err != nil {
				return err
			}
			return runExport(viper.GetViper(), analyses, outwriter.Options{
				Format:    f,
				Precision: precision,
				Dest:      dest,
			})
		},
	}

	cmd.Flags().StringVar(&analyses, "analyses", "", "Comma-separated analyses to export (default: all)")
	cmd.Flags().StringVar(&format, "format", "csv", "Export format: text, csv, json, xlsx or parquet")
	cmd.Flags().StringVarP(&dest, "dest", "o", "", "Destination file or directory (default: stdout)")
	cmd.Flags().IntVar(&precision, "precision", 3, "Decimal precision for numeric columns")
	return cmd
}

func runExport(v *viper.Viper, analyses string, opts outwriter.Options) error {
	ids, err := parseAnalyses(analyses)
	if err != nil {
		return err
	}
	params, err := paramsFromViper(v)
	if err != nil {
		return err
	}
	c, err := newContainer(v)
	if err != nil {
		return err
	}
	defer c.Shutdown(rootCtx)

	d, err := c.Runner.Run(rootCtx, params)
	if err != nil {
		return err
	}
	paths, err := outwriter.NewOutWriter(opts).Write(d, ids)
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Fprintf(os.Stderr, "wrote %s\n", p)
	}
	return nil
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Describe the dataset and its load report",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(viper.GetViper())
			if err != nil {
				return err
			}
			defer c.Shutdown(rootCtx)

			info, err := c.Store.Info(rootCtx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table := tablewriter.NewWriter(out)
			table.Header([]string{"Property", "Value"})
			rows := [][]string{
				{"Source", info.Source},
				{"Fingerprint", info.Fingerprint},
				{"Loaded", info.LoadedAt.Format("2006-01-02 15:04:05")},
				{"Rows", strconv.Itoa(info.Rows)},
				{"Countries", strconv.Itoa(info.Countries)},
				{"Years", fmt.Sprintf("%d-%d (%d)", info.YearMin, info.YearMax, len(info.Years))},
			}
			if err := table.Bulk(rows); err != nil {
				return err
			}
			if err := table.Render(); err != nil {
				return err
			}

			if r := info.Report; r != nil {
				warn := color.New(color.FgYellow)
				for _, col := range r.MissingColumns {
					fmt.Fprintln(out, warn.Sprint("missing column: "+col))
				}
				if len(r.UnknownColumns) > 0 {
					fmt.Fprintln(out, warn.Sprint("ignored columns: "+strings.Join(r.UnknownColumns, ", ")))
				}
				if r.DroppedRows > 0 {
					fmt.Fprintln(out, warn.Sprintf("dropped rows: %d", r.DroppedRows))
				}
				for _, header := range slices.Sorted(maps.Keys(r.Columns)) {
					col := r.Columns[header]
					if col.MissingCount == 0 && col.FailureCount == 0 {
						continue
					}
					fmt.Fprintln(out, warn.Sprintf("%s: %d/%d numeric, %d missing, %d unparseable",
						header, col.NumericCount, col.TotalCount, col.MissingCount, col.FailureCount))
				}
			}
			return nil
		},
	}
}

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the analyses as MCP tools over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(viper.GetViper())
			if err != nil {
				return err
			}
			return mcp.StartMCPServer(rootCtx, c.Runner, c.Store)
		},
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard page and the JSON API",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newContainer(viper.GetViper())
			if err != nil {
				return err
			}
			if err := c.Warm(rootCtx); err != nil {
				return err
			}
			gin.SetMode(c.Config.Server.GinMode)

			page, err := ui.NewServer(c.Runner, c.Renderer)
			if err != nil {
				return err
			}
			jsonAPI := api.NewServer(c.Runner, c.Store)

			var g errgroup.Group
			g.Go(func() error { return page.Start(":" + c.Config.Server.Port) })
			if c.Config.Server.APIPort != "" {
				g.Go(func() error { return jsonAPI.Start(":" + c.Config.Server.APIPort) })
			}
			return g.Wait()
		},
	}

	cmd.Flags().String("port", "8080", "Dashboard page port")
	cmd.Flags().String("api-port", "8090", "JSON API port (empty disables the API)")
	_ = viper.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("api-port", cmd.Flags().Lookup("api-port"))
	return cmd
}

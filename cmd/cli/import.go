package main

import (
	"fmt"

	"happydash/adapters/datareadiness/coercer"
	"happydash/adapters/excel"
	"happydash/adapters/postgres"
	"happydash/internal/dataset"
	"happydash/internal/errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Load an XLSX or CSV file into the database table",
		Long: `Read a data file with the same coercion rules as the dashboard and replace
the contents of happiness_records with its rows.

Example: happydash import whr.xlsx --database-url postgres://localhost/happiness?sslmode=disable`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v := viper.GetViper()
			url := v.GetString("database-url")
			if url == "" {
				return errors.ConfigInvalid("--database-url is required for import")
			}

			reader := excel.DefaultReaderConfig(args[0])
			reader.Sheet = v.GetString("sheet")
			ds, report, err := dataset.NewLoader(coercer.DefaultCoercionConfig()).Load(reader)
			if err != nil {
				return err
			}

			db, err := postgres.Connect(rootCtx, v.GetString("database-driver"), url)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := postgres.NewRecordRepository(db).Replace(rootCtx, ds.Records())
			if err != nil {
				return errors.Wrap(err, "import failed")
			}

			ok := color.New(color.FgGreen, color.Bold)
			fmt.Fprintln(cmd.OutOrStdout(), ok.Sprintf("imported %d rows from %s (%d dropped)", n, args[0], report.DroppedRows))
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"happydash/internal/config"
	"happydash/internal/container"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCtx is the root context for all operations
var rootCtx = context.Background()

func main() {
	rootCmd := newRootCmd()
	rootCmd.AddCommand(
		newReportCmd(),
		newExportCmd(),
		newInfoCmd(),
		newMCPCmd(),
		newServeCmd(),
		newImportCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "happydash",
		Short:         "Happiness indicators dashboard: reports, exports and servers",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return initConfig(viper.GetViper())
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Path to config file (default .happydash.yaml)")
	flags.String("data", "", "Path to the XLSX or CSV data file")
	flags.String("sheet", "", "Worksheet to read (default: first sheet)")
	flags.String("database-url", "", "Read the dataset from a SQL table instead of a file")
	flags.String("database-driver", "postgres", "SQL driver: postgres or sqlite")
	flags.Int("year-min", 0, "First year of the range (default: dataset's first year)")
	flags.Int("year-max", 0, "Last year of the range (default: dataset's last year)")
	flags.String("countries", "", "Comma-separated country allow-list")
	flags.Int("top-n", 0, "Countries per group in the ranking")
	flags.Int("change-n", 0, "Countries per direction in the change chart")
	flags.Int("max-countries", 0, "Cap on countries drawn in the trend chart")
	flags.Int("change-from", 0, "First boundary year of the change chart")
	flags.Int("change-to", 0, "Second boundary year of the change chart")
	flags.String("factors", "", "Comma-separated factors compared in the scatter chart")
	flags.Bool("memo", true, "Memoize analysis results")
	flags.Bool("quiet", false, "Suppress log output")
	if err := viper.BindPFlags(flags); err != nil {
		log.Fatalf("Error binding root flags: %v", err)
	}
	return cmd
}

// initConfig reads the config file and HAPPYDASH_* environment variables
func initConfig(v *viper.Viper) error {
	if configFile := v.GetString("config"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".happydash")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix("HAPPYDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	if v.GetBool("quiet") {
		log.SetOutput(io.Discard)
	}
	return nil
}

// loadConfig builds the application config from defaults overlaid with
// viper values
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg := config.Default()
	cfg.Data.File = v.GetString("data")
	cfg.Data.Sheet = v.GetString("sheet")
	cfg.Database.URL = v.GetString("database-url")
	if driver := v.GetString("database-driver"); driver != "" {
		cfg.Database.Driver = driver
	}
	cfg.Memo.Enabled = v.GetBool("memo")
	if port := v.GetString("port"); port != "" {
		cfg.Server.Port = port
	}
	if port := v.GetString("api-port"); port != "" {
		cfg.Server.APIPort = port
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newContainer(v *viper.Viper) (*container.Container, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}
	return container.New(cfg)
}

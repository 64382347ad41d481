package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/iwvelando/inflation-estimator/internal/cache"
	"github.com/iwvelando/inflation-estimator/internal/config"
	"github.com/iwvelando/inflation-estimator/internal/estimate"
	"github.com/iwvelando/inflation-estimator/internal/logging"
	"github.com/iwvelando/inflation-estimator/pkg/constants"
	"github.com/iwvelando/inflation-estimator/pkg/format"
	"github.com/iwvelando/inflation-estimator/pkg/inflation"
	"github.com/iwvelando/inflation-estimator/pkg/validation"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// app carries the state shared by every subcommand once the root has
// loaded configuration.
type app struct {
	configPath   string
	logLevel     string
	outputFormat string
	locale       string

	conf    *config.Configuration
	logger  *zap.Logger
	table   inflation.RateTable
	display format.Locale
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "inflation-estimator",
		Short: "Estimate how much money loses to inflation between two dates",
		Long: `inflation-estimator projects an amount of money forward using a tiered
monthly inflation rate keyed by the starting year, and reports the adjusted
amount, total and annualized inflation for the period.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.initialize,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	flags.StringVar(&a.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	flags.StringVar(&a.outputFormat, "output-format", "", "type of output override: pretty, csv, json")
	flags.StringVar(&a.locale, "locale", "", "display locale override: es-AR, en-US")

	root.AddCommand(estimateCmd(a))
	root.AddCommand(describeCmd(a))
	root.AddCommand(ratesCmd(a))
	root.AddCommand(validateCmd(a))
	root.AddCommand(serveCmd(a))
	root.AddCommand(versionCmd())

	return root
}

func (a *app) initialize(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	conf, err := config.LoadConfigurationIfExists(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", a.configPath, err)
	}
	if err := conf.Validate(); err != nil {
		return fmt.Errorf("invalid configuration at %s: %w", a.configPath, err)
	}

	logger, err := logging.New(conf.Logging, a.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}

	// CLI overrides take precedence over config.
	if a.outputFormat == "" {
		a.outputFormat = conf.Output.Format
	}
	if a.outputFormat == "" {
		a.outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(a.outputFormat); err != nil {
		return err
	}

	display := conf.Locale()
	if a.locale != "" {
		if err := validation.ValidateLocale(a.locale); err != nil {
			return err
		}
		display = format.MustLocale(a.locale)
	}

	table, err := conf.RateTable()
	if err != nil {
		return err
	}

	a.conf = conf
	a.logger = logger
	a.table = table
	a.display = display

	logger.Debug("configuration loaded",
		zap.String("op", "main"),
		zap.String("command", cmd.Name()),
		zap.String("outputFormat", a.outputFormat),
		zap.String("locale", display.String()),
	)
	return nil
}

// newService builds an estimate service with the configured table and locale.
// A nil store disables caching.
func (a *app) newService(store cache.Cache) *estimate.Service {
	return estimate.NewService(a.logger, inflation.NewEstimator(a.table), a.display, store)
}

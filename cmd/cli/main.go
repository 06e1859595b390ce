package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/parks-scoring/cmd/cli/commands"
	"github.com/jakechorley/parks-scoring/internal/config"
	"github.com/jakechorley/parks-scoring/pkg/clients/sheetsclient"
	"github.com/jakechorley/parks-scoring/pkg/core/compatibility"
	"github.com/jakechorley/parks-scoring/pkg/core/viability"
	"github.com/jakechorley/parks-scoring/pkg/postgres"
	"github.com/jakechorley/parks-scoring/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	logsDir string
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "parks",
		Short: "Parks scoring CLI - activity viability and volunteer compatibility",
		Long: `A CLI for the parks office: estimates whether proposed activities are financially
viable and checks whether volunteers can be registered for activity slots.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Postgres != nil {
				app.Postgres.Close()
			}
			if app.Logger != nil {
				_ = app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")
	rootCmd.PersistentFlags().StringVar(&logsDir, "logs-dir", logging.DefaultLogsDir, "Directory for log files")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.EstimateViabilityCmd(app))
	rootCmd.AddCommand(commands.ReviewPendingCmd(app))
	rootCmd.AddCommand(commands.CheckParticipationCmd(app))
	rootCmd.AddCommand(commands.FindVolunteersCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.InteractiveCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, database, volunteer source and engines
func initApp() error {
	var err error
	app.Env = env
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(logging.Options{Env: env, LogsDir: logsDir, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Location = app.Cfg.Location()

	app.Logger.Debug("Connecting to database")
	app.Postgres, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.Activities = app.Postgres
	app.Volunteers = app.Postgres

	if app.Cfg.UsesVolunteerSheet() {
		app.Logger.Info("Reading volunteers from spreadsheet",
			zap.String("spreadsheet_id", app.Cfg.VolunteerSheetID),
			zap.String("tab", app.Cfg.VolunteersTab))

		oauthCfg, err := config.LoadOAuthClientWithEnv(env)
		if err != nil {
			return fmt.Errorf("failed to load OAuth client config: %w", err)
		}

		sheetsClient, err := sheetsclient.NewClient(app.Ctx, oauthCfg, env, app.Logger)
		if err != nil {
			return fmt.Errorf("failed to create sheets client: %w", err)
		}
		app.Volunteers = sheetsclient.NewVolunteerSheet(sheetsClient, app.Cfg.VolunteerSheetID, app.Cfg.VolunteersTab)
	}

	rates, thresholds := app.Cfg.EstimatorRates(), app.Cfg.EstimatorThresholds()
	app.Estimator = viability.NewEstimator(rates, thresholds)
	app.Checker = compatibility.NewChecker()

	app.Logger.Debug("Application initialized",
		zap.Any("cost_rates", rates),
		zap.Any("thresholds", thresholds))

	return nil
}

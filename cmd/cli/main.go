package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/halion16/hr-scheduling-app-sub004/cmd/cli/commands"
	"github.com/halion16/hr-scheduling-app-sub004/internal/config"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/core/services"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/postgres"
	"github.com/halion16/hr-scheduling-app-sub004/pkg/utils/logging"
)

var env string

func main() {
	// Created empty here and populated by PersistentPreRunE, so commands
	// can safely capture the pointer at build time
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "hrsched",
		Short: "HR Scheduling CLI - Assign shifts and audit labor-rest compliance",
		Long:  `A CLI tool for generating shift schedules across stores, auditing CCNL rest compliance, and reporting rotation equity.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.GenerateScheduleCmd(app))
	rootCmd.AddCommand(commands.AuditComplianceCmd(app))
	rootCmd.AddCommand(commands.ViewStatisticsCmd(app))
	rootCmd.AddCommand(commands.RequestSubstitutionCmd(app))
	rootCmd.AddCommand(commands.ApproveSubstitutionCmd(app))
	rootCmd.AddCommand(commands.ConfirmAssignmentCmd(app))
	rootCmd.AddCommand(commands.ListEmployeesCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and database
func initApp(app *commands.AppContext) error {
	ctx := context.Background()

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Info("Starting application", zap.String("environment", env))

	logger.Info("Loading configuration")
	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully")

	logger.Info("Connecting to database")
	database, err := postgres.NewDB(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Debug("Database ready")

	app.Cfg = cfg
	app.Logger = logger
	app.Database = database
	app.Stats = services.NewStatistics(database, logger)
	app.Ctx = ctx
	return nil
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jwlsn/booking_revenue_app/internal/clients/bookings"
	portssvc "github.com/jwlsn/booking_revenue_app/internal/core/ports/services"
	"github.com/jwlsn/booking_revenue_app/internal/core/services"
	"github.com/jwlsn/booking_revenue_app/internal/platform/config"
	"github.com/jwlsn/booking_revenue_app/internal/repositories/database/pgsql"
	"github.com/jwlsn/booking_revenue_app/internal/utils"
	"github.com/jwlsn/booking_revenue_app/pkg/database"
	"github.com/spf13/cobra"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	app := &etlApp{cfg: cfg, logger: logger}

	root := &cobra.Command{
		Use:   "revenue_etl",
		Short: "Booking revenue ETL pipeline",
		Long:  "Ingests bookings and exchange rates into PostgreSQL and produces the monthly revenue summary.",
	}
	root.AddCommand(
		app.migrateCmd(),
		app.ingestCmd(),
		app.loadRatesCmd(),
		app.reportCmd(),
		app.runCmd(),
		app.tokenCmd(),
	)

	if err := root.Execute(); err != nil {
		logger.Error("Command failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// etlApp carries the shared configuration and logger for every subcommand.
type etlApp struct {
	cfg    *config.Config
	logger *slog.Logger
}

// connect opens the shared connection pool. Callers must Close it.
func (a *etlApp) connect(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := database.NewPgxPool(ctx, a.cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database pool: %w", err)
	}
	return pool, nil
}

func (a *etlApp) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := database.RunMigrations(a.cfg.DatabaseURL, "file://migrations"); err != nil {
				return err
			}
			a.logger.Info("Database migrations applied.")
			return nil
		},
	}
}

func (a *etlApp) ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Fetch all bookings from the upstream API into the raw store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := a.ingestBookings(ctx, pool)
			if err != nil {
				return err
			}
			a.logger.Info("Ingestion finished", slog.Int("booking_count", count))
			return nil
		},
	}
}

func (a *etlApp) loadRatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load-rates [csv-file]",
		Short: "Replace the exchange rate store from a reference CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			path := a.cfg.RatesFilePath
			if len(args) == 1 {
				path = args[0]
			}

			pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := a.loadRates(ctx, pool, path)
			if err != nil {
				return err
			}
			a.logger.Info("Rates loaded", slog.String("path", path), slog.Int("rate_count", count))
			return nil
		},
	}
	return cmd
}

func (a *etlApp) reportCmd() *cobra.Command {
	var output string
	var month string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the monthly revenue summary and write it as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			if output == "" {
				output = a.cfg.OutputPath
			}
			return a.writeReport(ctx, pool, month, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (defaults to OUTPUT_PATH)")
	cmd.Flags().StringVarP(&month, "month", "m", "", "restrict the summary to one YYYY-MM month")
	return cmd
}

func (a *etlApp) runCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: migrate, ingest, load rates, write the summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if err := database.RunMigrations(a.cfg.DatabaseURL, "file://migrations"); err != nil {
				return err
			}
			a.logger.Info("Database migrations applied.")

			pool, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer pool.Close()

			bookingCount, err := a.ingestBookings(ctx, pool)
			if err != nil {
				return err
			}
			a.logger.Info("Ingestion finished", slog.Int("booking_count", bookingCount))

			rateCount, err := a.loadRates(ctx, pool, a.cfg.RatesFilePath)
			if err != nil {
				return err
			}
			a.logger.Info("Rates loaded", slog.Int("rate_count", rateCount))

			if output == "" {
				output = a.cfg.OutputPath
			}
			return a.writeReport(ctx, pool, "", output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output CSV path (defaults to OUTPUT_PATH)")
	return cmd
}

func (a *etlApp) tokenCmd() *cobra.Command {
	var subject string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the report API",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := utils.GenerateJWT(subject, a.cfg.JWTSecret, a.cfg.JWTExpiryDuration, a.cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("failed to generate token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVarP(&subject, "subject", "s", "revenue-etl", "token subject")
	return cmd
}

func (a *etlApp) ingestBookings(ctx context.Context, pool *pgxpool.Pool) (int, error) {
	source := bookings.NewClient(a.cfg.BookingsAPIBaseURL, a.cfg.BookingsAPIPageSize, a.logger)
	bookingRepo := pgsql.NewPgxBookingRepository(pool)
	ingestion := services.NewIngestionService(source, bookingRepo)
	return ingestion.IngestBookings(ctx)
}

func (a *etlApp) loadRates(ctx context.Context, pool *pgxpool.Pool, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open rate file %s: %w", path, err)
	}
	defer f.Close()

	rateService := services.NewRateService(pgsql.NewPgxExchangeRateRepository(pool))
	return rateService.LoadRatesFromCSV(ctx, f)
}

func (a *etlApp) writeReport(ctx context.Context, pool *pgxpool.Pool, month, output string) error {
	bookingRepo := pgsql.NewPgxBookingRepository(pool)
	rateRepo := pgsql.NewPgxExchangeRateRepository(pool)

	var reporting portssvc.ReportingSvc = services.NewReportingService(bookingRepo, rateRepo, a.cfg.ReportingCurrency)
	rows, err := reporting.MonthlyRevenueSummary(ctx, month)
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", output, err)
	}
	defer f.Close()

	export := services.NewExportService(a.cfg.ReportingCurrency)
	if err := export.WriteSummaryCSV(f, rows); err != nil {
		return err
	}

	a.logger.Info("Summary written", slog.String("path", output), slog.Int("row_count", len(rows)))
	return nil
}

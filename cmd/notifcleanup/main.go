package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DavidGamba/go-getoptions"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/config"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/daily-report-backend-go/internal/repository/postgresql"
	notificationService "github.com/cmlabs-hris/daily-report-backend-go/internal/service/notification"
)

// commandLineOptionValues holds the values passed on the command line
type commandLineOptionValues struct {
	CompanyID string
	DryRun    bool
	EnvFiles  []string
	Timeout   time.Duration
}

// parseCommandLine returns nil options when only help was requested
func parseCommandLine(args []string, stderr io.Writer) (*commandLineOptionValues, error) {
	optionValues := &commandLineOptionValues{}
	var timeout string
	opt := getoptions.New()

	opt.Bool("help", false, opt.Alias("h", "?"))
	opt.StringVar(&optionValues.CompanyID, "company", "",
		opt.Alias("c"),
		opt.ArgName("uuid"),
		opt.Description("only clean notifications of this company"))
	opt.BoolVar(&optionValues.DryRun, "dry-run", false,
		opt.Alias("n"),
		opt.Description("report duplicates without deleting them"))
	opt.StringSliceVar(&optionValues.EnvFiles, "env-file", 1, 1,
		opt.Alias("e"),
		opt.ArgName("path"),
		opt.Description("env file(s) to load instead of .env"))
	opt.StringVar(&timeout, "timeout", "5m",
		opt.ArgName("duration"),
		opt.Description("abort the run after this long, e.g. 30s or 10m"))

	remaining, err := opt.Parse(args)
	if opt.Called("help") {
		fmt.Fprint(stderr, opt.Help())
		return nil, nil
	}
	if err != nil {
		fmt.Fprint(stderr, opt.Help(getoptions.HelpSynopsis))
		return nil, err
	}
	if len(remaining) > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", remaining)
	}
	if optionValues.CompanyID != "" && !validator.IsValidUUID(optionValues.CompanyID) {
		return nil, fmt.Errorf("--company must be a UUID, got %q", optionValues.CompanyID)
	}
	optionValues.Timeout, err = time.ParseDuration(timeout)
	if err != nil || optionValues.Timeout <= 0 {
		return nil, fmt.Errorf("--timeout must be a positive duration, got %q", timeout)
	}

	return optionValues, nil
}

func main() {
	optionValues, err := parseCommandLine(os.Args[1:], os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
	if optionValues == nil {
		os.Exit(0)
	}

	if err := run(optionValues, os.Stdout); err != nil {
		slog.Error("notification cleanup failed", "error", err)
		os.Exit(1)
	}
}

func run(optionValues *commandLineOptionValues, out io.Writer) error {
	cfg, err := config.Load(optionValues.EnvFiles...)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, optionValues.Timeout)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolConfig{
		MaxConns:       2,
		ConnectTimeout: cfg.Database.ConnectTimeout,
	})
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer db.Close()

	result, err := notificationService.CleanupDuplicates(ctx,
		postgresql.NewNotificationRepository(db),
		notification.Filter{CompanyID: optionValues.CompanyID},
		optionValues.DryRun,
	)
	if err != nil {
		return err
	}

	return writeResult(out, result)
}

func writeResult(out io.Writer, result *notification.CleanupResult) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

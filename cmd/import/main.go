// Command import loads prizes or tickets from a CSV file into the configured store.
//
//	import -kind prizes -file prizes.csv    # name,probability,eventId
//	import -kind tickets -file tickets.csv  # userId,eventId
//
// The first row is treated as a header. Rows that fail validation are logged and skipped.
// With -dry-run the rows are validated against an in-memory store and nothing is written.
package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/veselicnik/srecke-backend/internal/config"
	"github.com/veselicnik/srecke-backend/internal/models"
	"github.com/veselicnik/srecke-backend/internal/repositories/memory"
	mongorepo "github.com/veselicnik/srecke-backend/internal/repositories/mongodb"
	"github.com/veselicnik/srecke-backend/internal/services"
	"github.com/veselicnik/srecke-backend/pkg/logger"
	mongodb "github.com/veselicnik/srecke-backend/pkg/mongodb"
	"golang.org/x/exp/slog"
)

type options struct {
	Kind   string
	File   string
	DryRun bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	fs.StringVar(&opts.Kind, "kind", "", "What to import: prizes or tickets")
	fs.StringVar(&opts.File, "file", "", "CSV file path")
	fs.BoolVar(&opts.DryRun, "dry-run", false, "Validate the file without writing to the database")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if opts.Kind != "prizes" && opts.Kind != "tickets" {
		return options{}, errors.New("-kind must be prizes or tickets")
	}
	if opts.File == "" {
		return options{}, errors.New("-file is required")
	}
	return opts, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	logger.Setup(os.Stderr, cfg.LogLevel)

	file, err := os.Open(opts.File)
	if err != nil {
		slog.Error("Failed to open CSV file", "error", err, "file", opts.File)
		os.Exit(1)
	}
	defer file.Close()

	ctx := context.Background()
	prizeService, ticketService, closeFn, err := openServices(ctx, cfg, opts.DryRun)
	if err != nil {
		slog.Error("Failed to open storage", "error", err)
		os.Exit(1)
	}
	defer closeFn()

	var res result
	switch opts.Kind {
	case "prizes":
		res, err = importPrizes(ctx, file, prizeService)
	case "tickets":
		res, err = importTickets(ctx, file, ticketService)
	}
	if err != nil {
		slog.Error("Import failed", "error", err, "imported", res.Imported, "skipped", res.Skipped)
		os.Exit(1)
	}
	slog.Info("Import finished", "kind", opts.Kind, "dryRun", opts.DryRun, "imported", res.Imported, "skipped", res.Skipped)
}

func openServices(ctx context.Context, cfg *config.Config, dryRun bool) (services.PrizeService, services.TicketService, func(), error) {
	if dryRun || cfg.Storage.Driver == config.StorageMemory {
		if !dryRun {
			slog.Warn("STORAGE_DRIVER is memory, nothing will be persisted")
		}
		return services.NewPrizeService(memory.NewPrizeRepository()),
			services.NewTicketService(memory.NewTicketRepository(), nil),
			func() {}, nil
	}

	client, err := mongodb.NewClient(ctx, cfg.MongoDB.URI, cfg.MongoDB.ConnectTimeout)
	if err != nil {
		return nil, nil, nil, err
	}
	db := client.Database(cfg.MongoDB.Database)
	return services.NewPrizeService(mongorepo.NewPrizeRepository(db)),
		services.NewTicketService(mongorepo.NewTicketRepository(db), nil),
		func() { _ = client.Disconnect(context.Background()) }, nil
}

type result struct {
	Imported int
	Skipped  int
}

// importPrizes reads name,probability,eventId rows
func importPrizes(ctx context.Context, r io.Reader, svc services.PrizeService) (result, error) {
	return importRows(r, 3, func(line int, rec []string) error {
		p, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return fmt.Errorf("%w: invalid probability %q", services.ErrValidation, rec[1])
		}
		_, err = svc.CreatePrize(ctx, &models.CreatePrizeRequest{Name: rec[0], Probability: p, EventID: rec[2]})
		return err
	})
}

// importTickets reads userId,eventId rows
func importTickets(ctx context.Context, r io.Reader, svc services.TicketService) (result, error) {
	return importRows(r, 2, func(line int, rec []string) error {
		_, err := svc.CreateTicket(ctx, strings.TrimSpace(rec[0]), rec[1])
		return err
	})
}

// importRows skips the header, then feeds every row with at least fields columns to fn.
// Validation errors skip the row; any other error stops the import.
func importRows(r io.Reader, fields int, fn func(line int, rec []string) error) (result, error) {
	var res result
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	if _, err := reader.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return res, errors.New("CSV file is empty")
		}
		return res, fmt.Errorf("failed to read CSV header: %w", err)
	}

	for line := 2; ; line++ {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("failed to parse CSV line %d: %w", line, err)
		}
		if len(rec) < fields {
			slog.Warn("Skipping short record", "line", line, "fields", len(rec))
			res.Skipped++
			continue
		}
		if err := fn(line, rec); err != nil {
			if errors.Is(err, services.ErrValidation) {
				slog.Warn("Skipping invalid record", "line", line, "error", err)
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("line %d: %w", line, err)
		}
		res.Imported++
	}
}

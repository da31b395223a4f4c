package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mmercade/shotplan/internal/common"
	"github.com/mmercade/shotplan/internal/contract"
	"github.com/mmercade/shotplan/internal/export"
	"github.com/mmercade/shotplan/internal/ingest"
	"github.com/mmercade/shotplan/internal/parser"
	"github.com/mmercade/shotplan/internal/repository"
)

func newParser(cfg *common.Config) (*parser.Parser, error) {
	lex, err := parser.LoadLexicon(cfg.Parser.LexiconPath)
	if err != nil {
		return nil, err
	}
	return parser.New(lex, cfg.Parser.DefaultYear, slog.Default()), nil
}

func openStore(ctx context.Context, cfg *common.Config, inmem bool) (*repository.DB, repository.ScheduleRepository, error) {
	dbCfg := repository.Config{
		Driver:           cfg.Database.Driver,
		DSN:              cfg.Database.DSN,
		MaxConns:         cfg.Database.MaxConns,
		MinConns:         cfg.Database.MinConns,
		MaxConnLifetime:  cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:  cfg.Database.MaxConnIdleTime,
		DialTimeout:      cfg.Database.DialTimeout,
		StatementTimeout: cfg.Database.StatementTimeout,
	}
	if inmem {
		dbCfg.Driver = repository.DriverSQLite
		dbCfg.DSN = "file:shotplan?mode=memory&cache=shared"
	}
	db, err := repository.Open(ctx, dbCfg, slog.Default())
	if err != nil {
		return nil, nil, err
	}
	repo := repository.NewScheduleRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		db.Close(slog.Default())
		return nil, nil, err
	}
	return db, repo, nil
}

func parseCmd(cfg *common.Config) *cobra.Command {
	var outPath, xlsxPath string
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse one extracted plan document to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newParser(cfg)
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			res := p.Parse(string(data))

			out, err := json.MarshalIndent(res, "", "  ")
			if err != nil {
				return err
			}
			if err := contract.ValidateResult(out); err != nil {
				return common.WrapError(err, "result violates output contract")
			}

			if xlsxPath != "" {
				b, err := export.NewService(slog.Default()).ExportWeeksXLSX(res)
				if err != nil {
					return err
				}
				if err := os.WriteFile(xlsxPath, b, 0o644); err != nil {
					return err
				}
			}
			if outPath != "" {
				return os.WriteFile(outPath, out, 0o644)
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write JSON to file instead of stdout")
	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "also write an XLSX workbook")
	return cmd
}

func ingestCmd(cfg *common.Config) *cobra.Command {
	var inmem bool
	cmd := &cobra.Command{
		Use:   "ingest <dir>",
		Short: "Parse and store every .txt plan document under a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			p, err := newParser(cfg)
			if err != nil {
				return err
			}
			db, repo, err := openStore(ctx, cfg, inmem)
			if err != nil {
				return err
			}
			defer db.Close(slog.Default())

			stats, results, err := ingest.NewService(p, repo, slog.Default()).IngestDirectory(ctx, args[0])
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Err != nil {
					fmt.Printf("FAIL  %s: %v\n", r.Path, r.Err)
					continue
				}
				fmt.Printf("OK    %s: %d weeks, %d days, %d warnings (job %s)\n",
					r.Path, r.Weeks, r.Days, len(r.Warnings), r.JobID)
			}
			fmt.Printf("scanned %d, succeeded %d, failed %d\n",
				stats.Scanned, stats.Succeeded, stats.Failed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&inmem, "inmem", false, "use an in-memory SQLite store")
	return cmd
}

func exportCmd(cfg *common.Config) *cobra.Command {
	var jobID string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export a stored parse run to XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			db, repo, err := openStore(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer db.Close(slog.Default())

			id, err := resolveJobID(ctx, repo, jobID)
			if err != nil {
				return err
			}
			res, err := repo.GetResult(ctx, id)
			if err != nil {
				return err
			}
			b, err := export.NewService(slog.Default()).ExportWeeksXLSX(res)
			if err != nil {
				return err
			}
			out := filepath.Join(cfg.Export.OutputDir,
				fmt.Sprintf("schedule-%s.xlsx", id))
			if err := os.WriteFile(out, b, 0o644); err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
	cmd.Flags().StringVar(&jobID, "job", "", "import job ID (defaults to the most recent)")
	return cmd
}

func resolveJobID(ctx context.Context, repo repository.ScheduleRepository, raw string) (uuid.UUID, error) {
	if raw != "" {
		return uuid.Parse(raw)
	}
	jobs, err := repo.ListJobs(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	if len(jobs) == 0 {
		return uuid.Nil, common.NewAppError("EXPORT_ERROR", "no stored parse runs", common.ErrNotFound)
	}
	return jobs[0].ID, nil
}

func dbhealthCmd(cfg *common.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "dbhealth",
		Short: "Open and ping the configured schedule store",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			db, repo, err := openStore(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer db.Close(slog.Default())

			if err := db.HealthCheck(ctx, 1*time.Second, slog.Default()); err != nil {
				return fmt.Errorf("DB health: FAIL (%w)", err)
			}
			jobs, err := repo.ListJobs(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("DB health: OK (%d stored parse runs)\n", len(jobs))
			return nil
		},
	}
}

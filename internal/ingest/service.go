// Package ingest walks directories of extracted plan documents, runs the
// parser over each and persists the results. The document-to-text
// extraction itself happens upstream; this layer trusts the .txt files
// verbatim.
package ingest

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmercade/shotplan/constants"
	"github.com/mmercade/shotplan/internal/common"
	"github.com/mmercade/shotplan/internal/parser"
	"github.com/mmercade/shotplan/internal/repository"
)

// Service handles ingestion business logic.
type Service struct {
	parser *parser.Parser
	repo   repository.ScheduleRepository
	logger *slog.Logger
}

// NewService creates a new ingest service.
func NewService(p *parser.Parser, repo repository.ScheduleRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{parser: p, repo: repo, logger: logger}
}

// FileResult is the outcome of ingesting one document.
type FileResult struct {
	JobID    uuid.UUID
	Path     string
	Weeks    int
	Days     int
	Warnings []string
	Err      error
}

// DirStats summarizes a directory ingest.
type DirStats struct {
	Scanned   int
	Succeeded int
	Failed    int
}

// IngestFile parses one extracted document and persists the result.
func (s *Service) IngestFile(ctx context.Context, path string) (FileResult, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return FileResult{}, common.NewAppError("INGEST_ERROR", "path is required", common.ErrInvalidInput)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return FileResult{}, common.WrapError(err, "read document")
	}

	res := s.parser.Parse(string(data))
	days := 0
	for _, w := range res.Weeks {
		days += len(w.Days)
	}

	job := repository.ImportJob{
		ID:         uuid.New(),
		SourcePath: path,
		Profile:    string(parser.DetectProfile(parser.SplitLines(string(data)))),
		Status:     constants.JobStatusParsed,
		Warnings:   res.Warnings,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.repo.SaveResult(ctx, job, res); err != nil {
		return FileResult{}, common.WrapError(err, "persist result")
	}

	s.logger.Info("ingest.file.done",
		"job_id", job.ID,
		"path", path,
		"weeks", len(res.Weeks),
		"days", days,
		"warnings", len(res.Warnings))
	return FileResult{
		JobID:    job.ID,
		Path:     path,
		Weeks:    len(res.Weeks),
		Days:     days,
		Warnings: res.Warnings,
	}, nil
}

// IngestDirectory parses every .txt document under dir.
func (s *Service) IngestDirectory(ctx context.Context, dir string) (DirStats, []FileResult, error) {
	var stats DirStats
	var results []FileResult

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".txt") {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		stats.Scanned++
		r, ferr := s.IngestFile(ctx, path)
		if ferr != nil {
			stats.Failed++
			s.logger.Error("ingest.file.failed", "path", path, "error", ferr)
			results = append(results, FileResult{Path: path, Err: ferr})
			return nil
		}
		stats.Succeeded++
		results = append(results, r)
		return nil
	})
	if err != nil {
		return stats, results, common.WrapError(err, "walk directory")
	}

	s.logger.Info("ingest.dir.done",
		"dir", dir,
		"scanned", stats.Scanned,
		"succeeded", stats.Succeeded,
		"failed", stats.Failed)
	return stats, results, nil
}

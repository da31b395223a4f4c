package ingest

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmercade/shotplan/internal/parser"
	"github.com/mmercade/shotplan/internal/repository"
)

const samplePlan = "SEMANA 1\n" +
	"DÍA 1 - 5 de enero 2024\n" +
	"HORARIO: 8:00 a 20:00\n" +
	"12 Int. Oficina\n"

func testService(t *testing.T) (*Service, repository.ScheduleRepository) {
	t.Helper()
	db, err := repository.Open(context.Background(),
		repository.Config{Driver: repository.DriverSQLite, DSN: ":memory:"}, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { db.Close(nil) })
	repo := repository.NewScheduleRepository(db)
	if err := repo.Migrate(context.Background()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(parser.New(nil, 0, nil), repo, nil), repo
}

func TestIngestFile(t *testing.T) {
	svc, repo := testService(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.txt")
	if err := os.WriteFile(path, []byte(samplePlan), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	fr, err := svc.IngestFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if fr.Weeks != 1 || fr.Days != 1 {
		t.Errorf("result = %d weeks, %d days; want 1/1", fr.Weeks, fr.Days)
	}

	stored, err := repo.GetResult(context.Background(), fr.JobID)
	if err != nil {
		t.Fatalf("load stored result: %v", err)
	}
	if len(stored.Weeks) != 1 {
		t.Fatalf("stored %d weeks, want 1", len(stored.Weeks))
	}
	if d := stored.Weeks[0].Days[4]; d == nil || d.CrewStart != "08:00" {
		t.Errorf("stored day = %+v", d)
	}
}

func TestIngestFile_MissingPath(t *testing.T) {
	svc, _ := testService(t)
	if _, err := svc.IngestFile(context.Background(), "  "); err == nil {
		t.Fatal("expected an error for an empty path")
	}
	if _, err := svc.IngestFile(context.Background(), "does-not-exist.txt"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestIngestDirectory(t *testing.T) {
	svc, _ := testService(t)
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(samplePlan), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}
	// non-document files must be skipped
	if err := os.WriteFile(filepath.Join(dir, "notes.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	stats, results, err := svc.IngestDirectory(context.Background(), dir)
	if err != nil {
		t.Fatalf("ingest dir: %v", err)
	}
	if stats.Scanned != 2 || stats.Succeeded != 2 || stats.Failed != 0 {
		t.Errorf("stats = %+v", stats)
	}
	if len(results) != 2 {
		t.Errorf("got %d results, want 2", len(results))
	}
}

package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmercade/shotplan/constants"
	"github.com/mmercade/shotplan/internal/common"
	"github.com/mmercade/shotplan/internal/entity"
)

// ImportJob is one stored parse run: a source document plus its extracted
// weeks.
type ImportJob struct {
	ID         uuid.UUID
	SourcePath string
	Profile    string
	Status     constants.JobStatus
	Warnings   []string
	CreatedAt  time.Time
}

// ScheduleRepository persists parse results.
type ScheduleRepository interface {
	Migrate(ctx context.Context) error
	SaveResult(ctx context.Context, job ImportJob, res *entity.Result) error
	GetResult(ctx context.Context, jobID uuid.UUID) (*entity.Result, error)
	ListJobs(ctx context.Context) ([]ImportJob, error)
}

type scheduleRepository struct {
	db *DB
}

func NewScheduleRepository(db *DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS import_jobs (
		id TEXT PRIMARY KEY,
		source_path TEXT NOT NULL,
		profile TEXT NOT NULL,
		status TEXT NOT NULL,
		warnings TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS weeks (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL REFERENCES import_jobs(id),
		start_date TEXT NOT NULL,
		label TEXT NOT NULL DEFAULT '',
		scope TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS days (
		id TEXT PRIMARY KEY,
		week_id TEXT NOT NULL REFERENCES weeks(id),
		date TEXT NOT NULL,
		week_start TEXT NOT NULL,
		day_index INTEGER NOT NULL,
		week_label TEXT NOT NULL DEFAULT '',
		sequences_json TEXT NOT NULL DEFAULT '[]',
		location_sequences_text TEXT NOT NULL DEFAULT '',
		transport_text TEXT NOT NULL DEFAULT '',
		observations_text TEXT NOT NULL DEFAULT '',
		precall TEXT NOT NULL DEFAULT '',
		crew_start TEXT NOT NULL DEFAULT '',
		crew_end TEXT NOT NULL DEFAULT '',
		crew_tipo TEXT NOT NULL
	)`,
}

func (r *scheduleRepository) Migrate(ctx context.Context) error {
	for _, stmt := range migrations {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return common.WrapError(err, "migrate schedule store")
		}
	}
	return nil
}

// SaveResult stores a parse run and all its weeks and days in one
// transaction.
func (r *scheduleRepository) SaveResult(ctx context.Context, job ImportJob, res *entity.Result) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return common.WrapError(err, "begin save")
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, r.db.rebind(
		`INSERT INTO import_jobs (id, source_path, profile, status, warnings, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`),
		job.ID.String(), job.SourcePath, job.Profile, string(job.Status),
		strings.Join(job.Warnings, "\n"), job.CreatedAt.UTC())
	if err != nil {
		return common.WrapError(err, "insert import job")
	}

	for _, w := range res.Weeks {
		weekID := uuid.New()
		_, err = tx.ExecContext(ctx, r.db.rebind(
			`INSERT INTO weeks (id, job_id, start_date, label, scope)
			 VALUES (?, ?, ?, ?, ?)`),
			weekID.String(), job.ID.String(), w.StartDate, w.Label, string(w.Scope))
		if err != nil {
			return common.WrapError(err, "insert week")
		}
		for _, d := range w.Days {
			seqJSON, err := json.Marshal(d.Sequences)
			if err != nil {
				return common.WrapError(err, "marshal sequences")
			}
			_, err = tx.ExecContext(ctx, r.db.rebind(
				`INSERT INTO days (id, week_id, date, week_start, day_index, week_label,
				  sequences_json, location_sequences_text, transport_text,
				  observations_text, precall, crew_start, crew_end, crew_tipo)
				 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
				uuid.New().String(), weekID.String(), d.DateISO, d.WeekStart,
				d.DayIndex, d.WeekLabel, string(seqJSON), d.LocationSequencesText,
				d.TransportText, d.ObservationsText, d.Precall,
				d.CrewStart, d.CrewEnd, d.CrewTipo)
			if err != nil {
				return common.WrapError(err, "insert day")
			}
		}
	}
	return common.WrapError(tx.Commit(), "commit save")
}

// GetResult reloads a stored parse run.
func (r *scheduleRepository) GetResult(ctx context.Context, jobID uuid.UUID) (*entity.Result, error) {
	var warnings string
	err := r.db.QueryRowContext(ctx, r.db.rebind(
		`SELECT warnings FROM import_jobs WHERE id = ?`), jobID.String()).Scan(&warnings)
	if err == sql.ErrNoRows {
		return nil, common.NewAppError("JOB_NOT_FOUND", jobID.String(), common.ErrNotFound)
	}
	if err != nil {
		return nil, common.WrapError(err, "load import job")
	}

	res := &entity.Result{Weeks: []*entity.Week{}}
	if warnings != "" {
		res.Warnings = strings.Split(warnings, "\n")
	} else {
		res.Warnings = []string{}
	}

	rows, err := r.db.QueryContext(ctx, r.db.rebind(
		`SELECT id, start_date, label, scope FROM weeks WHERE job_id = ? ORDER BY start_date, scope`),
		jobID.String())
	if err != nil {
		return nil, common.WrapError(err, "load weeks")
	}
	defer rows.Close()

	weekIDs := make([]string, 0, 8)
	for rows.Next() {
		var id, start, label, scope string
		if err := rows.Scan(&id, &start, &label, &scope); err != nil {
			return nil, common.WrapError(err, "scan week")
		}
		res.Weeks = append(res.Weeks, &entity.Week{
			StartDate: start,
			Label:     label,
			Scope:     constants.Scope(scope),
			Days:      make(map[int]*entity.Day),
		})
		weekIDs = append(weekIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, common.WrapError(err, "iterate weeks")
	}

	for i, weekID := range weekIDs {
		if err := r.loadDays(ctx, weekID, res.Weeks[i]); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (r *scheduleRepository) loadDays(ctx context.Context, weekID string, w *entity.Week) error {
	rows, err := r.db.QueryContext(ctx, r.db.rebind(
		`SELECT date, week_start, day_index, week_label, sequences_json,
		   location_sequences_text, transport_text, observations_text,
		   precall, crew_start, crew_end, crew_tipo
		 FROM days WHERE week_id = ? ORDER BY day_index`), weekID)
	if err != nil {
		return common.WrapError(err, "load days")
	}
	defer rows.Close()

	for rows.Next() {
		var d entity.Day
		var seqJSON string
		if err := rows.Scan(&d.DateISO, &d.WeekStart, &d.DayIndex, &d.WeekLabel,
			&seqJSON, &d.LocationSequencesText, &d.TransportText,
			&d.ObservationsText, &d.Precall, &d.CrewStart, &d.CrewEnd,
			&d.CrewTipo); err != nil {
			return common.WrapError(err, "scan day")
		}
		if err := json.Unmarshal([]byte(seqJSON), &d.Sequences); err != nil {
			return common.WrapError(err, "unmarshal sequences")
		}
		w.Days[d.DayIndex] = &d
	}
	return common.WrapError(rows.Err(), "iterate days")
}

// ListJobs returns stored parse runs, newest first.
func (r *scheduleRepository) ListJobs(ctx context.Context) ([]ImportJob, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, source_path, profile, status, warnings, created_at
		 FROM import_jobs ORDER BY created_at DESC`)
	if err != nil {
		return nil, common.WrapError(err, "list jobs")
	}
	defer rows.Close()

	var jobs []ImportJob
	for rows.Next() {
		var j ImportJob
		var id, status, warnings string
		if err := rows.Scan(&id, &j.SourcePath, &j.Profile, &status, &warnings, &j.CreatedAt); err != nil {
			return nil, common.WrapError(err, "scan job")
		}
		j.ID, err = uuid.Parse(id)
		if err != nil {
			return nil, common.WrapError(err, "parse job id")
		}
		j.Status = constants.JobStatus(status)
		if warnings != "" {
			j.Warnings = strings.Split(warnings, "\n")
		}
		jobs = append(jobs, j)
	}
	return jobs, common.WrapError(rows.Err(), "iterate jobs")
}

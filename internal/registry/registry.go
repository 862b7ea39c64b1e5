package registry

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/relayrun/relay/internal/nameutil"
	"github.com/relayrun/relay/internal/pipeline"
)

// Repository provides CRUD operations for pipelines, steps, and run records.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository using db.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save stores p, replacing any existing pipeline with the same name so that
// re-saving an edited pipeline file is safe. It returns the pipeline's ID.
func (r *Repository) Save(p pipeline.Pipeline) (int64, error) {
	if err := nameutil.ValidateName(p.Name); err != nil {
		return 0, err
	}

	trx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = trx.Rollback() }()

	id, err := upsertPipelineTx(trx, p)
	if err != nil {
		return 0, err
	}
	if _, err := trx.Exec("DELETE FROM steps WHERE pipeline_id = ?", id); err != nil {
		return 0, fmt.Errorf("clear steps: %w", err)
	}
	for i, s := range p.Steps {
		var workdir interface{}
		if s.Dir != "" {
			workdir = s.Dir
		}
		if _, err := trx.Exec(
			"INSERT INTO steps (pipeline_id, position, label, command, use_shell, workdir) VALUES (?, ?, ?, ?, ?, ?)",
			id, i+1, s.Label, s.Run, boolToInt(s.Shell), workdir,
		); err != nil {
			return 0, fmt.Errorf("insert step: %w", err)
		}
	}
	if err := trx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func upsertPipelineTx(trx *sql.Tx, p pipeline.Pipeline) (int64, error) {
	var description interface{}
	if p.Description != "" {
		description = p.Description
	}

	var id int64
	row := trx.QueryRow("SELECT id FROM pipelines WHERE name = ?", p.Name)
	switch err := row.Scan(&id); err {
	case nil:
		if _, err := trx.Exec(
			"UPDATE pipelines SET description = ?, pause_on_error = ? WHERE id = ?",
			description, boolToInt(p.PauseOnError), id,
		); err != nil {
			return 0, fmt.Errorf("update pipeline: %w", err)
		}
		return id, nil
	case sql.ErrNoRows:
		res, err := trx.Exec(
			"INSERT INTO pipelines (name, description, pause_on_error, created_at) VALUES (?, ?, ?, datetime('now'))",
			p.Name, description, boolToInt(p.PauseOnError),
		)
		if err != nil {
			return 0, fmt.Errorf("insert pipeline: %w", err)
		}
		return res.LastInsertId()
	default:
		return 0, err
	}
}

// GetByName retrieves a pipeline and its steps by name. It returns (nil, nil)
// when no pipeline with that name exists.
func (r *Repository) GetByName(name string) (*Pipeline, error) {
	row := r.db.QueryRow(
		"SELECT id, name, description, pause_on_error, created_at, last_run FROM pipelines WHERE name = ?", name)
	var p Pipeline
	var pause int
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &pause, &p.CreatedAt, &p.LastRun); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.PauseOnError = pause != 0

	rows, err := r.db.Query(
		"SELECT id, pipeline_id, position, label, command, use_shell, workdir FROM steps WHERE pipeline_id = ? ORDER BY position ASC", p.ID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var s Step
		var useShell int
		if err := rows.Scan(&s.ID, &s.PipelineID, &s.Position, &s.Label, &s.Command, &useShell, &s.Workdir); err != nil {
			return nil, err
		}
		s.UseShell = useShell != 0
		p.Steps = append(p.Steps, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all pipelines ordered by name, with their steps attached.
func (r *Repository) List() ([]Pipeline, error) {
	rows, err := r.db.Query("SELECT name FROM pipelines ORDER BY name ASC")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]Pipeline, 0, len(names))
	for _, name := range names {
		p, err := r.GetByName(name)
		if err != nil {
			return nil, err
		}
		if p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}

// Delete removes the named pipeline and its steps. It returns an error when
// no such pipeline exists.
func (r *Repository) Delete(name string) error {
	trx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = trx.Rollback() }()

	var id int64
	row := trx.QueryRow("SELECT id FROM pipelines WHERE name = ?", name)
	if err := row.Scan(&id); err != nil {
		if err == sql.ErrNoRows {
			return fmt.Errorf("pipeline not found: %s", name)
		}
		return err
	}
	if _, err := trx.Exec("DELETE FROM steps WHERE pipeline_id = ?", id); err != nil {
		return err
	}
	if _, err := trx.Exec("DELETE FROM pipelines WHERE id = ?", id); err != nil {
		return err
	}
	return trx.Commit()
}

// RecordRun appends a run record and stamps the pipeline's last_run. A zero
// pipelineID records a run of a pipeline that isn't in the registry (e.g.,
// run straight from a file).
func (r *Repository) RecordRun(pipelineID int64, pipelineName string, startedAt, finishedAt time.Time, exitCode int, failedStep string) error {
	var idVal interface{}
	if pipelineID != 0 {
		idVal = pipelineID
	}
	var failedVal interface{}
	if failedStep != "" {
		failedVal = failedStep
	}
	_, err := r.db.Exec(
		"INSERT INTO runs (pipeline_id, pipeline_name, started_at, finished_at, exit_code, failed_step) VALUES (?, ?, ?, ?, ?, ?)",
		idVal, pipelineName,
		startedAt.UTC().Format(time.RFC3339),
		finishedAt.UTC().Format(time.RFC3339),
		exitCode, failedVal,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	if pipelineID != 0 {
		if _, err := r.db.Exec("UPDATE pipelines SET last_run = ? WHERE id = ?",
			startedAt.UTC().Format(time.RFC3339), pipelineID); err != nil {
			return fmt.Errorf("stamp last_run: %w", err)
		}
	}
	return nil
}

// ListRuns returns recent runs, newest first. An empty name returns runs for
// every pipeline. limit <= 0 means no limit.
func (r *Repository) ListRuns(name string, limit int) ([]Run, error) {
	query := "SELECT id, pipeline_id, pipeline_name, started_at, finished_at, exit_code, failed_step FROM runs"
	var args []interface{}
	if name != "" {
		query += " WHERE pipeline_name = ?"
		args = append(args, name)
	}
	query += " ORDER BY started_at DESC, id DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var out []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.PipelineID, &run.PipelineName, &run.StartedAt, &run.FinishedAt, &run.ExitCode, &run.FailedStep); err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Package registry stores pipelines and their run history in SQLite.
package registry

import (
	"database/sql"

	"github.com/relayrun/relay/internal/pipeline"
)

// Pipeline is a stored pipeline row with its ordered steps.
type Pipeline struct {
	ID           int64
	Name         string
	Description  sql.NullString
	PauseOnError bool
	CreatedAt    string
	LastRun      sql.NullString
	Steps        []Step
}

// Step is a single stored step within a Pipeline.
type Step struct {
	ID         int64
	PipelineID int64
	Position   int
	Label      string
	Command    string
	UseShell   bool
	Workdir    sql.NullString
}

// Run is one recorded execution of a pipeline.
type Run struct {
	ID           int64
	PipelineID   sql.NullInt64
	PipelineName string
	StartedAt    string
	FinishedAt   sql.NullString
	ExitCode     int
	FailedStep   sql.NullString
}

// Spec converts the stored pipeline into the runnable form.
func (p *Pipeline) Spec() pipeline.Pipeline {
	out := pipeline.Pipeline{
		Name:         p.Name,
		Description:  p.Description.String,
		PauseOnError: p.PauseOnError,
	}
	for _, s := range p.Steps {
		out.Steps = append(out.Steps, pipeline.Step{
			Label: s.Label,
			Run:   s.Command,
			Shell: s.UseShell,
			Dir:   s.Workdir.String,
		})
	}
	return out
}

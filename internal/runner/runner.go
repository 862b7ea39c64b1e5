// Package runner executes pipeline steps strictly in order, halting at the
// first non-zero exit code.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.arcalot.io/log/v2"

	"github.com/relayrun/relay/internal/executor"
	"github.com/relayrun/relay/internal/interactive"
	"github.com/relayrun/relay/internal/pipeline"
)

// StepError reports the first failing step of a run. It is fatal: no step
// after the failing one is started, and the exit code is propagated to the
// caller unchanged.
type StepError struct {
	Label    string
	ExitCode int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %q failed with exit code %d", e.Label, e.ExitCode)
}

// StepResult records the outcome of one executed step.
type StepResult struct {
	Step       pipeline.Step
	ExitCode   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Report is the accumulator for a whole run. ExitCode is 0 when every step
// succeeded, otherwise the first failing step's code.
type Report struct {
	Pipeline   string
	ExitCode   int
	StartedAt  time.Time
	FinishedAt time.Time
	Steps      []StepResult
}

// FailedStep returns the label of the failing step, or "" for a clean run.
func (r *Report) FailedStep() string {
	for _, s := range r.Steps {
		if s.ExitCode != 0 {
			return s.Step.Label
		}
	}
	return ""
}

// Runner drives a pipeline through its steps one at a time. There is no
// parallelism, no retry, and no timeout; a step runs until its process
// terminates or ctx is canceled.
type Runner struct {
	Exec    executor.Runner
	Logger  log.Logger
	BaseDir string // working directory for steps that don't set their own
	Pause   bool   // pause for acknowledgment on failure even if the pipeline doesn't ask for it
	Out     io.Writer
	In      io.Reader
}

// New returns a Runner writing to stdout and reading pause acknowledgments
// from stdin.
func New(exec executor.Runner, logger log.Logger, baseDir string) *Runner {
	return &Runner{
		Exec:    exec,
		Logger:  logger,
		BaseDir: baseDir,
		Out:     os.Stdout,
		In:      os.Stdin,
	}
}

// Run executes p's steps in order. It returns the run report and, when a
// step fails, a *StepError carrying that step's exit code. An empty step
// list succeeds trivially.
func (r *Runner) Run(ctx context.Context, p pipeline.Pipeline) (*Report, error) {
	rep := &Report{Pipeline: p.Name, StartedAt: time.Now()}
	printBanner(r.Out, "relay - "+p.Name, rep.StartedAt)
	r.Logger.Debugf("running pipeline %q with %d step(s), base dir %q", p.Name, len(p.Steps), r.BaseDir)

	total := len(p.Steps)
	for i, step := range p.Steps {
		_, _ = fmt.Fprintf(r.Out, "[Step %d/%d] %s\n", i+1, total, step.Label)

		dir := step.Dir
		if dir == "" {
			dir = r.BaseDir
		}

		started := time.Now()
		code, execErr := r.Exec.Execute(ctx, step.Run, step.Shell, dir, r.Out, r.Out)
		rep.Steps = append(rep.Steps, StepResult{
			Step:       step,
			ExitCode:   code,
			StartedAt:  started,
			FinishedAt: time.Now(),
		})

		if execErr != nil {
			r.Logger.Errorf("step %q could not start: %v", step.Label, execErr)
		}
		if code != 0 {
			rep.ExitCode = code
			rep.FinishedAt = time.Now()
			_, _ = fmt.Fprintf(r.Out, "[ERROR] step %q failed with exit code %d\n", step.Label, code)
			if r.Pause || p.PauseOnError {
				interactive.Pause(r.Out, r.In)
			}
			return rep, &StepError{Label: step.Label, ExitCode: code}
		}
		r.Logger.Infof("step %q finished in %s", step.Label, time.Since(started).Round(time.Millisecond))
	}

	rep.FinishedAt = time.Now()
	printClosing(r.Out, "all steps completed successfully")
	return rep, nil
}

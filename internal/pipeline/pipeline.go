// Package pipeline defines the step sequences relay runs and their YAML
// file format.
package pipeline

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/relayrun/relay/internal/executor"
	"github.com/relayrun/relay/internal/nameutil"
)

// Step is one external command invocation treated as an atomic unit of a
// run, with a pass/fail outcome decided by its exit code.
type Step struct {
	// Label is the human-readable progress line for the step. Defaults to
	// the command text.
	Label string `yaml:"label"`
	// Run is the command to execute. By default it is tokenized into
	// program + arguments and spawned directly.
	Run string `yaml:"run"`
	// Shell runs the command through the platform shell instead, for steps
	// that need pipes, redirection, or builtins.
	Shell bool `yaml:"shell"`
	// Dir overrides the run's base directory for this step only.
	Dir string `yaml:"dir"`
}

// Pipeline is a named, ordered list of steps. Execution is strictly
// sequential and halts at the first non-zero exit code.
type Pipeline struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	PauseOnError bool   `yaml:"pause_on_error"`
	Steps        []Step `yaml:"steps"`
}

// Spec is the top-level shape of a pipeline file.
type Spec struct {
	Pipelines []Pipeline `yaml:"pipelines"`
}

// Parse decodes and normalizes a pipeline spec. Every pipeline in the file
// is validated; an empty step list is allowed (such a pipeline trivially
// succeeds).
func Parse(data []byte) (*Spec, error) {
	var spec Spec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse pipeline file: %w", err)
	}
	if len(spec.Pipelines) == 0 {
		return nil, fmt.Errorf("pipeline file defines no pipelines")
	}
	for i := range spec.Pipelines {
		if err := spec.Pipelines[i].normalize(); err != nil {
			return nil, err
		}
	}
	return &spec, nil
}

// LoadFile reads and parses a pipeline spec file.
func LoadFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pipeline file: %w", err)
	}
	return Parse(data)
}

func (p *Pipeline) normalize() error {
	name, _ := nameutil.SanitizeName(p.Name)
	p.Name = name
	if err := nameutil.ValidateName(p.Name); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}
	for i := range p.Steps {
		if err := p.Steps[i].normalize(p.Name, i); err != nil {
			return err
		}
	}
	return nil
}

func (s *Step) normalize(pipelineName string, idx int) error {
	s.Run = executor.Sanitize(strings.TrimSpace(s.Run))
	if s.Run == "" {
		return fmt.Errorf("pipeline %q: step %d has no command", pipelineName, idx+1)
	}
	if err := executor.ValidateCommand(s.Run); err != nil {
		return fmt.Errorf("pipeline %q: step %d: %w", pipelineName, idx+1, err)
	}
	s.Label = strings.TrimSpace(s.Label)
	if s.Label == "" {
		s.Label = s.Run
	}
	return nil
}

package pipeline

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleSpec = `
pipelines:
  - name: update-deploy
    description: refresh the database then redeploy the site
    pause_on_error: true
    steps:
      - label: Updating database
        run: python main.py
      - label: Deploying website
        run: npx vercel --prod
        shell: true
  - name: push-data
    steps:
      - run: python push_data.py
`

func TestParseSpec(t *testing.T) {
	spec, err := Parse([]byte(sampleSpec))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(spec.Pipelines) != 2 {
		t.Fatalf("expected 2 pipelines, got %d", len(spec.Pipelines))
	}

	p := spec.Pipelines[0]
	if p.Name != "update-deploy" {
		t.Fatalf("unexpected name: %q", p.Name)
	}
	if !p.PauseOnError {
		t.Fatalf("expected pause_on_error")
	}
	if len(p.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(p.Steps))
	}
	if p.Steps[0].Label != "Updating database" || p.Steps[0].Run != "python main.py" {
		t.Fatalf("unexpected first step: %+v", p.Steps[0])
	}
	if !p.Steps[1].Shell {
		t.Fatalf("expected shell step")
	}
}

func TestParseDefaultsLabelToCommand(t *testing.T) {
	spec, err := Parse([]byte(sampleSpec))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	s := spec.Pipelines[1].Steps[0]
	if s.Label != "python push_data.py" {
		t.Fatalf("expected label to default to command, got %q", s.Label)
	}
}

func TestParseRejectsEmptyCommand(t *testing.T) {
	in := "pipelines:\n  - name: broken\n    steps:\n      - label: no command\n        run: '  '\n"
	if _, err := Parse([]byte(in)); err == nil {
		t.Fatalf("expected error for empty command")
	} else if !strings.Contains(err.Error(), "step 1") {
		t.Fatalf("expected error to name the step, got: %v", err)
	}
}

func TestParseRejectsEmptyName(t *testing.T) {
	in := "pipelines:\n  - name: ''\n    steps:\n      - run: echo hi\n"
	if _, err := Parse([]byte(in)); err == nil {
		t.Fatalf("expected error for empty pipeline name")
	}
}

func TestParseRejectsEmptyFile(t *testing.T) {
	if _, err := Parse([]byte("pipelines: []\n")); err == nil {
		t.Fatalf("expected error for empty pipeline list")
	}
}

func TestParseAllowsEmptyStepList(t *testing.T) {
	spec, err := Parse([]byte("pipelines:\n  - name: noop\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(spec.Pipelines[0].Steps) != 0 {
		t.Fatalf("expected no steps")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pipelines.yml")
	if err := os.WriteFile(path, []byte(sampleSpec), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	spec, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(spec.Pipelines) != 2 {
		t.Fatalf("expected 2 pipelines, got %d", len(spec.Pipelines))
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

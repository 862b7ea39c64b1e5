package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/relayrun/relay/internal/config"
	"github.com/relayrun/relay/internal/db"
	"github.com/relayrun/relay/internal/executor"
	"github.com/relayrun/relay/internal/interactive"
	"github.com/relayrun/relay/internal/pipeline"
	"github.com/relayrun/relay/internal/registry"
	"github.com/relayrun/relay/internal/runner"
	"github.com/relayrun/relay/internal/security"
)

var runCmd = &cobra.Command{
	Use:   "run <name|file>",
	Short: "Run a saved pipeline, or one straight from a YAML file",
	Long: "Run a pipeline's steps strictly in order, stopping at the first non-zero exit code.\n" +
		"The failing step's exit code becomes relay's exit code. Examples:\n" +
		"  relay run update-deploy\n" +
		"  relay run pipelines.yml --pause",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		dry, _ := cmd.Flags().GetBool("dry-run")
		confirmFlag, _ := cmd.Flags().GetBool("confirm")
		pause, _ := cmd.Flags().GetBool("pause")
		force, _ := cmd.Flags().GetBool("force")
		baseDir, _ := cmd.Flags().GetString("base-dir")

		logger := newLogger(cmd)

		dbConn, err := db.InitDB()
		if err != nil {
			return err
		}
		defer func() { _ = dbConn.Close() }()
		repo := registry.NewRepository(dbConn)

		var p pipeline.Pipeline
		var pipelineID int64
		if isPipelineFile(target) {
			spec, err := pipeline.LoadFile(target)
			if err != nil {
				return err
			}
			if len(spec.Pipelines) != 1 {
				return fmt.Errorf("%s defines %d pipelines; save them with 'relay save' and run one by name", target, len(spec.Pipelines))
			}
			p = spec.Pipelines[0]
		} else {
			stored, err := repo.GetByName(target)
			if err != nil {
				return err
			}
			if stored == nil {
				return fmt.Errorf("pipeline not found: %s", target)
			}
			p = stored.Spec()
			pipelineID = stored.ID
		}

		if confirmFlag {
			if !interactive.Confirm(fmt.Sprintf("Run '%s' now?", p.Name)) {
				fmt.Println("aborted")
				return nil
			}
		}

		if !force {
			// Security: refuse obviously destructive step commands
			for _, s := range p.Steps {
				if err := security.CheckAllowed(s.Run); err != nil {
					return fmt.Errorf("refusing to run potentially dangerous command '%s': %v (use --force to override)", s.Run, err)
				}
			}
		}

		if baseDir == "" {
			baseDir, err = config.BaseDir()
			if err != nil {
				return fmt.Errorf("resolve base dir: %w", err)
			}
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		r := runner.New(executor.New(dry), logger, baseDir)
		r.Pause = pause

		rep, runErr := r.Run(ctx, p)
		if !dry {
			if err := repo.RecordRun(pipelineID, p.Name, rep.StartedAt, rep.FinishedAt, rep.ExitCode, rep.FailedStep()); err != nil {
				logger.Warningf("could not record run: %v", err)
			}
		}
		return runErr
	},
}

// isPipelineFile decides whether the run target names a pipeline file rather
// than a registry entry.
func isPipelineFile(target string) bool {
	switch strings.ToLower(filepath.Ext(target)) {
	case ".yml", ".yaml":
		return true
	}
	if _, err := os.Stat(target); err == nil {
		return true
	}
	return false
}

func init() {
	runCmd.Flags().Bool("dry-run", false, "Print step commands instead of executing them")
	runCmd.Flags().Bool("confirm", false, "Ask for confirmation before running")
	runCmd.Flags().Bool("pause", false, "Wait for Enter after a failing step before exiting")
	runCmd.Flags().Bool("force", false, "Override safety checks and force execution")
	runCmd.Flags().String("base-dir", "", "Working directory for steps (default: the relay executable's directory)")
	rootCmd.AddCommand(runCmd)
}

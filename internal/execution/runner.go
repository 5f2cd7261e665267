package execution

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"rts/internal/config"
	"rts/internal/discovery"
	"rts/internal/domain"
	"rts/internal/parser"
	"rts/internal/workspace"
)

// Runner executes the full v1→v2 cycle for a single project on one worker:
// copy v1, compile, run under the agent, overlay v2, compile, run again,
// then compare the v2 selected-test count against the expected file.
type Runner struct {
	config   *config.Config
	compiler *Compiler
	sources  *discovery.Parser
	junit    *parser.JUnitParser
}

// NewRunner creates a new Runner
func NewRunner(cfg *config.Config, compiler *Compiler, sources *discovery.Parser, junit *parser.JUnitParser) *Runner {
	return &Runner{
		config:   cfg,
		compiler: compiler,
		sources:  sources,
		junit:    junit,
	}
}

// Run executes the cycle for one project in the worker's scratch tree.
// Errors never abort the run as a whole; they come back in the result with
// the stage that produced them.
func (r *Runner) Run(project domain.Project, workerID int) (result domain.ProjectResult) {
	started := time.Now()
	result = domain.ProjectResult{Project: project}

	scratch := workspace.New(r.config.GetScratchDir(workerID))
	defer func() {
		if !r.config.KeepScratch {
			_ = scratch.Remove()
		}
		result.Duration = time.Since(started)
	}()

	// Read the expected count before doing any expensive work
	expected, err := domain.ReadExpected(project.ExpectedPath)
	if err != nil {
		return fail(&result, domain.StageExpected, err)
	}
	result.Expected = expected

	if err := scratch.Reset(); err != nil {
		return fail(&result, domain.StageCopyV1, err)
	}

	// v1 pass: full run primes the agent's dependency cache
	if err := scratch.CopyVersion(project.V1Path); err != nil {
		return fail(&result, domain.StageCopyV1, err)
	}
	v1, stage, err := r.compileAndRun(scratch, "v1", domain.StageCompileV1, domain.StageRunV1)
	result.V1 = v1
	if err != nil {
		return fail(&result, stage, err)
	}

	// v2 pass: overlay the changed sources and let the agent select.
	// Projects without a v2 directory rerun v1 unchanged, so the agent
	// should select nothing.
	if hasDir(project.V2Path) {
		if err := scratch.CopyVersion(project.V2Path); err != nil {
			return fail(&result, domain.StageCopyV2, err)
		}
	}
	v2, stage, err := r.compileAndRun(scratch, "v2", domain.StageCompileV2, domain.StageRunV2)
	result.V2 = v2
	if err != nil {
		return fail(&result, stage, err)
	}

	selected, err := r.junit.ParseTestCount(v2.Output)
	if err != nil {
		return fail(&result, domain.StageParse, err)
	}
	result.Selected = selected
	result.Matched = selected == expected
	return result
}

// compileAndRun performs one compile+run pass over the current scratch
// sources, returning the failing stage alongside any error.
func (r *Runner) compileAndRun(scratch *workspace.Scratch, version, compileStage, runStage string) (run domain.VersionRun, stage string, err error) {
	started := time.Now()
	run = domain.VersionRun{Version: version}
	defer func() { run.Duration = time.Since(started) }()

	compileOut, err := r.compiler.Compile(scratch)
	run.CompileOutput = compileOut
	if err != nil {
		return run, compileStage, err
	}

	classes, err := r.sources.FindTestClasses(scratch.SrcDir())
	if err != nil {
		return run, runStage, err
	}
	if len(classes) == 0 {
		return run, runStage, fmt.Errorf("no JUnit test classes found in %s sources", version)
	}

	output, err := r.invokeAgent(scratch, classes)
	run.Output = output
	return run, runStage, err
}

// invokeAgent runs JUnitCore under the selective-test-execution agent. The
// scratch root is the working directory so the agent's .ekstazi cache lands
// inside the tree and carries from the v1 pass into the v2 pass.
func (r *Runner) invokeAgent(scratch *workspace.Scratch, classes []domain.TestClass) (string, error) {
	cp := append([]string{scratch.ClassesDir()}, r.config.GetJUnitClasspath()...)

	args := []string{
		fmt.Sprintf("-javaagent:%s=mode=junit", r.config.GetAgentJar()),
		"-cp", strings.Join(cp, string(os.PathListSeparator)),
		"org.junit.runner.JUnitCore",
	}
	for _, class := range classes {
		args = append(args, class.Name)
	}

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, r.config.JavaBin, args...)
	cmd.Dir = scratch.Dir()

	output, err := cmd.CombinedOutput()

	// JUnitCore exits nonzero when tests fail; that is still a completed
	// run with a parseable summary, not a harness error.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(output), nil
	}
	if err != nil {
		return string(output), fmt.Errorf("java failed: %w", err)
	}
	return string(output), nil
}

func fail(result *domain.ProjectResult, stage string, err error) domain.ProjectResult {
	result.Stage = stage
	result.Err = err
	return *result
}

func hasDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

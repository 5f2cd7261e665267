package execution

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"rts/internal/config"
	"rts/internal/workspace"
)

// Compiler compiles the sources of a scratch tree with javac
type Compiler struct {
	config *config.Config
}

// NewCompiler creates a new Compiler
func NewCompiler(cfg *config.Config) *Compiler {
	return &Compiler{config: cfg}
}

// Compile compiles every .java file under the scratch src tree into the
// scratch classes directory. All sources are recompiled after an overlay so
// stale class files never shadow a changed source. Returns the captured
// javac output either way.
func (c *Compiler) Compile(scratch *workspace.Scratch) (string, error) {
	sources, err := javaSources(scratch.SrcDir())
	if err != nil {
		return "", err
	}
	if len(sources) == 0 {
		return "", fmt.Errorf("no .java sources in %s", scratch.SrcDir())
	}

	args := []string{
		"-cp", strings.Join(c.config.GetJUnitClasspath(), string(os.PathListSeparator)),
		"-d", scratch.ClassesDir(),
	}
	args = append(args, sources...)

	ctx := context.Background()
	cmd := exec.CommandContext(ctx, c.config.JavacBin, args...)
	cmd.Dir = scratch.Dir()

	output, err := cmd.CombinedOutput()
	if err != nil {
		return string(output), fmt.Errorf("javac failed: %w", err)
	}
	return string(output), nil
}

func javaSources(dir string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".java") {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect sources: %w", err)
	}
	return sources, nil
}

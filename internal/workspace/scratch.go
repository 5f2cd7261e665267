package workspace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Scratch manages one worker's scratch tree. A project cycle resets the
// tree, copies v1 in, and later overlays v2 on top. The agent's .ekstazi
// cache is written inside the tree, so it survives the v1→v2 overlay but
// never leaks into the next project.
type Scratch struct {
	dir string
}

// New creates a Scratch rooted at dir.
func New(dir string) *Scratch {
	return &Scratch{dir: dir}
}

// Dir returns the scratch root. Subprocesses run with this as their working
// directory so the agent cache lands here.
func (s *Scratch) Dir() string {
	return s.dir
}

// SrcDir returns the directory that receives copied sources.
func (s *Scratch) SrcDir() string {
	return filepath.Join(s.dir, "src")
}

// ClassesDir returns the compile output directory.
func (s *Scratch) ClassesDir() string {
	return filepath.Join(s.dir, "classes")
}

// Reset clears the scratch tree and recreates the src and classes
// directories. Called at the start of each project cycle.
func (s *Scratch) Reset() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("clear scratch dir: %w", err)
	}
	for _, dir := range []string{s.SrcDir(), s.ClassesDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create scratch dir: %w", err)
		}
	}
	return nil
}

// CopyVersion copies the .java sources of a version directory into the
// scratch src tree, overwriting files that already exist. Files the version
// does not touch are left in place, matching the overlay semantics of the
// v1→v2 experiment: v2 may change only a subset of the sources.
func (s *Scratch) CopyVersion(versionDir string) error {
	versionDir = filepath.Clean(versionDir)
	info, err := os.Stat(versionDir)
	if err != nil {
		return fmt.Errorf("version dir does not exist: %s", versionDir)
	}
	if !info.IsDir() {
		return fmt.Errorf("version path is not a directory: %s", versionDir)
	}

	return filepath.WalkDir(versionDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".java") {
			return nil
		}
		rel, err := filepath.Rel(versionDir, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(s.SrcDir(), rel)
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		return copyFile(path, dst)
	})
}

// Remove deletes the whole scratch tree.
func (s *Scratch) Remove() error {
	return os.RemoveAll(s.dir)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

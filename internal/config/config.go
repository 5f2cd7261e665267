package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the harness
type Config struct {
	// Project settings
	ProjectsPath string

	// Output settings
	OutputJSONFile string
	OutputJSONDir  string

	// Execution settings
	Workers     int
	KeepScratch bool

	// Toolchain settings
	JavaBin  string
	JavacBin string

	// Directory names to ignore when scanning
	DirsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Workers       int
	ProjectsPath  string
	NameFilter    string
	TestClasses   bool
	FailFast      bool
	OnlyFailed    bool
	RerunFailures bool
	KeepScratch   bool
	Record        bool
	OpenReport    bool
	Limit         int
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectsPath:   DefaultProjectsPath,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
		Workers:        DefaultWorkers,
		JavaBin:        "java",
		JavacBin:       "javac",
		Flags:          Flags{Workers: DefaultWorkers},
	}
	cfg.DirsToIgnore = make([]string, len(DefaultDirsToIgnore))
	copy(cfg.DirsToIgnore, DefaultDirsToIgnore)
	return cfg
}

// LoadEnv loads a .env file from the projects directory, if present. Values
// already set in the process environment win.
func (c *Config) LoadEnv() {
	envPath := filepath.Join(c.GetProjectsPath(), ".env")
	if err := godotenv.Load(envPath); err != nil {
		// .env is optional, plain environment variables still apply
		_ = err
	}
	if bin := os.Getenv("RTS_JAVA"); bin != "" {
		c.JavaBin = bin
	}
	if bin := os.Getenv("RTS_JAVAC"); bin != "" {
		c.JavacBin = bin
	}
}

// GetProjectsPath returns the projects root, using the flag if provided.
func (c *Config) GetProjectsPath() string {
	p := c.ProjectsPath
	if c.Flags.ProjectsPath != "" {
		p = c.Flags.ProjectsPath
	}
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetOutputPath returns the full path to the output JSON file (under the
// projects root so run and report always use the same file regardless of cwd).
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.GetProjectsPath(), c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// GetScratchDir returns the scratch directory for a worker. Each worker owns
// one scratch tree for the whole run; projects executed by that worker reuse
// it sequentially.
func (c *Config) GetScratchDir(workerID int) string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("%s-%d", DefaultScratchPrefix, workerID))
}

// GetM2Repo returns the Maven local repository root, honoring M2_REPO.
func (c *Config) GetM2Repo() string {
	if repo := os.Getenv("M2_REPO"); repo != "" {
		return repo
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".m2", "repository")
}

// GetAgentJar returns the path to the selective-test-execution agent jar,
// honoring EKSTAZI_JAR, otherwise resolving it from the Maven local repository.
func (c *Config) GetAgentJar() string {
	if jar := os.Getenv("EKSTAZI_JAR"); jar != "" {
		return jar
	}
	v := DefaultAgentVersion
	return filepath.Join(c.GetM2Repo(), "org", "ekstazi", "org.ekstazi.core", v,
		fmt.Sprintf("org.ekstazi.core-%s.jar", v))
}

// GetJUnitClasspath returns the classpath entries for JUnit and Hamcrest
// resolved from the Maven local repository.
func (c *Config) GetJUnitClasspath() []string {
	repo := c.GetM2Repo()
	jv := DefaultJUnitVersion
	hv := DefaultHamcrestVersion
	return []string{
		filepath.Join(repo, "junit", "junit", jv, fmt.Sprintf("junit-%s.jar", jv)),
		filepath.Join(repo, "org", "hamcrest", "hamcrest-core", hv,
			fmt.Sprintf("hamcrest-core-%s.jar", hv)),
	}
}

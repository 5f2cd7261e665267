package config

const (
	// DefaultProjectsPath is the default directory scanned for experiment projects
	DefaultProjectsPath = "."
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "run-results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = "storage"
	// DefaultWorkers is the default number of parallel workers
	DefaultWorkers = 4
	// DefaultScratchPrefix is the directory name prefix for worker scratch trees
	DefaultScratchPrefix = "rts-scratch"
	// DefaultJUnitVersion is the JUnit release resolved from the Maven local repository
	DefaultJUnitVersion = "4.12"
	// DefaultHamcrestVersion is the Hamcrest release JUnit 4 depends on
	DefaultHamcrestVersion = "1.3"
	// DefaultAgentVersion is the Ekstazi release resolved from the Maven local repository
	DefaultAgentVersion = "5.3.0"
)

// DefaultDirsToIgnore are directories skipped when scanning for experiment
// projects. Scratch and output trees can live alongside the projects, so they
// are excluded by name.
var DefaultDirsToIgnore = []string{
	"storage",
	".ekstazi",
	"classes",
	"target",
	"build",
}

package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultTestPath is the default directory discovery starts from
	DefaultTestPath = "."
	// DefaultPattern matches Go test files
	DefaultPattern = "*_test.go"
	// DefaultKinds are the test kinds listed when none are requested
	DefaultKinds = "test"
	// DefaultExportFormat is the document format used by export
	DefaultExportFormat = "json"
	// DefaultEnvFile is loaded from the project path when present
	DefaultEnvFile = ".env"
)

// Environment variables read after the env file is loaded
const (
	EnvPattern  = "TLIST_PATTERN"
	EnvSkipDirs = "TLIST_SKIP_DIRS"
)

// DefaultPathsToIgnore are the directories skipped when scanning for tests.
// Hidden and underscore-prefixed directories are always skipped.
var DefaultPathsToIgnore = []string{
	"vendor",
	"testdata",
	"node_modules",
}

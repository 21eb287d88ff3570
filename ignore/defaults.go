package ignore

// CommonPatterns lists metadata and junk that rarely belongs in a file name survey.
// Only applied when MatcherOptions.SkipCommon is set; by default every file is visited.
var CommonPatterns = []string{
	// Version control
	".git",
	".svn",
	".hg",

	// Dependencies
	"node_modules",
	"bower_components",
	".npm",
	".yarn",

	// IDE / Editor
	".idea",
	".vscode",
	".vs",
	"*.swp",
	"*.swo",
	"*~",

	// OS files
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",

	// Python
	"__pycache__",
	".venv",

	// Cache
	".cache",
}

package index

import "time"

// FileRef identifies one scanned file.
// Entries reference the same *FileRef; it is never copied into the index.
type FileRef struct {
	Name         string    // File name with extension, for display
	Path         string    // Absolute file path
	RelativePath string    // Path relative to the scan root (forward slashes)
	SizeBytes    int64     // File size in bytes
	ModTime      time.Time // Last modification time
}

// DisplayName returns the full path when fullPath is set, the bare file name otherwise.
func (f *FileRef) DisplayName(fullPath bool) string {
	if fullPath {
		return f.Path
	}
	return f.Name
}

package index

import (
	"iter"
	"sort"

	"github.com/lexandro/filesubstrings/tokenize"
)

// SubstringEntry holds one distinct token and the files whose base name produced it.
// Matches keeps first-encountered order; a file appears once per occurrence of the token in its name.
type SubstringEntry struct {
	Token   string
	Matches []*FileRef
}

// OccurrenceCount returns the number of recorded occurrences of the token.
func (e *SubstringEntry) OccurrenceCount() int {
	return len(e.Matches)
}

// Stats summarizes a built index.
type Stats struct {
	FileCount   int // files visited during the scan, independent of any filtering
	TokenCount  int // distinct tokens recorded
	Occurrences int // total token occurrences across all files
	TotalSize   int64
}

// SubstringIndex maps each token to the files containing it.
// It uses a map for O(1) token lookups and a slice that remembers discovery order,
// which breaks ties when ranking. An index is not safe for concurrent writes;
// once built it is treated as read-only and its entries must not be modified.
type SubstringIndex struct {
	minLength   int
	entries     map[string]*SubstringEntry
	order       []*SubstringEntry
	fileCount   int
	totalSize   int64
	occurrences int
}

// NewSubstringIndex creates an empty index that drops tokens shorter than minLength.
func NewSubstringIndex(minLength int) *SubstringIndex {
	return &SubstringIndex{
		minLength: minLength,
		entries:   make(map[string]*SubstringEntry),
		order:     make([]*SubstringEntry, 0),
	}
}

// Build consumes files once and returns the finished index.
// The first error from the sequence aborts the build and no index is returned.
func Build(files iter.Seq2[*FileRef, error], minLength int) (*SubstringIndex, error) {
	si := NewSubstringIndex(minLength)
	for file, err := range files {
		if err != nil {
			return nil, err
		}
		si.AddFile(file, tokenize.FileTokens(file.Name))
	}
	return si, nil
}

// AddFile counts file as visited and appends it to the entry of every long-enough token.
func (si *SubstringIndex) AddFile(file *FileRef, tokens []string) {
	si.fileCount++
	si.totalSize += file.SizeBytes
	for _, token := range tokens {
		if len(token) < si.minLength {
			continue
		}
		entry, exists := si.entries[token]
		if !exists {
			entry = &SubstringEntry{Token: token}
			si.entries[token] = entry
			si.order = append(si.order, entry)
		}
		entry.Matches = append(entry.Matches, file)
		si.occurrences++
	}
}

// Lookup returns the entry for token, or false if the token was never recorded.
func (si *SubstringIndex) Lookup(token string) (*SubstringEntry, bool) {
	entry, ok := si.entries[token]
	return entry, ok
}

// Entries returns all entries in discovery order.
func (si *SubstringIndex) Entries() []*SubstringEntry {
	return append([]*SubstringEntry(nil), si.order...)
}

// FileCount returns the number of files visited while building.
func (si *SubstringIndex) FileCount() int {
	return si.fileCount
}

// Stats returns the index totals.
func (si *SubstringIndex) Stats() Stats {
	return Stats{
		FileCount:   si.fileCount,
		TokenCount:  len(si.entries),
		Occurrences: si.occurrences,
		TotalSize:   si.totalSize,
	}
}

// Ranked returns entries occurring at least minCount times, most frequent first.
// Equal counts keep discovery order. maxResults <= 0 means no limit.
func (si *SubstringIndex) Ranked(minCount int, maxResults int) []*SubstringEntry {
	ranked := make([]*SubstringEntry, 0, len(si.order))
	for _, entry := range si.order {
		if entry.OccurrenceCount() >= minCount {
			ranked = append(ranked, entry)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].OccurrenceCount() > ranked[j].OccurrenceCount()
	})

	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

// Files returns the files recorded for token, capped at maxResults (<= 0 means no limit).
// The second result is false when the token was never recorded.
func (si *SubstringIndex) Files(token string, maxResults int) ([]*FileRef, bool) {
	entry, ok := si.entries[token]
	if !ok {
		return nil, false
	}

	matches := entry.Matches
	if maxResults > 0 && len(matches) > maxResults {
		matches = matches[:maxResults]
	}
	return append([]*FileRef(nil), matches...), true
}

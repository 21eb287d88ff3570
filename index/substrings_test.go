package index

import (
	"errors"
	"iter"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFile(name string) *FileRef {
	return &FileRef{
		Name:         name,
		Path:         "/project/" + name,
		RelativePath: name,
		SizeBytes:    100,
		ModTime:      time.Now(),
	}
}

func seqOf(files ...*FileRef) iter.Seq2[*FileRef, error] {
	return func(yield func(*FileRef, error) bool) {
		for _, f := range files {
			if !yield(f, nil) {
				return
			}
		}
	}
}

func tokensOf(entries []*SubstringEntry) []string {
	tokens := make([]string, 0, len(entries))
	for _, e := range entries {
		tokens = append(tokens, e.Token)
	}
	return tokens
}

func Test_Build_ReportScenario(t *testing.T) {
	v1 := newTestFile("report_v1.txt")
	v2 := newTestFile("report_v2.txt")
	summary := newTestFile("summary.txt")

	si, err := Build(seqOf(v1, v2, summary), 3)
	require.NoError(t, err)

	assert.Equal(t, 3, si.FileCount())

	ranked := si.Ranked(2, 0)
	require.Len(t, ranked, 1)
	assert.Equal(t, "report", ranked[0].Token)
	assert.Equal(t, 2, ranked[0].OccurrenceCount())
	assert.Equal(t, []*FileRef{v1, v2}, ranked[0].Matches)

	// v1/v2 are too short to be recorded at all
	_, ok := si.Lookup("v1")
	assert.False(t, ok)

	entry, ok := si.Lookup("summary")
	require.True(t, ok)
	assert.Equal(t, 1, entry.OccurrenceCount())
}

func Test_Build_AbortsOnError(t *testing.T) {
	boom := errors.New("boom")
	files := func(yield func(*FileRef, error) bool) {
		if !yield(newTestFile("a_report.txt"), nil) {
			return
		}
		yield(nil, boom)
	}

	si, err := Build(files, 1)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, si)
}

func Test_SubstringIndex_RepeatedTokenCountsTwice(t *testing.T) {
	si := NewSubstringIndex(3)
	file := newTestFile("draft_draft.md")
	si.AddFile(file, []string{"draft", "draft"})

	entry, ok := si.Lookup("draft")
	require.True(t, ok)
	assert.Equal(t, 2, entry.OccurrenceCount())
	assert.Equal(t, []*FileRef{file, file}, entry.Matches)
}

func Test_SubstringIndex_CaseSensitiveTokens(t *testing.T) {
	si := NewSubstringIndex(1)
	si.AddFile(newTestFile("Report.txt"), []string{"Report"})
	si.AddFile(newTestFile("report.txt"), []string{"report"})

	assert.Equal(t, 2, si.Stats().TokenCount)
	_, ok := si.Lookup("REPORT")
	assert.False(t, ok)
}

func Test_SubstringIndex_RankedTieBreakIsDiscoveryOrder(t *testing.T) {
	si := NewSubstringIndex(1)
	si.AddFile(newTestFile("b"), []string{"beta", "alpha"})
	si.AddFile(newTestFile("c"), []string{"gamma", "alpha"})
	si.AddFile(newTestFile("d"), []string{"gamma", "beta", "delta"})

	// alpha=2, beta=2, gamma=2, delta=1; beta discovered before alpha
	ranked := si.Ranked(0, 0)
	assert.Equal(t, []string{"beta", "alpha", "gamma", "delta"}, tokensOf(ranked))

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].OccurrenceCount(), ranked[i].OccurrenceCount())
	}
}

func Test_SubstringIndex_RankedFiltersAndLimits(t *testing.T) {
	si := NewSubstringIndex(1)
	si.AddFile(newTestFile("1"), []string{"one", "two", "three"})
	si.AddFile(newTestFile("2"), []string{"two", "three"})
	si.AddFile(newTestFile("3"), []string{"three"})

	assert.Equal(t, []string{"three", "two"}, tokensOf(si.Ranked(2, 0)))
	assert.Equal(t, []string{"three"}, tokensOf(si.Ranked(0, 1)))
	assert.Empty(t, si.Ranked(4, 0))

	for _, entry := range si.Ranked(2, 0) {
		assert.GreaterOrEqual(t, entry.OccurrenceCount(), 2)
	}
}

func Test_SubstringIndex_FilesUnknownToken(t *testing.T) {
	si := NewSubstringIndex(1)
	si.AddFile(newTestFile("x"), []string{"known"})

	files, ok := si.Files("unknown", 0)
	assert.False(t, ok)
	assert.Nil(t, files)
}

func Test_SubstringIndex_FilesCapped(t *testing.T) {
	si := NewSubstringIndex(1)
	a, b, c := newTestFile("a"), newTestFile("b"), newTestFile("c")
	for _, f := range []*FileRef{a, b, c} {
		si.AddFile(f, []string{"shared"})
	}

	files, ok := si.Files("shared", 2)
	require.True(t, ok)
	assert.Equal(t, []*FileRef{a, b}, files)

	files, ok = si.Files("shared", 0)
	require.True(t, ok)
	assert.Equal(t, []*FileRef{a, b, c}, files)
}

func Test_SubstringIndex_Stats(t *testing.T) {
	si := NewSubstringIndex(2)
	si.AddFile(newTestFile("a"), []string{"ab", "c", "ab"})
	si.AddFile(newTestFile("b"), nil)

	stats := si.Stats()
	assert.Equal(t, 2, stats.FileCount)
	assert.Equal(t, 1, stats.TokenCount)
	assert.Equal(t, 2, stats.Occurrences)
	assert.Equal(t, int64(200), stats.TotalSize)
}

func Test_SubstringIndex_CountMatchesLength(t *testing.T) {
	si, err := Build(seqOf(
		newTestFile("alpha_beta.go"),
		newTestFile("beta_gamma.go"),
		newTestFile("gamma_gamma_alpha.go"),
	), 1)
	require.NoError(t, err)

	for _, entry := range si.Entries() {
		assert.Equal(t, len(entry.Matches), entry.OccurrenceCount(), entry.Token)
		assert.NotEmpty(t, entry.Matches, entry.Token)
	}
}

func Test_FileRef_DisplayName(t *testing.T) {
	f := newTestFile("notes.md")
	assert.Equal(t, "notes.md", f.DisplayName(false))
	assert.Equal(t, "/project/notes.md", f.DisplayName(true))
}

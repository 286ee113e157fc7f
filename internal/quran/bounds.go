// Package quran holds the static chapter/verse data the rest of instaquran validates against.
package quran

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"
)

// ChapterCount is the number of chapters in the mushaf.
const ChapterCount = 114

//go:embed verse_counts.yaml
var verseCountsYAML []byte

// BoundsTable maps a chapter number to its verse count. It is immutable once built.
type BoundsTable struct {
	counts map[int]int
}

type boundsFile struct {
	Chapters map[int]int `yaml:"chapters"`
}

// ParseBounds decodes a bounds table from YAML and checks that every chapter in
// [1, ChapterCount] is present with at least one verse.
func ParseBounds(data []byte) (*BoundsTable, error) {
	var f boundsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse verse counts: %w", err)
	}
	return NewBoundsTable(f.Chapters)
}

// NewBoundsTable copies counts into a table after checking the table invariant.
func NewBoundsTable(counts map[int]int) (*BoundsTable, error) {
	for ch := 1; ch <= ChapterCount; ch++ {
		n, ok := counts[ch]
		if !ok {
			return nil, fmt.Errorf("chapter %d missing from verse counts", ch)
		}
		if n < 1 {
			return nil, fmt.Errorf("chapter %d has invalid verse count %d", ch, n)
		}
	}
	if len(counts) != ChapterCount {
		return nil, fmt.Errorf("verse counts hold %d chapters, want %d", len(counts), ChapterCount)
	}

	t := &BoundsTable{counts: make(map[int]int, len(counts))}
	for ch, n := range counts {
		t.counts[ch] = n
	}
	return t, nil
}

var defaultBounds = sync.OnceValues(func() (*BoundsTable, error) {
	return ParseBounds(verseCountsYAML)
})

// Bounds returns the embedded table, loaded on first use.
func Bounds() *BoundsTable {
	t, err := defaultBounds()
	if err != nil {
		panic(fmt.Sprintf("quran: embedded verse counts are corrupt: %v", err))
	}
	return t
}

// VerseCount returns the number of verses in chapter and whether the chapter exists.
func (t *BoundsTable) VerseCount(chapter int) (int, bool) {
	n, ok := t.counts[chapter]
	return n, ok
}

// HasChapter reports whether chapter is a key of the table.
func (t *BoundsTable) HasChapter(chapter int) bool {
	_, ok := t.counts[chapter]
	return ok
}

// Len returns the number of chapters.
func (t *BoundsTable) Len() int {
	return len(t.counts)
}

// TotalVerses sums the verse counts of all chapters.
func (t *BoundsTable) TotalVerses() int {
	total := 0
	for _, n := range t.counts {
		total += n
	}
	return total
}

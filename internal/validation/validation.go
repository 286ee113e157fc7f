// Package validation decides whether a raw chapter/verse pair names a real verse.
//
// Everything here is pure: raw strings go in, booleans or messages come out. Inputs are
// always parsed with ParseNumber before any bounds comparison.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"instaquran/internal/quran"
)

// ErrNotInteger is wrapped by every ParseNumber failure.
var ErrNotInteger = errors.New("not an integer")

// ChapterErrorMessage is shown under the chapter field whenever the chapter is invalid.
var ChapterErrorMessage = fmt.Sprintf("Enter a chapter number between 1 and %d", quran.ChapterCount)

var numberPattern = regexp.MustCompile(`^([+-]?[0-9]+)(?:\.([0-9]*))?$`)

// ParseNumber converts raw input to an int. A fractional part is accepted only when it
// is all zeros, so "7.0" is 7 but "2.5" is rejected.
func ParseNumber(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty input: %w", ErrNotInteger)
	}
	m := numberPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%q: %w", raw, ErrNotInteger)
	}
	if strings.Trim(m[2], "0") != "" {
		return 0, fmt.Errorf("%q has a fractional part: %w", raw, ErrNotInteger)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%q: %w", raw, errors.Join(ErrNotInteger, err))
	}
	return n, nil
}

// Errors is the inline error state for the two fields. Empty strings mean no error.
type Errors struct {
	Chapter string
	Verse   string
}

// OK reports whether neither field has an error.
func (e Errors) OK() bool {
	return e.Chapter == "" && e.Verse == ""
}

// Validator checks raw input against a bounds table.
type Validator struct {
	bounds *quran.BoundsTable
}

// New returns a Validator over bounds.
func New(bounds *quran.BoundsTable) *Validator {
	return &Validator{bounds: bounds}
}

// Default returns a Validator over the embedded bounds table.
func Default() *Validator {
	return New(quran.Bounds())
}

func (v *Validator) chapter(raw string) (int, bool) {
	n, err := ParseNumber(raw)
	if err != nil {
		return 0, false
	}
	return n, v.bounds.HasChapter(n)
}

// IsChapterValid reports whether raw parses to a chapter present in the table.
func (v *Validator) IsChapterValid(raw string) bool {
	_, ok := v.chapter(raw)
	return ok
}

// IsVerseValid is false whenever the chapter is invalid; otherwise it reports whether the
// verse is in [1, count(chapter)].
func (v *Validator) IsVerseValid(chapter, verse string) bool {
	ch, ok := v.chapter(chapter)
	if !ok {
		return false
	}
	n, err := ParseNumber(verse)
	if err != nil || n < 1 {
		return false
	}
	limit, _ := v.bounds.VerseCount(ch)
	return n <= limit
}

// DescribeError returns the messages for the pair. A bad chapter suppresses the verse
// message, since verse bounds are meaningless without a chapter.
func (v *Validator) DescribeError(chapter, verse string) Errors {
	ch, ok := v.chapter(chapter)
	if !ok {
		return Errors{Chapter: ChapterErrorMessage}
	}
	if v.IsVerseValid(chapter, verse) {
		return Errors{}
	}
	limit, _ := v.bounds.VerseCount(ch)
	return Errors{Verse: fmt.Sprintf("Enter a verse number between 1 and %d", limit)}
}

// Resolve validates the pair and, when it is valid, returns the parsed reference.
func (v *Validator) Resolve(chapter, verse string) (quran.Reference, Errors) {
	errs := v.DescribeError(chapter, verse)
	if !errs.OK() {
		return quran.Reference{}, errs
	}
	ch, _ := ParseNumber(chapter)
	vs, _ := ParseNumber(verse)
	return quran.Reference{Chapter: ch, Verse: vs}, errs
}

// IsChapterValid checks raw against the embedded bounds table.
func IsChapterValid(raw string) bool {
	return Default().IsChapterValid(raw)
}

// IsVerseValid checks the pair against the embedded bounds table.
func IsVerseValid(chapter, verse string) bool {
	return Default().IsVerseValid(chapter, verse)
}

// DescribeError describes the pair against the embedded bounds table.
func DescribeError(chapter, verse string) Errors {
	return Default().DescribeError(chapter, verse)
}

// Resolve resolves the pair against the embedded bounds table.
func Resolve(chapter, verse string) (quran.Reference, Errors) {
	return Default().Resolve(chapter, verse)
}

package quran

import (
	"fmt"
	"strconv"
	"strings"
)

// Reference identifies a single verse.
type Reference struct {
	Chapter int
	Verse   int
}

// Key returns the "chapter:verse" form used by the quran.com API.
func (r Reference) Key() string {
	return fmt.Sprintf("%d:%d", r.Chapter, r.Verse)
}

func (r Reference) String() string {
	return r.Key()
}

// SplitKey splits "2:255" into its raw chapter and verse parts without interpreting them.
func SplitKey(key string) (chapter, verse string, err error) {
	chapter, verse, ok := strings.Cut(strings.TrimSpace(key), ":")
	if !ok {
		return "", "", fmt.Errorf("reference %q must look like CHAPTER:VERSE", key)
	}
	return strings.TrimSpace(chapter), strings.TrimSpace(verse), nil
}

// ParseReference parses "chapter:verse" into integers. It does not check bounds.
func ParseReference(key string) (Reference, error) {
	c, v, err := SplitKey(key)
	if err != nil {
		return Reference{}, err
	}
	ch, err := strconv.Atoi(c)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid chapter in %q: %w", key, err)
	}
	vs, err := strconv.Atoi(v)
	if err != nil {
		return Reference{}, fmt.Errorf("invalid verse in %q: %w", key, err)
	}
	return Reference{Chapter: ch, Verse: vs}, nil
}

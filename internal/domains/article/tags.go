package article

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxTagLength matches the tags.name column.
const MaxTagLength = 100

// NormalizeTags splits raw on commas and spaces, lowercases every token and
// drops empties and duplicates. First-seen order is kept.
func NormalizeTags(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' '
	})

	seen := make(map[string]struct{}, len(fields))
	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		name := strings.ToLower(f)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		tags = append(tags, name)
	}
	return tags
}

// validateTagLengths rejects a tag string holding a tag longer than MaxTagLength.
func validateTagLengths(value interface{}) error {
	raw, _ := value.(string)
	for _, name := range NormalizeTags(raw) {
		if utf8.RuneCountInString(name) > MaxTagLength {
			return fmt.Errorf("each tag must be at most %d characters", MaxTagLength)
		}
	}
	return nil
}

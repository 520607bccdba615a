package mixer

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/kyokomi/emoji/v2"
	"github.com/rivo/uniseg"
)

var (
	knownEmoji     map[string]struct{}
	knownEmojiOnce sync.Once
)

// buildKnownEmoji indexes every emoji from the kyokomi code map by its
// selector-free form, so an emoji is recognized with or without U+FE0F.
func buildKnownEmoji() map[string]struct{} {
	codeMap := emoji.CodeMap()
	result := make(map[string]struct{}, len(codeMap))
	for _, value := range codeMap {
		key := stripVariationSelectors(strings.TrimSpace(value))
		if key == "" {
			continue
		}
		result[key] = struct{}{}
	}
	return result
}

// IsEmoji reports whether a single grapheme cluster is a known emoji.
func IsEmoji(cluster string) bool {
	knownEmojiOnce.Do(func() {
		knownEmoji = buildKnownEmoji()
	})
	key := stripVariationSelectors(cluster)
	if key == "" {
		return false
	}
	_, ok := knownEmoji[key]
	return ok
}

// Extract returns the distinct emoji found in text, in order of first
// appearance, capped at limit. Shortcodes such as :dog: count as emoji.
// When text repeats one emoji and nothing else, that emoji is returned twice
// so callers can tell "😊😊" from "😊". Invalid input yields an empty result.
func (m *Mixer) Extract(text string) []string {
	if !utf8.ValidString(text) {
		m.logger.LogDebug("Ignoring message with invalid UTF-8")
		return nil
	}
	return extractEmojis(ExpandShortcodes(text), m.config.MaxEmojis)
}

func extractEmojis(text string, limit int) []string {
	var (
		found       []string
		seen        = make(map[string]struct{})
		occurrences int
	)

	graphemes := uniseg.NewGraphemes(text)
	for graphemes.Next() {
		cluster := graphemes.Str()
		if !IsEmoji(cluster) {
			continue
		}
		occurrences++

		key := stripVariationSelectors(cluster)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		found = append(found, cluster)
	}

	if len(found) == 1 && occurrences > 1 && limit > 1 {
		found = append(found, found[0])
	}
	if len(found) > limit {
		found = found[:limit]
	}

	return found
}

package mixer

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Codepoints with a special role inside emoji sequences
const (
	textSelector  = '\uFE0E'
	emojiSelector = '\uFE0F'

	zeroWidthJoiner = '\u200D'
)

// ErrEncoding is returned when an emoji cannot be turned into a code.
var ErrEncoding = errors.New("cannot encode emoji")

func isVariationSelector(r rune) bool {
	return r == textSelector || r == emojiSelector
}

// HexCode returns the Emoji Kitchen key for an emoji: every codepoint except
// variation selectors as "u" plus lowercase hex, joined by hyphens.
// For example "😊" gives "u1f60a" and "🇨🇳" gives "u1f1e8-u1f1f3".
func HexCode(emoji string) (string, error) {
	if !utf8.ValidString(emoji) {
		return "", errors.Wrapf(ErrEncoding, "invalid UTF-8 in %q", emoji)
	}

	parts := make([]string, 0, utf8.RuneCountInString(emoji))
	for _, r := range emoji {
		if isVariationSelector(r) {
			continue
		}
		parts = append(parts, "u"+strconv.FormatInt(int64(r), 16))
	}
	if len(parts) == 0 {
		return "", errors.Wrapf(ErrEncoding, "no codepoints left in %q", emoji)
	}

	return strings.Join(parts, "-"), nil
}

// TwemojiCode returns the Twemoji asset name for an emoji: codepoints in
// lowercase hex joined by hyphens. U+FE0F is dropped unless the emoji is a
// zero width joiner sequence, matching how Twemoji names its files.
func TwemojiCode(emoji string) (string, error) {
	if emoji == "" || !utf8.ValidString(emoji) {
		return "", errors.Wrapf(ErrEncoding, "cannot encode %q", emoji)
	}

	keepSelector := strings.ContainsRune(emoji, zeroWidthJoiner)
	parts := make([]string, 0, utf8.RuneCountInString(emoji))
	for _, r := range emoji {
		if r == emojiSelector && !keepSelector {
			continue
		}
		parts = append(parts, strconv.FormatInt(int64(r), 16))
	}
	if len(parts) == 0 {
		return "", errors.Wrapf(ErrEncoding, "no codepoints left in %q", emoji)
	}

	return strings.Join(parts, "-"), nil
}

// stripVariationSelectors removes both presentation selectors from s.
func stripVariationSelectors(s string) string {
	return strings.Map(func(r rune) rune {
		if isVariationSelector(r) {
			return -1
		}
		return r
	}, s)
}

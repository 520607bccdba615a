package mixer

import (
	"regexp"
	"strings"

	"github.com/kyokomi/emoji/v2"
)

// Mattermost stores picker emoji as :name: shortcodes.
var shortcodePattern = regexp.MustCompile(`:[a-zA-Z0-9_+\-]+:`)

// ExpandShortcodes replaces every known :name: shortcode in text with its
// Unicode emoji. Unknown names are left untouched.
func ExpandShortcodes(text string) string {
	if !strings.Contains(text, ":") {
		return text
	}

	codeMap := emoji.CodeMap()
	return shortcodePattern.ReplaceAllStringFunc(text, func(code string) string {
		if value, ok := codeMap[strings.ToLower(code)]; ok {
			return strings.TrimSpace(value)
		}
		return code
	})
}

package mixer

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Outcome tags the result of a mix request.
type Outcome int

const (
	// OutcomeInvalidInput means the request did not carry exactly two emoji.
	OutcomeInvalidInput Outcome = iota
	// OutcomeIdentical means both emoji were the same.
	OutcomeIdentical
	// OutcomeNotFound means no snapshot holds a composite for the pair.
	OutcomeNotFound
	// OutcomeMixed means a composite image was found.
	OutcomeMixed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeIdentical:
		return "identical"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeMixed:
		return "mixed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// User facing replies
const (
	UsageText     = "🤔 Please send exactly two different emoji to mix.\nExample: `/emojimix 😊🐶` or just post two emoji."
	IdenticalText = "😅 The two emoji cannot be identical."
	notFoundText  = "😟 Sorry, no mix found for %s and %s.\nThis pair may not exist, or one of them is not a standard emoji."
)

// Reply is what a mix request answers with: text, or an image URL.
type Reply struct {
	Outcome  Outcome
	Text     string
	ImageURL string
	Emojis   []string
}

// IsImage reports whether the reply carries a composite image.
func (r Reply) IsImage() bool {
	return r.Outcome == OutcomeMixed && r.ImageURL != ""
}

// Markdown renders the reply as a Mattermost message. Images are sized to size pixels.
func (r Reply) Markdown(size int) string {
	if !r.IsImage() {
		return r.Text
	}
	return fmt.Sprintf("![%s](%s =%dx%d)", strings.Join(r.Emojis, " + "), r.ImageURL, size, size)
}

// Mixer answers mix requests from the command and the passive listener.
type Mixer struct {
	config   Config
	resolver *Resolver
	logger   Logger
}

// New validates config and returns a Mixer that probes through prober.
func New(config Config, prober Prober, logger Logger) (*Mixer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config = config.Clone()
	return &Mixer{
		config:   config,
		resolver: NewResolver(config, prober, logger),
		logger:   logger,
	}, nil
}

// Config returns a copy of the mixer's configuration.
func (m *Mixer) Config() Config {
	return m.config.Clone()
}

// MixText handles an explicit command: every emoji in text is considered.
func (m *Mixer) MixText(ctx context.Context, text string) Reply {
	return m.MixPair(ctx, m.Extract(strings.TrimSpace(text)))
}

// Passive inspects an ordinary message and answers only when it is short and
// carries exactly two different emoji. Length is counted after shortcodes are
// expanded, so ":smile::dog:" qualifies like "😄🐶".
func (m *Mixer) Passive(ctx context.Context, text string) (Reply, bool) {
	if !utf8.ValidString(text) {
		return Reply{}, false
	}
	text = ExpandShortcodes(strings.TrimSpace(text))
	if utf8.RuneCountInString(text) > m.config.PassiveMaxLength {
		return Reply{}, false
	}

	emojis := m.Extract(text)
	if len(emojis) != MaxEmojis || sameEmoji(emojis[0], emojis[1]) {
		return Reply{}, false
	}

	return m.MixPair(ctx, emojis), true
}

// MixPair resolves exactly two different emoji. Any other input is answered
// with a hint and no network traffic.
func (m *Mixer) MixPair(ctx context.Context, emojis []string) Reply {
	if len(emojis) != m.config.MaxEmojis {
		return Reply{Outcome: OutcomeInvalidInput, Text: UsageText, Emojis: emojis}
	}

	first, second := emojis[0], emojis[1]
	if sameEmoji(first, second) {
		return Reply{Outcome: OutcomeIdentical, Text: IdenticalText, Emojis: emojis}
	}

	url, outcome := m.resolver.Resolve(ctx, first, second)
	if outcome != OutcomeMixed {
		return Reply{
			Outcome: OutcomeNotFound,
			Text:    fmt.Sprintf(notFoundText, first, second),
			Emojis:  emojis,
		}
	}

	return Reply{Outcome: OutcomeMixed, ImageURL: url, Emojis: emojis}
}

func sameEmoji(a, b string) bool {
	return stripVariationSelectors(a) == stripVariationSelectors(b)
}

// EmojiAssetURL returns the Twemoji SVG address for a single emoji.
func (m *Mixer) EmojiAssetURL(emoji string) (string, error) {
	if !IsEmoji(emoji) {
		return "", errors.Wrapf(ErrEncoding, "%q is not a known emoji", emoji)
	}
	code, err := TwemojiCode(emoji)
	if err != nil {
		return "", err
	}
	return m.config.EmojiURL(code), nil
}

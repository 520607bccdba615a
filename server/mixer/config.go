// Package mixer turns pairs of emoji into Emoji Kitchen composite image URLs.
package mixer

import (
	"slices"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// URL template placeholders
const (
	PlaceholderDate = "{date_code}"
	PlaceholderHex1 = "{hex1}"
	PlaceholderHex2 = "{hex2}"
)

const (
	// DefaultImageSize is the edge length, in pixels, used when rendering a composite.
	DefaultImageSize = 128
	// DefaultEmojiCDN is the Twemoji SVG asset base used for single emoji lookups.
	DefaultEmojiCDN = "https://cdn.jsdelivr.net/npm/twemoji@latest/assets/svg/"
	// DefaultURLTemplate addresses one composite in a dated Emoji Kitchen snapshot.
	DefaultURLTemplate = "https://www.gstatic.com/android/keyboard/emojikitchen/" +
		PlaceholderDate + "/" + PlaceholderHex1 + "/" + PlaceholderHex1 + "_" + PlaceholderHex2 + ".png"
	// DefaultRequestTimeout bounds each individual probe or download.
	DefaultRequestTimeout = 3 * time.Second
	// MaxEmojis is the number of emoji a mix takes.
	MaxEmojis = 2
	// DefaultPassiveMaxLength is the longest message, in characters, the passive listener inspects.
	DefaultPassiveMaxLength = 10
)

// ErrInvalidConfig is returned by Validate for any unusable configuration.
var ErrInvalidConfig = errors.New("invalid emoji mix configuration")

// defaultCatalogDates lists the Emoji Kitchen snapshots in probe order. The
// order is a preference, not a chronology: the first snapshot holding a pair wins.
var defaultCatalogDates = []string{
	"20240204", "20250130", "20241023", "20241021", "20240715",
	"20240610", "20240530", "20240214", "20240206", "20231128",
	"20231113", "20230821", "20230818", "20230803", "20230426",
	"20230421", "20230418", "20230405", "20230301", "20230221",
	"20230216", "20230127", "20230126", "20221107", "20221101",
	"20220823", "20220815", "20220506", "20220406", "20220203",
	"20220110", "20211115", "20210831", "20210521", "20210218",
	"20201001",
}

// Config holds the settings shared by every mix request. A Config handed to
// New is copied and never modified afterwards.
type Config struct {
	ImageSize        int
	EmojiCDN         string
	CatalogDates     []string
	URLTemplate      string
	RequestTimeout   time.Duration
	MaxEmojis        int
	PassiveMaxLength int
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		ImageSize:        DefaultImageSize,
		EmojiCDN:         DefaultEmojiCDN,
		CatalogDates:     slices.Clone(defaultCatalogDates),
		URLTemplate:      DefaultURLTemplate,
		RequestTimeout:   DefaultRequestTimeout,
		MaxEmojis:        MaxEmojis,
		PassiveMaxLength: DefaultPassiveMaxLength,
	}
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	clone := c
	clone.CatalogDates = slices.Clone(c.CatalogDates)
	return clone
}

// Validate checks that required settings are present and well formed.
func (c Config) Validate() error {
	if strings.TrimSpace(c.EmojiCDN) == "" {
		return errors.Wrap(ErrInvalidConfig, "missing emoji CDN base")
	}
	if strings.TrimSpace(c.URLTemplate) == "" {
		return errors.Wrap(ErrInvalidConfig, "missing composite URL template")
	}
	for _, placeholder := range []string{PlaceholderDate, PlaceholderHex1, PlaceholderHex2} {
		if !strings.Contains(c.URLTemplate, placeholder) {
			return errors.Wrapf(ErrInvalidConfig, "URL template lacks %s", placeholder)
		}
	}
	if len(c.CatalogDates) == 0 {
		return errors.Wrap(ErrInvalidConfig, "missing catalog dates")
	}
	for _, date := range c.CatalogDates {
		if err := validateCatalogDate(date); err != nil {
			return err
		}
	}
	if c.RequestTimeout <= 0 {
		return errors.Wrap(ErrInvalidConfig, "request timeout must be positive")
	}
	if c.MaxEmojis != MaxEmojis {
		return errors.Wrapf(ErrInvalidConfig, "max emoji count must be %d", MaxEmojis)
	}
	if c.PassiveMaxLength <= 0 {
		return errors.Wrap(ErrInvalidConfig, "passive max length must be positive")
	}
	if c.ImageSize <= 0 {
		return errors.Wrap(ErrInvalidConfig, "image size must be positive")
	}
	return nil
}

func validateCatalogDate(date string) error {
	if len(date) != 8 {
		return errors.Wrapf(ErrInvalidConfig, "catalog date %q is not YYYYMMDD", date)
	}
	if _, err := time.Parse("20060102", date); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "catalog date %q is not YYYYMMDD", date)
	}
	return nil
}

// ParseCatalogDates splits a comma or whitespace separated list of dates,
// keeping the given order.
func ParseCatalogDates(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == ';'
	})
	dates := make([]string, 0, len(fields))
	for _, field := range fields {
		if field = strings.TrimSpace(field); field != "" {
			dates = append(dates, field)
		}
	}
	return dates
}

// CompositeURL fills the URL template for one snapshot and ordered pair.
func (c Config) CompositeURL(date, hex1, hex2 string) string {
	return strings.NewReplacer(
		PlaceholderDate, date,
		PlaceholderHex1, hex1,
		PlaceholderHex2, hex2,
	).Replace(c.URLTemplate)
}

// EmojiURL returns the Twemoji SVG address for a single emoji code.
func (c Config) EmojiURL(code string) string {
	return c.EmojiCDN + code + ".svg"
}

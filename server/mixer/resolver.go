package mixer

import (
	"context"

	"github.com/google/uuid"
)

// Logger is the logging surface used by the mixer.
type Logger interface {
	LogDebug(message string, keyValuePairs ...any)
	LogInfo(message string, keyValuePairs ...any)
	LogWarn(message string, keyValuePairs ...any)
	LogError(message string, keyValuePairs ...any)
}

// Prober checks whether a candidate composite URL exists.
type Prober interface {
	Probe(ctx context.Context, url string) (bool, error)
}

// Resolver searches the dated Emoji Kitchen snapshots for a composite image.
type Resolver struct {
	config Config
	prober Prober
	logger Logger
}

// NewResolver creates a resolver over a copy of config.
func NewResolver(config Config, prober Prober, logger Logger) *Resolver {
	return &Resolver{
		config: config.Clone(),
		prober: prober,
		logger: logger,
	}
}

// candidates lists the URLs to probe for one snapshot: the pair as given,
// then the pair swapped. The catalog is keyed by ordered pairs.
func (r *Resolver) candidates(date, hex1, hex2 string) []string {
	urls := []string{r.config.CompositeURL(date, hex1, hex2)}
	if hex1 != hex2 {
		urls = append(urls, r.config.CompositeURL(date, hex2, hex1))
	}
	return urls
}

// Resolve returns the first composite URL that exists for the two emoji,
// walking snapshots in configured order. A failed probe only rules out its
// own candidate.
func (r *Resolver) Resolve(ctx context.Context, first, second string) (string, Outcome) {
	hex1, err := HexCode(first)
	if err != nil {
		r.logger.LogWarn("Failed to encode emoji", "emoji", first, "error", err.Error())
		return "", OutcomeNotFound
	}
	hex2, err := HexCode(second)
	if err != nil {
		r.logger.LogWarn("Failed to encode emoji", "emoji", second, "error", err.Error())
		return "", OutcomeNotFound
	}

	traceID := uuid.NewString()
	r.logger.LogInfo("Trying emoji mix", "trace_id", traceID, "first", first, "first_hex", hex1, "second", second, "second_hex", hex2)

	for _, date := range r.config.CatalogDates {
		for _, url := range r.candidates(date, hex1, hex2) {
			if err := ctx.Err(); err != nil {
				r.logger.LogDebug("Emoji mix abandoned", "trace_id", traceID, "error", err.Error())
				return "", OutcomeNotFound
			}

			found, err := r.probe(ctx, url)
			if err != nil {
				r.logger.LogDebug("Probe failed", "trace_id", traceID, "url", url, "error", err.Error())
				continue
			}
			if found {
				r.logger.LogInfo("Found emoji mix", "trace_id", traceID, "url", url)
				return url, OutcomeMixed
			}
			r.logger.LogDebug("Composite not in snapshot", "trace_id", traceID, "url", url)
		}
	}

	r.logger.LogInfo("No emoji mix found", "trace_id", traceID, "first", first, "second", second)
	return "", OutcomeNotFound
}

func (r *Resolver) probe(ctx context.Context, url string) (bool, error) {
	probeCtx, cancel := context.WithTimeout(ctx, r.config.RequestTimeout)
	defer cancel()
	return r.prober.Probe(probeCtx, url)
}

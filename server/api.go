// Package main implements the Mattermost Emoji Mix plugin server component.
package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/mattermost/mattermost-plugin-emojimix/server/kitchen"
	"github.com/mattermost/mattermost-plugin-emojimix/server/mixer"
	"github.com/mattermost/mattermost/server/public/plugin"
	"github.com/pkg/errors"
)

// mixResponse is the JSON body of GET /api/v1/mix.
type mixResponse struct {
	Outcome string `json:"outcome"`
	URL     string `json:"url,omitempty"`
	Text    string `json:"text,omitempty"`
}

// ServeHTTP serves the lookup API under <siteUrl>/plugins/<plugin id>/api/v1/.
func (p *Plugin) ServeHTTP(_ *plugin.Context, w http.ResponseWriter, r *http.Request) {
	router := mux.NewRouter()

	apiRouter := router.PathPrefix("/api/v1").Subrouter()
	apiRouter.Use(p.MattermostAuthorizationRequired)
	apiRouter.HandleFunc("/mix", p.handleMix).Methods(http.MethodGet)
	apiRouter.HandleFunc("/emoji", p.handleEmoji).Methods(http.MethodGet)

	router.ServeHTTP(w, r)
}

// MattermostAuthorizationRequired is a middleware that requires users to be logged in.
func (p *Plugin) MattermostAuthorizationRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get("Mattermost-User-ID")
		if userID == "" {
			http.Error(w, "Not authorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleMix resolves the pair given by the first and second query parameters.
func (p *Plugin) handleMix(w http.ResponseWriter, r *http.Request) {
	m := p.getConfiguration().mixer
	if m == nil {
		http.Error(w, "Emoji mixing is not configured", http.StatusServiceUnavailable)
		return
	}

	query := r.URL.Query()
	first, second := query.Get("first"), query.Get("second")

	var reply mixer.Reply
	if !mixer.IsEmoji(first) || !mixer.IsEmoji(second) {
		reply = mixer.Reply{Outcome: mixer.OutcomeInvalidInput, Text: mixer.UsageText}
	} else {
		reply = m.MixPair(r.Context(), []string{first, second})
	}

	status := http.StatusOK
	switch reply.Outcome {
	case mixer.OutcomeInvalidInput, mixer.OutcomeIdentical:
		status = http.StatusBadRequest
	case mixer.OutcomeNotFound:
		status = http.StatusNotFound
	}

	p.writeJSON(w, status, mixResponse{
		Outcome: reply.Outcome.String(),
		URL:     reply.ImageURL,
		Text:    reply.Text,
	})
}

// handleEmoji streams the Twemoji SVG of the emoji query parameter.
func (p *Plugin) handleEmoji(w http.ResponseWriter, r *http.Request) {
	m := p.getConfiguration().mixer
	if m == nil || p.kitchenClient == nil {
		http.Error(w, "Emoji mixing is not configured", http.StatusServiceUnavailable)
		return
	}

	emoji := r.URL.Query().Get("emoji")
	assetURL, err := m.EmojiAssetURL(emoji)
	if err != nil {
		http.Error(w, "Not a supported emoji", http.StatusBadRequest)
		return
	}

	svg, err := p.kitchenClient.DownloadSVG(r.Context(), assetURL)
	if errors.Is(err, kitchen.ErrNotFound) {
		http.Error(w, "Emoji asset not found", http.StatusNotFound)
		return
	}
	if err != nil {
		p.logger.LogWarn("Failed to download emoji asset", "url", assetURL, "error", err.Error())
		http.Error(w, "Failed to fetch emoji asset", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	if _, err := w.Write(svg); err != nil {
		p.logger.LogError("Failed to write response", "error", err)
	}
}

func (p *Plugin) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		p.logger.LogError("Failed to write response", "error", err)
	}
}

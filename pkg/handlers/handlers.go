// Package handlers contains the HTTP handlers for MoodTunes-Go. This file
// implements the chat endpoints: the plain completion passthrough and the
// full recommendation pipeline that parses the model reply and enriches song
// recommendations with catalog and lyrics data.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"MoodTunes-Go/pkg/chat"
	"MoodTunes-Go/pkg/music"
	"MoodTunes-Go/pkg/recommend"
	"MoodTunes-Go/pkg/spotify"
)

// log is the package logger. main configures the standard logger's level and
// formatter before the server starts.
var log = logrus.StandardLogger()

// Completer generates one model reply for a conversation. Implemented by the
// openai client and replaced with fakes in tests.
type Completer interface {
	Complete(ctx context.Context, msgs []chat.Message) (string, error)
}

// PlaylistCreator saves a playlist to the user's streaming account.
type PlaylistCreator interface {
	CreatePlaylist(ctx context.Context, token *oauth2.Token, name, description string, trackIDs []string) (spotify.PlaylistInfo, error)
}

// Application bundles the dependencies used by the HTTP handlers.
type Application struct {
	AI       Completer
	Enricher *recommend.Enricher
	Spotify  PlaylistCreator
	AuthConf *oauth2.Config
}

// chatRequest is the body accepted by both chat endpoints.
type chatRequest struct {
	Chats []chat.Message `json:"chats"`
}

// Follow-up suggestions decorating the two response variants. They are
// cosmetic prompts the UI renders as quick-reply buttons.
var (
	songFollowUps = []string{
		"Want another track with the same energy?",
		"Ready to explore a different mood?",
		"Should we add this to a playlist?",
		"Tell me what you think of this one!",
	}
	conversationFollowUps = []string{
		"Tell me more about your mood",
		"Want a song recommendation?",
		"Ready to create a playlist?",
		"What genre speaks to you right now?",
	}
)

// conversationOutput is the payload for replies that did not contain a song
// recommendation.
type conversationOutput struct {
	Type      chat.ReplyType `json:"type"`
	Message   string         `json:"message"`
	FollowUps []string       `json:"followUps"`
}

// readChats decodes and validates the conversation from the request. It
// writes the error response itself and reports success to the caller.
func readChats(w http.ResponseWriter, r *http.Request) ([]chat.Message, bool) {
	if r.Method != http.MethodPost {
		respondJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
		return nil, false
	}
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	if len(req.Chats) == 0 {
		respondJSONError(w, http.StatusBadRequest, "missing or invalid 'chats'")
		return nil, false
	}
	return req.Chats, true
}

// ChatJSON forwards the conversation to the model and returns the raw reply
// without parsing. The frontend uses it for plain conversational exchanges.
func (app *Application) ChatJSON(w http.ResponseWriter, r *http.Request) {
	chats, ok := readChats(w, r)
	if !ok {
		return
	}
	msgs := append([]chat.Message{{Role: chat.RoleSystem, Content: chat.SystemPrompt(false)}}, chats...)
	content, err := app.AI.Complete(r.Context(), msgs)
	if err != nil {
		log.WithError(err).Error("chat completion")
		respondJSONError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	writeJSON(w, map[string]chat.Message{
		"output": {Role: chat.RoleAssistant, Content: content},
	})
}

// MoodTunesChat runs the full recommendation pipeline: completion, reply
// parsing and, for song recommendations, catalog and lyrics enrichment. The
// catalog lookup is the only fatal enrichment step; a miss maps to 404 so the
// UI can show a distinct "song not found" message.
func (app *Application) MoodTunesChat(w http.ResponseWriter, r *http.Request) {
	chats, ok := readChats(w, r)
	if !ok {
		return
	}
	playlistMode := chat.PlaylistMode(chats)
	msgs := append([]chat.Message{{Role: chat.RoleSystem, Content: chat.SystemPrompt(playlistMode)}}, chats...)
	content, err := app.AI.Complete(r.Context(), msgs)
	if err != nil {
		log.WithError(err).Error("moodtunes completion")
		respondJSONError(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	parsed := chat.Parse(content)
	if parsed.Type == chat.Conversation {
		writeJSON(w, map[string]conversationOutput{
			"output": {Type: chat.Conversation, Message: parsed.Message, FollowUps: conversationFollowUps},
		})
		return
	}

	mood := chat.ExtractMood(chats)
	rec, err := app.Enricher.Enrich(r.Context(), parsed, mood)
	if err != nil {
		if errors.Is(err, music.ErrTrackNotFound) {
			respondJSONError(w, http.StatusNotFound, "song not found on Spotify")
			return
		}
		log.WithError(err).WithFields(logrus.Fields{
			"title":  parsed.SongTitle,
			"artist": parsed.Artist,
		}).Error("enrich recommendation")
		respondJSONError(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	rec.FollowUps = songFollowUps
	writeJSON(w, map[string]*recommend.Recommendation{"output": rec})
}

// writeJSON encodes v as the response body. Encoding failures are logged but
// cannot be reported to the client because the header is already written.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encode response")
	}
}

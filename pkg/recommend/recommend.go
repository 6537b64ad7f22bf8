// Package recommend builds the complete recommendation payload for a parsed
// song reply by orchestrating the catalog, lyrics and trivia collaborators.
// The catalog lookup is required; lyrics and trivia are best-effort and never
// fail the enrichment.
package recommend

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"MoodTunes-Go/pkg/chat"
	"MoodTunes-Go/pkg/genius"
	"MoodTunes-Go/pkg/music"
)

const embedBase = "https://open.spotify.com/embed/track/"

// defaultTrivia is used when no mood was detected or the trivia call failed.
const defaultTrivia = "Fun fact: Music affects our emotions more than any other art form!"

// TriviaSource supplies a short mood-related music fact. Failures are
// swallowed; trivia is cosmetic.
type TriviaSource interface {
	Trivia(ctx context.Context, mood string) (string, error)
}

// Recommendation is the enriched payload handed to the UI for a successful
// song recommendation. It is immutable once built and not persisted.
type Recommendation struct {
	Type                chat.ReplyType   `json:"type"`
	LyricsSnippet       string           `json:"lyricsSnippet"`
	SongTitle           string           `json:"songTitle"`
	Artist              string           `json:"artist"`
	Lyrics              string           `json:"lyrics"`
	Spotify             music.TrackEmbed `json:"spotify"`
	GeniusURL           string           `json:"geniusUrl"`
	FollowUps           []string         `json:"followUps,omitempty"`
	Trivia              string           `json:"trivia,omitempty"`
	ConversationMessage string           `json:"conversationMessage,omitempty"`
}

// Enricher wires the collaborators used to complete a recommendation.
// Catalog and Lyrics are required; Trivia may be nil.
type Enricher struct {
	Catalog music.Service
	Lyrics  music.LyricsService
	Trivia  TriviaSource
}

// Enrich completes the parsed song recommendation. The catalog is consulted
// first and a miss fails the whole enrichment with music.ErrTrackNotFound so
// callers never observe a partial payload. The lyrics lookup runs next and
// degrades internally; the trivia call runs last and its errors are ignored.
func (e *Enricher) Enrich(ctx context.Context, rec chat.ParsedReply, mood string) (*Recommendation, error) {
	if rec.Type != chat.SongRecommendation {
		return nil, fmt.Errorf("cannot enrich reply of type %q", rec.Type)
	}
	track, err := e.Catalog.SearchTrack(ctx, rec.SongTitle, rec.Artist)
	if err != nil {
		return nil, err
	}

	var lyrics music.LyricsInfo
	if e.Lyrics != nil {
		lyrics = e.Lyrics.FetchLyrics(ctx, rec.SongTitle, rec.Artist)
	} else {
		lyrics = genius.Fallback(rec.SongTitle, rec.Artist)
	}
	content := lyrics.Content
	if content == "" {
		content = "Lyrics not available."
	}
	geniusURL := lyrics.URL
	if geniusURL == "" {
		geniusURL = SearchURL(rec.SongTitle, rec.Artist)
	}

	trivia := defaultTrivia
	if mood != "" && e.Trivia != nil {
		if t, err := e.Trivia.Trivia(ctx, mood); err == nil && strings.TrimSpace(t) != "" {
			trivia = strings.TrimSpace(t)
		}
	}

	return &Recommendation{
		Type:          chat.SongRecommendation,
		LyricsSnippet: rec.LyricsSnippet,
		SongTitle:     rec.SongTitle,
		Artist:        rec.Artist,
		Lyrics:        content,
		Spotify: music.TrackEmbed{
			Name:        track.Name,
			PreviewURL:  track.PreviewURL,
			ExternalURL: track.ExternalURL,
			EmbedURL:    embedBase + track.ID,
			TrackID:     track.ID,
		},
		GeniusURL:           geniusURL,
		Trivia:              trivia,
		ConversationMessage: rec.FullResponse,
	}, nil
}

// SearchURL builds the deterministic Genius search link used when no
// canonical lyrics page was found.
func SearchURL(title, artist string) string {
	q := url.QueryEscape(fmt.Sprintf("%s %s", title, artist))
	// QueryEscape uses '+' for spaces; the frontend expects %20 encoding.
	q = strings.ReplaceAll(q, "+", "%20")
	return "https://genius.com/search?q=" + q
}

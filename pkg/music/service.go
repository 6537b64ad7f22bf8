// Package music defines generic interfaces and data structures for
// interacting with music providers. Implementations can wrap Spotify,
// Genius or any other service. By depending on this package the rest of
// the application can remain agnostic about the underlying platform.
package music

import (
	"context"
	"errors"
)

// ErrTrackNotFound is returned by Service implementations when the catalog
// has no match for the requested title and artist. Handlers translate it
// into a user-visible "song not found" response.
var ErrTrackNotFound = errors.New("no tracks found")

// Track represents the best catalog match for a title/artist pair. PreviewURL
// may be empty when the provider offers no audio preview for the track.
type Track struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	PreviewURL  string `json:"preview_url,omitempty"`
	ExternalURL string `json:"external_url,omitempty"`
}

// TrackEmbed is the streaming metadata attached to a recommendation and
// echoed back by clients when saving a playlist. The embed URL is derived
// deterministically from the track ID.
type TrackEmbed struct {
	Name        string `json:"name"`
	PreviewURL  string `json:"preview_url"`
	ExternalURL string `json:"external_url"`
	EmbedURL    string `json:"embed_url"`
	TrackID     string `json:"track_id"`
}

// LyricsInfo carries the descriptive lyric/annotation content for a song. An
// empty URL means no canonical lyrics page was found and callers should
// synthesize a search link instead.
type LyricsInfo struct {
	Content string
	URL     string
	Title   string
	Artist  string
}

// Service exposes catalog search. The context is used for request
// cancellation and timeout propagation.
type Service interface {
	// SearchTrack returns the best match for the given title and artist.
	// ErrTrackNotFound is returned when nothing in the catalog matches.
	SearchTrack(ctx context.Context, title, artist string) (Track, error)
}

// LyricsService looks up lyric and annotation content for a song. Lookups are
// best-effort: implementations degrade to generated fallback content instead
// of returning an error, so the recommendation pipeline is never blocked on
// the lyrics provider.
type LyricsService interface {
	FetchLyrics(ctx context.Context, title, artist string) LyricsInfo
}

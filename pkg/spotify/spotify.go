// Package spotify wraps the official Spotify client library providing the
// catalog lookup and user playlist helpers used by the web application.
// Catalog searches authenticate with the client credentials flow; the
// application token is cached on the client and refreshed shortly before the
// provider-reported expiry so long-running processes never present a stale
// credential.
//
// All exported methods accept a context parameter allowing callers to cancel
// long running requests. The wrapped library does not provide context support
// so cancellation is checked explicitly before each call.
package spotify

import (
	"context"
	"fmt"
	"sync"
	"time"

	libspotify "github.com/zmb3/spotify"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"MoodTunes-Go/pkg/music"
)

// tokenMargin is subtracted from the provider-reported expiry when deciding
// whether the cached application token is still usable.
const tokenMargin = time.Minute

// searcher defines the subset of the spotify.Client used for catalog
// lookups. It allows the concrete client to be replaced in tests.
type searcher interface {
	Search(query string, t libspotify.SearchType) (*libspotify.SearchResult, error)
}

// userAPI is the subset of the spotify.Client used for playlist creation on
// behalf of an authenticated user.
type userAPI interface {
	CurrentUser() (*libspotify.PrivateUser, error)
	CreatePlaylistForUser(userID, playlistName, description string, public bool) (*libspotify.FullPlaylist, error)
	AddTracksToPlaylist(playlistID libspotify.ID, trackIDs ...libspotify.ID) (string, error)
}

// Client provides catalog search backed by an application token and playlist
// creation backed by user tokens. The token cache is owned by the client
// instance; there is no process-wide singleton.
type Client struct {
	conf *clientcredentials.Config

	mu  sync.Mutex
	tok *oauth2.Token

	// fetchToken and the api constructors are replaceable in tests.
	fetchToken func(ctx context.Context) (*oauth2.Token, error)
	newAPI     func(tok *oauth2.Token) searcher
	newUserAPI func(tok *oauth2.Token) userAPI
}

// Compile-time interface check ensuring Client satisfies the generic
// music.Service interface used by the rest of the application.
var _ music.Service = (*Client)(nil)

// NewClient returns a Client configured for the client credentials flow.
// clientID and clientSecret are obtained from the Spotify developer
// dashboard. No network call is made until the first lookup.
func NewClient(clientID, clientSecret string) *Client {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     libspotify.TokenURL,
	}
	c := &Client{conf: conf}
	c.fetchToken = conf.Token
	c.newAPI = func(tok *oauth2.Token) searcher {
		api := libspotify.Authenticator{}.NewClient(tok)
		return &api
	}
	c.newUserAPI = func(tok *oauth2.Token) userAPI {
		api := libspotify.Authenticator{}.NewClient(tok)
		return &api
	}
	return c
}

// appToken returns the cached application token, refreshing it when it is
// within tokenMargin of expiry. The mutex keeps concurrent requests from
// racing on the refresh.
func (c *Client) appToken(ctx context.Context) (*oauth2.Token, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tok != nil && time.Until(c.tok.Expiry) > tokenMargin {
		return c.tok, nil
	}
	tok, err := c.fetchToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("spotify app token: %w", err)
	}
	c.tok = tok
	return tok, nil
}

// SearchTrack implements music.Service by querying the catalog for the best
// match of the supplied title and artist. music.ErrTrackNotFound is returned
// when the result set is empty.
func (c *Client) SearchTrack(ctx context.Context, title, artist string) (music.Track, error) {
	// The underlying client does not accept a context, but we honour the
	// provided one by checking for cancellation before each call.
	if err := ctx.Err(); err != nil {
		return music.Track{}, err
	}
	tok, err := c.appToken(ctx)
	if err != nil {
		return music.Track{}, err
	}
	results, err := c.newAPI(tok).Search(fmt.Sprintf("%s %s", title, artist), libspotify.SearchTypeTrack)
	if err != nil {
		return music.Track{}, err
	}
	if results.Tracks == nil || len(results.Tracks.Tracks) == 0 {
		return music.Track{}, music.ErrTrackNotFound
	}
	t := results.Tracks.Tracks[0]
	return music.Track{
		ID:          string(t.ID),
		Name:        t.Name,
		PreviewURL:  t.PreviewURL,
		ExternalURL: t.ExternalURLs["spotify"],
	}, nil
}

// PlaylistInfo summarises a playlist created on the user's account.
type PlaylistInfo struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	URL        string `json:"url"`
	TrackCount int    `json:"trackCount"`
}

// CreatePlaylist creates a private playlist on the account belonging to the
// supplied user token and adds the given track IDs to it. The playlist is
// created even when trackIDs is empty so the user can fill it later.
func (c *Client) CreatePlaylist(ctx context.Context, token *oauth2.Token, name, description string, trackIDs []string) (PlaylistInfo, error) {
	if err := ctx.Err(); err != nil {
		return PlaylistInfo{}, err
	}
	api := c.newUserAPI(token)
	user, err := api.CurrentUser()
	if err != nil {
		return PlaylistInfo{}, fmt.Errorf("spotify user profile: %w", err)
	}
	pl, err := api.CreatePlaylistForUser(user.ID, name, description, false)
	if err != nil {
		return PlaylistInfo{}, fmt.Errorf("create playlist: %w", err)
	}
	if len(trackIDs) > 0 {
		ids := make([]libspotify.ID, len(trackIDs))
		for i, id := range trackIDs {
			ids[i] = libspotify.ID(id)
		}
		if _, err := api.AddTracksToPlaylist(pl.ID, ids...); err != nil {
			return PlaylistInfo{}, fmt.Errorf("add playlist tracks: %w", err)
		}
	}
	return PlaylistInfo{
		ID:         string(pl.ID),
		Name:       pl.Name,
		URL:        pl.ExternalURLs["spotify"],
		TrackCount: len(trackIDs),
	}, nil
}

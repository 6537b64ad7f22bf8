package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"MoodTunes-Go/pkg/handlers"
	"MoodTunes-Go/pkg/music"
	"MoodTunes-Go/pkg/recommend"
	"MoodTunes-Go/pkg/spotify"
)

// fakeCreator records the playlist creation call.
type fakeCreator struct {
	info     spotify.PlaylistInfo
	err      error
	name     string
	desc     string
	trackIDs []string
	token    string
}

func (f *fakeCreator) CreatePlaylist(ctx context.Context, token *oauth2.Token, name, description string, trackIDs []string) (spotify.PlaylistInfo, error) {
	f.token = token.AccessToken
	f.name = name
	f.desc = description
	f.trackIDs = trackIDs
	return f.info, f.err
}

// tokenServer serves a static OAuth token response for exchange tests.
func tokenServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"user-token","refresh_token":"refresh","token_type":"Bearer","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func authApp(creator *fakeCreator, tokenURL string) *handlers.Application {
	return &handlers.Application{
		Spotify: creator,
		AuthConf: &oauth2.Config{
			ClientID:     "id",
			ClientSecret: "secret",
			RedirectURL:  "http://localhost:3000/api/spotify-callback",
			Scopes:       []string{"playlist-modify-private"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://accounts.spotify.com/authorize",
				TokenURL: tokenURL,
			},
		},
	}
}

func TestSpotifyAuthURL(t *testing.T) {
	app := authApp(&fakeCreator{}, "https://accounts.spotify.com/api/token")
	req := httptest.NewRequest(http.MethodGet, "/api/spotify-auth", nil)
	rr := httptest.NewRecorder()
	app.SpotifyAuth(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		AuthURL string `json:"authUrl"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"accounts.spotify.com", "state=moodtunes_auth", "client_id=id"} {
		if !strings.Contains(resp.AuthURL, want) {
			t.Errorf("auth url missing %q: %s", want, resp.AuthURL)
		}
	}
}

func postAuth(t *testing.T, app *handlers.Application, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/spotify-auth", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	app.SpotifyAuth(rr, req)
	return rr
}

func TestSpotifyAuthInvalidAction(t *testing.T) {
	app := authApp(&fakeCreator{}, "https://accounts.spotify.com/api/token")
	rr := postAuth(t, app, `{"action":"unknown"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "invalid action") {
		t.Errorf("body = %s", rr.Body.String())
	}
}

func TestSpotifyAuthExchangeToken(t *testing.T) {
	srv := tokenServer(t)
	app := authApp(&fakeCreator{}, srv.URL)
	rr := postAuth(t, app, `{"action":"exchange_token","code":"authcode"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.AccessToken != "user-token" || resp.RefreshToken != "refresh" {
		t.Errorf("tokens = %+v", resp)
	}
	if resp.ExpiresIn <= 0 || resp.ExpiresIn > 3600 {
		t.Errorf("expires_in = %d", resp.ExpiresIn)
	}
}

func TestCreatePlaylistSuccess(t *testing.T) {
	creator := &fakeCreator{info: spotify.PlaylistInfo{ID: "pl1", Name: "Chill", URL: "http://playlist"}}
	app := authApp(creator, "https://accounts.spotify.com/api/token")
	body := `{"action":"create_playlist","accessToken":"tok","playlistName":"Chill","songs":[` +
		`{"title":"Fix You","artist":"Coldplay","spotify":{"name":"Fix You","preview_url":"","external_url":"","embed_url":"https://open.spotify.com/embed/track/t1","track_id":"t1"}},` +
		`{"title":"Yellow","artist":"Coldplay"},` +
		`{"title":"Clocks","artist":"Coldplay","spotify":{"name":"Clocks","preview_url":"","external_url":"","embed_url":"https://open.spotify.com/embed/track/t3","track_id":"t3"}}]}`
	rr := postAuth(t, app, body)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Success  bool                 `json:"success"`
		Playlist spotify.PlaylistInfo `json:"playlist"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Fatalf("success = false: %s", rr.Body.String())
	}
	// The reported size counts every song even when the catalog lookup
	// failed for some of them.
	if resp.Playlist.TrackCount != 3 {
		t.Errorf("trackCount = %d", resp.Playlist.TrackCount)
	}
	if len(creator.trackIDs) != 2 || creator.trackIDs[0] != "t1" || creator.trackIDs[1] != "t3" {
		t.Errorf("trackIDs = %v", creator.trackIDs)
	}
	if creator.token != "tok" || creator.name != "Chill" {
		t.Errorf("token = %q name = %q", creator.token, creator.name)
	}
	if !strings.HasPrefix(creator.desc, "Created by MoodTunes - ") {
		t.Errorf("description = %q", creator.desc)
	}
}

// TestCreatePlaylistRoundTrip feeds a recommendation emitted by the chat
// endpoint back into the save action unmodified, the way the frontend
// accumulates and posts playlist entries.
func TestCreatePlaylistRoundTrip(t *testing.T) {
	ai := &fakeAI{reply: "\"and I will try to fix you\"\n— Fix You by Coldplay"}
	catalog := &fakeCatalog{track: music.Track{ID: "t1", Name: "Fix You", PreviewURL: "http://p", ExternalURL: "http://e"}}
	creator := &fakeCreator{info: spotify.PlaylistInfo{ID: "pl1", Name: "Sad Songs"}}
	app := newApp(ai, catalog)
	app.Spotify = creator

	rr := postChats(t, app.MoodTunesChat, `{"chats":[{"role":"user","content":"My mood is: sad"}]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("chat status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var chatResp struct {
		Output recommend.Recommendation `json:"output"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &chatResp); err != nil {
		t.Fatal(err)
	}

	save, err := json.Marshal(map[string]any{
		"action":       "create_playlist",
		"accessToken":  "tok",
		"playlistName": "Sad Songs",
		"songs": []map[string]any{{
			"title":     chatResp.Output.SongTitle,
			"artist":    chatResp.Output.Artist,
			"spotify":   chatResp.Output.Spotify,
			"geniusUrl": chatResp.Output.GeniusURL,
		}},
	})
	if err != nil {
		t.Fatal(err)
	}
	rr = postAuth(t, app, string(save))
	if rr.Code != http.StatusOK {
		t.Fatalf("save status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.Success {
		t.Fatalf("success = false: %s", rr.Body.String())
	}
	if len(creator.trackIDs) != 1 || creator.trackIDs[0] != "t1" {
		t.Errorf("trackIDs = %v, want [t1]", creator.trackIDs)
	}
}

func TestCreatePlaylistMissingFields(t *testing.T) {
	app := authApp(&fakeCreator{}, "https://accounts.spotify.com/api/token")
	rr := postAuth(t, app, `{"action":"create_playlist","playlistName":"Chill"}`)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rr.Code)
	}
}

func TestCreatePlaylistFailure(t *testing.T) {
	creator := &fakeCreator{err: errors.New("spotify down")}
	app := authApp(creator, "https://accounts.spotify.com/api/token")
	rr := postAuth(t, app, `{"action":"create_playlist","accessToken":"tok","playlistName":"Chill","songs":[]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var resp struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error != "failed to create playlist" {
		t.Errorf("resp = %+v", resp)
	}
}

func callback(t *testing.T, app *handlers.Application, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	app.SpotifyCallback(rr, req)
	return rr
}

func TestSpotifyCallbackSuccess(t *testing.T) {
	srv := tokenServer(t)
	app := authApp(&fakeCreator{}, srv.URL)
	rr := callback(t, app, "/api/spotify-callback?code=authcode&state=moodtunes_auth")
	if rr.Code != http.StatusFound {
		t.Fatalf("status = %d", rr.Code)
	}
	loc := rr.Header().Get("Location")
	for _, want := range []string{"spotify_auth=success", "access_token=user-token", "refresh_token=refresh"} {
		if !strings.Contains(loc, want) {
			t.Errorf("redirect missing %q: %s", want, loc)
		}
	}
}

func TestSpotifyCallbackErrors(t *testing.T) {
	app := authApp(&fakeCreator{}, "https://accounts.spotify.com/api/token")
	cases := []struct {
		name   string
		target string
		want   string
	}{
		{"provider error", "/api/spotify-callback?error=access_denied", "error=access_denied"},
		{"missing code", "/api/spotify-callback", "error=no_code"},
		{"state mismatch", "/api/spotify-callback?code=c&state=wrong", "error=invalid_state"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := callback(t, app, tc.target)
			if rr.Code != http.StatusFound {
				t.Fatalf("status = %d", rr.Code)
			}
			if loc := rr.Header().Get("Location"); !strings.Contains(loc, tc.want) {
				t.Errorf("redirect = %q, want %q", loc, tc.want)
			}
		})
	}
}

// This file groups the Spotify authorization endpoints: handing the auth URL
// to the frontend, exchanging the authorization code, creating playlists on
// the user's account and the browser-facing OAuth callback redirect. Tokens
// are never stored server-side; the callback forwards them to the frontend
// via redirect query parameters and the frontend supplies the access token
// back on playlist creation.
package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"

	"MoodTunes-Go/pkg/playlist"
)

// authState is the fixed state value used for the OAuth round trip. Session
// security hardening is explicitly out of scope for this service.
const authState = "moodtunes_auth"

// authRequest is the body accepted by the POST action endpoint.
type authRequest struct {
	Action       string           `json:"action"`
	Code         string           `json:"code,omitempty"`
	AccessToken  string           `json:"accessToken,omitempty"`
	PlaylistName string           `json:"playlistName,omitempty"`
	Songs        []playlist.Entry `json:"songs,omitempty"`
}

// tokenResponse mirrors the token fields the frontend expects from the
// exchange action.
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
}

// SpotifyAuth serves the authorization surface. GET returns the URL the
// frontend should send the user to; POST dispatches on the action field.
func (app *Application) SpotifyAuth(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, map[string]string{"authUrl": app.AuthConf.AuthCodeURL(authState)})
	case http.MethodPost:
		app.spotifyAuthAction(w, r)
	default:
		respondJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (app *Application) spotifyAuthAction(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	switch req.Action {
	case "exchange_token":
		tok, err := app.AuthConf.Exchange(r.Context(), req.Code)
		if err != nil {
			log.WithError(err).Error("token exchange")
			respondJSONError(w, http.StatusInternalServerError, "token exchange failed")
			return
		}
		writeJSON(w, tokenResponse{
			AccessToken:  tok.AccessToken,
			RefreshToken: tok.RefreshToken,
			TokenType:    tok.TokenType,
			ExpiresIn:    expiresIn(tok),
		})
	case "create_playlist":
		app.createPlaylist(w, r, req)
	default:
		respondJSONError(w, http.StatusBadRequest, "invalid action")
	}
}

// createPlaylist saves the accumulated session playlist to the user's
// account. Entries without catalog metadata are skipped when building the
// track list but still count toward the reported size, matching the UI's
// view of the playlist.
func (app *Application) createPlaylist(w http.ResponseWriter, r *http.Request, req authRequest) {
	if req.AccessToken == "" || req.PlaylistName == "" {
		respondJSONError(w, http.StatusBadRequest, "accessToken and playlistName are required")
		return
	}
	trackIDs := make([]string, 0, len(req.Songs))
	for _, s := range req.Songs {
		if s.Spotify != nil && s.Spotify.TrackID != "" {
			trackIDs = append(trackIDs, s.Spotify.TrackID)
		}
	}
	token := &oauth2.Token{AccessToken: req.AccessToken, TokenType: "Bearer"}
	description := fmt.Sprintf("Created by MoodTunes - %s", time.Now().Format("1/2/2006"))
	info, err := app.Spotify.CreatePlaylist(r.Context(), token, req.PlaylistName, description, trackIDs)
	if err != nil {
		log.WithError(err).WithField("playlist", req.PlaylistName).Error("create playlist")
		writeJSON(w, map[string]any{"success": false, "error": "failed to create playlist"})
		return
	}
	info.TrackCount = len(req.Songs)
	writeJSON(w, map[string]any{"success": true, "playlist": info})
}

// SpotifyCallback completes the browser OAuth flow. Failures redirect back
// to the app with an error parameter; success forwards the token material so
// the frontend can resume a pending playlist save.
func (app *Application) SpotifyCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if errMsg := q.Get("error"); errMsg != "" {
		redirectError(w, r, errMsg)
		return
	}
	code := q.Get("code")
	if code == "" {
		redirectError(w, r, "no_code")
		return
	}
	if q.Get("state") != authState {
		redirectError(w, r, "invalid_state")
		return
	}
	tok, err := app.AuthConf.Exchange(r.Context(), code)
	if err != nil {
		log.WithError(err).Error("callback token exchange")
		redirectError(w, r, "token_exchange_failed")
		return
	}
	params := url.Values{
		"spotify_auth":  {"success"},
		"access_token":  {tok.AccessToken},
		"refresh_token": {tok.RefreshToken},
		"expires_in":    {fmt.Sprint(expiresIn(tok))},
	}
	http.Redirect(w, r, "/?"+params.Encode(), http.StatusFound)
}

func redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?error="+url.QueryEscape(msg), http.StatusFound)
}

// expiresIn converts the token expiry into the relative seconds form the
// frontend stores. A zero expiry falls back to the provider's default hour.
func expiresIn(tok *oauth2.Token) int {
	if tok.Expiry.IsZero() {
		return 3600
	}
	return int(time.Until(tok.Expiry).Seconds())
}

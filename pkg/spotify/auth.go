package spotify

import "golang.org/x/oauth2"

// OAuth endpoints for the authorization code flow. The token URL matches the
// one used by the client credentials flow.
var endpoint = oauth2.Endpoint{
	AuthURL:  "https://accounts.spotify.com/authorize",
	TokenURL: "https://accounts.spotify.com/api/token",
}

// scopes requested for playlist creation. Profile access is needed to
// resolve the user ID that owns the new playlist.
var scopes = []string{
	"playlist-modify-public",
	"playlist-modify-private",
	"user-read-private",
	"user-read-email",
}

// NewAuthConfig returns the oauth2 configuration for the user authorization
// flow. The redirect URL must match the callback registered in the Spotify
// developer dashboard.
func NewAuthConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Scopes:       scopes,
		Endpoint:     endpoint,
	}
}

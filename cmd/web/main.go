// Command web initializes the MoodTunes application and starts the HTTP
// server. Configuration is provided via environment variables for the
// OpenAI, Spotify and Genius API credentials. The server exposes the JSON
// chat API, the Spotify OAuth endpoints and Prometheus metrics.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"MoodTunes-Go/pkg/genius"
	"MoodTunes-Go/pkg/handlers"
	"MoodTunes-Go/pkg/openai"
	"MoodTunes-Go/pkg/recommend"
	"MoodTunes-Go/pkg/spotify"
)

// routes assembles the request multiplexer and the shared middleware chain.
func routes(app *handlers.Application) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/chat", app.ChatJSON)
	mux.HandleFunc("/api/moodtunes-chat", app.MoodTunesChat)
	mux.HandleFunc("/api/spotify-auth", app.SpotifyAuth)
	mux.HandleFunc("/api/spotify-callback", app.SpotifyCallback)
	mux.Handle("/metrics", promhttp.Handler())
	return handlers.SecurityHeaders(handlers.Instrument(mux))
}

func main() {
	// A local .env file is convenient during development; missing files
	// are fine because production provides real environment variables.
	_ = godotenv.Load()

	log := logrus.StandardLogger()
	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	openaiKey := os.Getenv("OPENAI_API_KEY")
	if openaiKey == "" {
		log.Fatal("OPENAI_API_KEY must be set")
	}
	clientID := os.Getenv("SPOTIFY_CLIENT_ID")
	clientSecret := os.Getenv("SPOTIFY_CLIENT_SECRET")
	if clientID == "" || clientSecret == "" {
		log.Fatal("SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET must be set")
	}
	// SPOTIFY_REDIRECT_URL must match the callback configured in the
	// Spotify developer dashboard. When unset we fall back to the local
	// development address.
	redirectURL := os.Getenv("SPOTIFY_REDIRECT_URL")
	if redirectURL == "" {
		redirectURL = "http://localhost:3000/api/spotify-callback"
	}

	ai := openai.New(openaiKey, os.Getenv("OPENAI_ORG"))
	sc := spotify.NewClient(clientID, clientSecret)

	// The Genius token is optional: without it lyric lookups degrade to
	// generated fallback content instead of failing recommendations.
	geniusToken := os.Getenv("GENIUS_ACCESS_TOKEN")
	if geniusToken == "" {
		log.Warn("GENIUS_ACCESS_TOKEN not set; lyric lookups will use fallback content")
	}

	app := &handlers.Application{
		AI: ai,
		Enricher: &recommend.Enricher{
			Catalog: sc,
			Lyrics:  genius.New(geniusToken),
			Trivia:  ai,
		},
		Spotify:  sc,
		AuthConf: spotify.NewAuthConfig(clientID, clientSecret, redirectURL),
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: routes(app),
		// Bound slow clients; chat requests spend most of their budget
		// on upstream model calls.
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      90 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
	log.WithField("addr", srv.Addr).Info("starting server")
	if err := srv.ListenAndServe(); err != nil {
		log.WithError(err).Fatal("http server")
	}
}

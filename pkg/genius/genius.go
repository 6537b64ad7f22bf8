// Package genius implements the music.LyricsService interface using the
// Genius API. Only the search and song-detail endpoints required by the
// application are supported. An access token must be provided when
// constructing the client.
//
// Lyrics enrichment is best-effort by design: any API failure or missing
// match degrades to generated fallback content instead of an error, so the
// recommendation pipeline never blocks on this provider.
package genius

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"MoodTunes-Go/pkg/music"
)

const apiBase = "https://api.genius.com"

// descriptionLimit truncates long song descriptions so payloads stay small.
const descriptionLimit = 300

// Client provides access to the Genius API. Network calls are performed
// using the provided http.Client allowing callers to substitute a test
// client.
type Client struct {
	Token  string
	Client *http.Client
}

// ensure Client implements the music.LyricsService interface.
var _ music.LyricsService = (*Client)(nil)

// New returns a Client with a bounded request timeout.
func New(token string) *Client {
	return &Client{Token: token, Client: &http.Client{Timeout: 15 * time.Second}}
}

type songResult struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	URL           string `json:"url"`
	PrimaryArtist struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
}

// FetchLyrics implements music.LyricsService. It searches Genius for the
// song, reads the detail endpoint for descriptive content and returns a
// generated fallback blurb when the API is unavailable or has no match.
func (c *Client) FetchLyrics(ctx context.Context, title, artist string) music.LyricsInfo {
	if c.Token == "" {
		return Fallback(title, artist)
	}
	hit, err := c.search(ctx, title, artist)
	if err != nil || hit == nil {
		return Fallback(title, artist)
	}
	detail, err := c.songDetails(ctx, hit.ID)
	if err != nil || detail == nil {
		// The search hit alone still gives us a canonical page.
		return music.LyricsInfo{
			Content: fmt.Sprintf("%q by %s - a track that resonates with your current vibe. Check out the full lyrics on Genius!", hit.Title, hit.PrimaryArtist.Name),
			URL:     hit.URL,
			Title:   hit.Title,
			Artist:  hit.PrimaryArtist.Name,
		}
	}
	return detail.info()
}

// search returns the best matching song for the title/artist pair, favouring
// hits whose title and primary artist both contain the requested values.
func (c *Client) search(ctx context.Context, title, artist string) (*songResult, error) {
	var body struct {
		Response struct {
			Hits []struct {
				Result songResult `json:"result"`
			} `json:"hits"`
		} `json:"response"`
	}
	q := url.Values{"q": {fmt.Sprintf("%s %s", title, artist)}}
	if err := c.get(ctx, "/search?"+q.Encode(), &body); err != nil {
		return nil, err
	}
	hits := body.Response.Hits
	if len(hits) == 0 {
		return nil, nil
	}
	for _, h := range hits {
		titleMatch := strings.Contains(strings.ToLower(h.Result.Title), strings.ToLower(title))
		artistMatch := strings.Contains(strings.ToLower(h.Result.PrimaryArtist.Name), strings.ToLower(artist))
		if titleMatch && artistMatch {
			return &h.Result, nil
		}
	}
	return &hits[0].Result, nil
}

type songDetail struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	PrimaryArtist struct {
		Name string `json:"name"`
	} `json:"primary_artist"`
	Description struct {
		Plain string `json:"plain"`
	} `json:"description"`
	AnnotationCount       int    `json:"annotation_count"`
	ReleaseDateForDisplay string `json:"release_date_for_display"`
	Album                 *struct {
		Name string `json:"name"`
	} `json:"album"`
}

// songDetails fetches the detail record for a song ID.
func (c *Client) songDetails(ctx context.Context, id int) (*songDetail, error) {
	var body struct {
		Response struct {
			Song *songDetail `json:"song"`
		} `json:"response"`
	}
	if err := c.get(ctx, fmt.Sprintf("/songs/%d", id), &body); err != nil {
		return nil, err
	}
	return body.Response.Song, nil
}

// info composes the descriptive content string returned to the caller.
func (d *songDetail) info() music.LyricsInfo {
	var b strings.Builder
	fmt.Fprintf(&b, "%q by %s", d.Title, d.PrimaryArtist.Name)
	if d.ReleaseDateForDisplay != "" {
		fmt.Fprintf(&b, " (%s)", d.ReleaseDateForDisplay)
	}
	if d.Album != nil && d.Album.Name != "" {
		fmt.Fprintf(&b, " from the album %q", d.Album.Name)
	}
	if desc := strings.TrimSpace(d.Description.Plain); desc != "" {
		if len(desc) > descriptionLimit {
			cut := descriptionLimit
			// Back up to a rune boundary so the cut never splits a
			// multi-byte character.
			for cut > 0 && !utf8.RuneStart(desc[cut]) {
				cut--
			}
			desc = desc[:cut] + "..."
		}
		b.WriteString("\n\n" + desc)
	}
	if d.AnnotationCount > 0 {
		fmt.Fprintf(&b, "\n\nThis song has %d annotations explaining its meaning.", d.AnnotationCount)
	}
	b.WriteString("\n\nFollow the Genius link to read the full lyrics and explore the annotations!")
	return music.LyricsInfo{
		Content: b.String(),
		URL:     d.URL,
		Title:   d.Title,
		Artist:  d.PrimaryArtist.Name,
	}
}

// get performs an authenticated GET against the API and decodes the JSON
// response into v.
func (c *Client) get(ctx context.Context, path string, v any) error {
	if c.Client == nil {
		c.Client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiBase+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.Token)
	resp, err := c.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("genius api error: %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

// insights are the rotating one-liners used in fallback content when the API
// yields nothing. Selection is keyed on the song so repeated lookups for the
// same track stay stable.
var insights = []string{
	"This track perfectly captures the emotional essence of your current mood.",
	"The lyrics of this song resonate deeply with listeners who share your vibe.",
	"This artist is known for creating music that speaks to the soul.",
	"The melody and lyrics work together to create a powerful emotional experience.",
	"This song has touched countless hearts with its meaningful message.",
	"The poetic nature of these lyrics makes this track truly special.",
	"This is the kind of song that stays with you long after it ends.",
}

// Fallback builds generated lyric content for when the API is unavailable.
// The URL is left empty so callers substitute a search link.
func Fallback(title, artist string) music.LyricsInfo {
	h := fnv.New32a()
	h.Write([]byte(title + artist))
	insight := insights[int(h.Sum32())%len(insights)]
	content := fmt.Sprintf(`%q by %s

%s

Music has an incredible power to connect us with our emotions and memories. This track was chosen specifically to match your current mood and energy.

Take a moment to really listen to the words and let the music wash over you. Follow the Genius link below to dive into the full lyrics and the story behind the song!`, title, artist, insight)
	return music.LyricsInfo{Content: content, Title: title, Artist: artist}
}

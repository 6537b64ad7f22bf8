package chat

import (
	"regexp"
	"strings"
)

// ReplyType identifies which variant of ParsedReply was produced.
type ReplyType string

// The two possible interpretations of a model reply.
const (
	SongRecommendation ReplyType = "song_recommendation"
	Conversation       ReplyType = "conversation"
)

// ParsedReply is the structured interpretation of a raw model reply. Exactly
// one variant applies per reply: the song fields are populated when Type is
// SongRecommendation, Message when Type is Conversation. FullResponse always
// holds the original raw text for display and auditing.
type ParsedReply struct {
	Type          ReplyType
	LyricsSnippet string
	SongTitle     string
	Artist        string
	Message       string
	FullResponse  string
}

// songFormat matches the recommendation format the system prompt instructs
// the model to emit: a quoted lyric snippet followed by an em-dash line with
// "Title by Artist". The lazy title group means the split happens on the
// first " by " occurrence, so artist names containing " by " are not
// supported.
var songFormat = regexp.MustCompile(`"([^"]+)"\s*\n—\s*(.+?)\s+by\s+(.+)`)

// Parse converts a raw model reply into a ParsedReply. It never fails:
// replies that do not match the recommendation format, including empty
// input, degrade to the Conversation variant carrying the trimmed text.
func Parse(raw string) ParsedReply {
	if m := songFormat.FindStringSubmatch(raw); m != nil {
		snippet := strings.TrimSpace(m[1])
		title := strings.TrimSpace(m[2])
		artist := strings.TrimSpace(m[3])
		if title != "" && artist != "" {
			return ParsedReply{
				Type:          SongRecommendation,
				LyricsSnippet: snippet,
				SongTitle:     title,
				Artist:        artist,
				FullResponse:  raw,
			}
		}
	}
	return ParsedReply{
		Type:         Conversation,
		Message:      strings.TrimSpace(raw),
		FullResponse: raw,
	}
}

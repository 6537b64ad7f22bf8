package chat

import (
	"regexp"
	"strings"
)

// moodPattern extracts the mood term from the structured opener the frontend
// sends ("My mood is: melancholy").
var moodPattern = regexp.MustCompile(`(?i)mood\s+is\s*:\s*([\w\s\-']+)`)

// ExtractMood returns the lowercased mood term from the first user turn, or
// an empty string when no mood phrase is present.
func ExtractMood(msgs []Message) string {
	for _, m := range msgs {
		if m.Role != RoleUser {
			continue
		}
		if match := moodPattern.FindStringSubmatch(m.Content); match != nil {
			return strings.ToLower(strings.TrimSpace(match[1]))
		}
		return ""
	}
	return ""
}

// playlistCues are phrases that indicate the user is building a playlist and
// wants direct song recommendations rather than conversation.
var playlistCues = []string{
	"playlist",
	"add more songs",
	"same mood",
	"add another song",
	"add some",
	"building",
}

// PlaylistMode reports whether any of the last three turns contain a playlist
// building cue. When active the system prompt tells the model to skip
// clarifying questions and answer with a recommendation immediately.
func PlaylistMode(msgs []Message) bool {
	recent := msgs
	if len(recent) > 3 {
		recent = recent[len(recent)-3:]
	}
	for _, m := range recent {
		content := strings.ToLower(m.Content)
		for _, cue := range playlistCues {
			if strings.Contains(content, cue) {
				return true
			}
		}
	}
	return false
}

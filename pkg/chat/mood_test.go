package chat

import (
	"strings"
	"testing"
)

func TestExtractMood(t *testing.T) {
	msgs := []Message{
		{Role: RoleSystem, Content: "system prompt"},
		{Role: RoleUser, Content: "Hey! My mood is: Melancholy today"},
		{Role: RoleAssistant, Content: "\"...\"\n— Fix You by Coldplay"},
	}
	if got := ExtractMood(msgs); got != "melancholy today" {
		t.Errorf("mood = %q", got)
	}
}

// TestExtractMoodOnlyFirstUserTurn verifies later turns are not consulted.
func TestExtractMoodOnlyFirstUserTurn(t *testing.T) {
	msgs := []Message{
		{Role: RoleUser, Content: "hello there"},
		{Role: RoleUser, Content: "my mood is: happy"},
	}
	if got := ExtractMood(msgs); got != "" {
		t.Errorf("expected empty mood, got %q", got)
	}
}

func TestExtractMoodMissing(t *testing.T) {
	if got := ExtractMood([]Message{{Role: RoleUser, Content: "hi"}}); got != "" {
		t.Errorf("expected empty mood, got %q", got)
	}
	if got := ExtractMood(nil); got != "" {
		t.Errorf("expected empty mood for nil turns, got %q", got)
	}
}

func TestPlaylistMode(t *testing.T) {
	base := []Message{
		{Role: RoleUser, Content: "my mood is: chill"},
		{Role: RoleAssistant, Content: "\"...\"\n— Song by Artist"},
	}
	if PlaylistMode(base) {
		t.Error("no playlist cue expected")
	}
	cued := append(base, Message{Role: RoleUser, Content: "Add more songs with the same mood please"})
	if !PlaylistMode(cued) {
		t.Error("expected playlist mode after cue")
	}
}

// TestPlaylistModeOnlyRecentTurns verifies cues older than the last three
// turns are ignored.
func TestPlaylistModeOnlyRecentTurns(t *testing.T) {
	msgs := []Message{
		{Role: RoleUser, Content: "let's build a playlist"},
		{Role: RoleAssistant, Content: "sure!"},
		{Role: RoleUser, Content: "actually tell me about jazz"},
		{Role: RoleAssistant, Content: "jazz is great"},
		{Role: RoleUser, Content: "who invented it?"},
	}
	if PlaylistMode(msgs) {
		t.Error("cue outside the last three turns should be ignored")
	}
}

func TestSystemPrompt(t *testing.T) {
	plain := SystemPrompt(false)
	if !strings.Contains(plain, "— Song Title by Artist") {
		t.Error("prompt must instruct the recommendation format")
	}
	if strings.Contains(plain, "PLAYLIST BUILDING MODE") {
		t.Error("playlist section must be absent by default")
	}
	if !strings.Contains(SystemPrompt(true), "PLAYLIST BUILDING MODE") {
		t.Error("playlist section missing in playlist mode")
	}
}

func TestTriviaPrompt(t *testing.T) {
	if p := TriviaPrompt("happy"); !strings.Contains(p, `"happy"`) {
		t.Errorf("mood not interpolated: %q", p)
	}
}

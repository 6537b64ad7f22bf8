// Package playlist implements the in-session playlist model: an ordered
// collection of accepted song recommendations with duplicate rejection and a
// save-eligibility gate. A playlist belongs to exactly one chat session and
// is mutated only through its methods, so no internal locking is required.
package playlist

import "MoodTunes-Go/pkg/music"

// minSaveSize is the number of songs required before a playlist can be saved
// to the user's streaming account.
const minSaveSize = 3

// State describes the playlist lifecycle. A playlist starts Empty, enters
// Building on the first added song or StartNew, and returns to Empty only
// through Clear.
type State int

// Playlist states.
const (
	Empty State = iota
	Building
)

// String returns a readable state name for logs.
func (s State) String() string {
	if s == Building {
		return "building"
	}
	return "empty"
}

// Entry is a single accepted song. Identity for duplicate detection is the
// exact (Title, Artist) pair; titles differing only in case or whitespace are
// treated as distinct entries on purpose. Spotify carries the embed payload
// exactly as the recommendation endpoint emitted it, so clients can echo
// recommendations back unmodified when saving.
type Entry struct {
	Title     string            `json:"title"`
	Artist    string            `json:"artist"`
	Spotify   *music.TrackEmbed `json:"spotify,omitempty"`
	GeniusURL string            `json:"geniusUrl,omitempty"`
}

// Playlist is the session-owned collection of accepted songs. The zero value
// is an empty playlist ready for use.
type Playlist struct {
	entries []Entry
	state   State
	last    *Entry
}

// New returns an empty playlist.
func New() *Playlist {
	return &Playlist{}
}

// AddSong appends the entry unless an entry with the same (Title, Artist)
// already exists. It reports whether the entry was added; a duplicate leaves
// the playlist unchanged. A successful add moves the playlist to Building.
func (p *Playlist) AddSong(e Entry) bool {
	for _, existing := range p.entries {
		if existing.Title == e.Title && existing.Artist == e.Artist {
			return false
		}
	}
	p.entries = append(p.entries, e)
	p.state = Building
	return true
}

// RemoveSong deletes the entry at index, returning the removed entry. Out of
// range indexes are a no-op. Removing the final entry does not reset the
// state to Empty: an empty playlist stays "building" until the caller
// explicitly clears it.
func (p *Playlist) RemoveSong(index int) (Entry, bool) {
	if index < 0 || index >= len(p.entries) {
		return Entry{}, false
	}
	removed := p.entries[index]
	p.entries = append(p.entries[:index], p.entries[index+1:]...)
	return removed, true
}

// Clear empties the playlist, forgets the last recommended song and returns
// the state to Empty.
func (p *Playlist) Clear() {
	p.entries = nil
	p.last = nil
	p.state = Empty
}

// StartNew discards any existing songs and begins a new playlist containing
// only the given entry.
func (p *Playlist) StartNew(e Entry) {
	p.entries = []Entry{e}
	p.state = Building
}

// CanSave reports whether the playlist has enough songs to be saved. It is
// recomputed on every call, never cached.
func (p *Playlist) CanSave() bool {
	return len(p.entries) >= minSaveSize
}

// Songs returns a copy of the entries in insertion order.
func (p *Playlist) Songs() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Len returns the number of songs in the playlist.
func (p *Playlist) Len() int {
	return len(p.entries)
}

// State returns the current lifecycle state.
func (p *Playlist) State() State {
	return p.state
}

// SetLastRecommended remembers the most recent recommendation so it can be
// added or used to start a playlist later in the conversation.
func (p *Playlist) SetLastRecommended(e Entry) {
	copied := e
	p.last = &copied
}

// LastRecommended returns the most recent recommendation, if any.
func (p *Playlist) LastRecommended() (Entry, bool) {
	if p.last == nil {
		return Entry{}, false
	}
	return *p.last, true
}

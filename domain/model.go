package domain

import "sort"

type Style string

const (
	StyleExplain5     Style = "explain5"
	StyleFrat         Style = "frat"
	StylePizza        Style = "pizza"
	StyleCar          Style = "car"
	StyleProfessional Style = "professional"
	StyleDefault      Style = "default"
)

// KnownStyle reports whether s is one of the enumerated narration styles.
// The empty string is accepted and treated as StyleDefault by callers.
func KnownStyle(s Style) bool {
	switch s {
	case StyleExplain5, StyleFrat, StylePizza, StyleCar, StyleProfessional, StyleDefault:
		return true
	}
	return false
}

// Frame is one step's materialized content. Text is always set once the
// frame exists; ImageURL and AudioURL appear independently as the media
// stages succeed for that step.
type Frame struct {
	Text     string `json:"text"`
	ImageURL string `json:"imageUrl,omitempty"`
	AudioURL string `json:"audioUrl,omitempty"`
}

// FramePatch is a field-level upsert for one frame. Empty fields leave the
// existing value in place, so two writers patching disjoint fields never
// clobber each other.
type FramePatch struct {
	Text     string
	ImageURL string
	AudioURL string
}

// Session is the unit of work for one tutorial request. Steps is written
// once at creation and never edited; Frames is mutated in place by the
// media pipeline and the rephraser, always through the session store.
type Session struct {
	ID        string            `json:"id"`
	SourceURL string            `json:"sourceUrl"`
	Style     Style             `json:"style"`
	Steps     map[string]string `json:"steps"`
	Frames    []*Frame          `json:"frames"`
}

// StepKeys returns the storyboard keys in lexical order. The sorted position
// of a key is the frame index for that step; both media stages and the
// rephraser rely on this to address the same frame for the same step.
func (s *Session) StepKeys() []string {
	keys := make([]string, 0, len(s.Steps))
	for k := range s.Steps {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy safe to hand to readers while writers keep
// mutating the original.
func (s *Session) Clone() *Session {
	steps := make(map[string]string, len(s.Steps))
	for k, v := range s.Steps {
		steps[k] = v
	}
	frames := make([]*Frame, len(s.Frames))
	for i, f := range s.Frames {
		if f != nil {
			copied := *f
			frames[i] = &copied
		}
	}
	return &Session{
		ID:        s.ID,
		SourceURL: s.SourceURL,
		Style:     s.Style,
		Steps:     steps,
		Frames:    frames,
	}
}

// StageSummary is the result of one media stage pass over a session.
type StageSummary struct {
	Succeeded   int  `json:"succeeded"`
	Total       int  `json:"total"`
	RateLimited bool `json:"rateLimited"`
}

package services

import (
	"regexp"
	"strings"
)

// VisualPromptExtractor pulls the drawable part out of a narration step.
// The storyboard prompt already asks the model to embed a visual scene and
// to avoid written words inside it, but replies drift, so the stripping here
// is kept as a defensive second line. The whole thing is approximate by
// nature and deliberately isolated so it can be swapped out.
type VisualPromptExtractor struct {
	markerRegexp     *regexp.Regexp
	quotedRegexp     *regexp.Regexp
	literalCueRegexp *regexp.Regexp
	spaceRegexp      *regexp.Regexp
}

func NewVisualPromptExtractor() *VisualPromptExtractor {
	return &VisualPromptExtractor{
		markerRegexp:     regexp.MustCompile(`(?i)(?:visual(?:\s+cue)?|picture|imagine)\s*[:\-]\s*(.+)`),
		quotedRegexp:     regexp.MustCompile(`"[^"]*"|'[^']*'|\x60[^\x60]*\x60`),
		literalCueRegexp: regexp.MustCompile(`(?i)\b(?:that (?:says|reads)|labell?ed|with the words?|with (?:a |the )?(?:text|caption|sign) (?:saying|reading)?)\b`),
		spaceRegexp:      regexp.MustCompile(`\s+`),
	}
}

func (e *VisualPromptExtractor) Extract(stepText string) string {
	candidate := stepText
	if m := e.markerRegexp.FindStringSubmatch(stepText); m != nil {
		candidate = m[1]
	}

	candidate = e.quotedRegexp.ReplaceAllString(candidate, "")
	candidate = e.literalCueRegexp.ReplaceAllString(candidate, "")
	candidate = e.spaceRegexp.ReplaceAllString(candidate, " ")
	candidate = strings.Trim(candidate, " .,:;-")

	if candidate == "" {
		return strings.TrimSpace(stepText)
	}
	return candidate
}

package services

import (
	"fmt"
	"generate-tutorial-api/domain"
)

// styleInstructions maps each narration style to the fragment injected into
// the storyboard and rephrase prompts. Styles are enumerated options, never
// free text from the caller.
var styleInstructions = map[domain.Style]string{
	domain.StyleExplain5:     "Explain every step like the reader is five years old, with simple words and cheerful energy.",
	domain.StyleFrat:         "Narrate like an over-enthusiastic frat brother hyping up his friends, casual slang included.",
	domain.StylePizza:        "Work a running pizza analogy into every step of the explanation.",
	domain.StyleCar:          "Explain everything through car and driving metaphors.",
	domain.StyleProfessional: "Use a polished, professional tone suitable for a corporate training video.",
	domain.StyleDefault:      "Use a clear, friendly teaching tone.",
}

func styleInstruction(style domain.Style) string {
	if instruction, ok := styleInstructions[style]; ok {
		return instruction
	}
	return styleInstructions[domain.StyleDefault]
}

func storyboardSystemInstruction(style domain.Style) string {
	return fmt.Sprintf(
		"You turn source material into a short narrated slideshow tutorial. %s\n"+
			"Respond with a single JSON object and nothing else. Its keys must be "+
			"\"step1\", \"step2\" and so on, between 3 and 8 steps. Each value is one "+
			"short paragraph of narration for that step, and every paragraph must "+
			"weave in a concrete visual scene that could be drawn as an illustration. "+
			"The visual scene must never rely on written words, labels, signs or "+
			"captions appearing inside the picture.",
		styleInstruction(style))
}

func rephraseSystemInstruction(style domain.Style) string {
	return fmt.Sprintf(
		"You rewrite one step of a narrated tutorial that a viewer found confusing. %s\n"+
			"Rewrite the narration the user sends so it explains the same thing a "+
			"different, clearer way. Respond with the new narration text only, no "+
			"preamble and no quotes.",
		styleInstruction(style))
}

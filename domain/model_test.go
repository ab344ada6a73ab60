package domain

import (
	"reflect"
	"testing"
)

func TestSession_StepKeysAreSortedLexically(t *testing.T) {
	session := &Session{
		Steps: map[string]string{
			"step3": "c",
			"step1": "a",
			"step2": "b",
		},
	}

	want := []string{"step1", "step2", "step3"}
	if got := session.StepKeys(); !reflect.DeepEqual(got, want) {
		t.Errorf("StepKeys() = %v, want %v", got, want)
	}
}

func TestSession_CloneIsIndependent(t *testing.T) {
	session := &Session{
		ID:    "abc",
		Steps: map[string]string{"step1": "a"},
		Frames: []*Frame{
			{Text: "a", ImageURL: "img"},
			nil,
		},
	}

	clone := session.Clone()
	clone.Steps["step1"] = "mutated"
	clone.Frames[0].Text = "mutated"

	if session.Steps["step1"] != "a" {
		t.Error("cloning must copy the step map")
	}
	if session.Frames[0].Text != "a" {
		t.Error("cloning must copy frame values")
	}
	if clone.Frames[1] != nil {
		t.Error("absent frames stay absent in the clone")
	}
}

func TestKnownStyle(t *testing.T) {
	for _, style := range []Style{StyleExplain5, StyleFrat, StylePizza, StyleCar, StyleProfessional, StyleDefault} {
		if !KnownStyle(style) {
			t.Errorf("style %q should be known", style)
		}
	}
	if KnownStyle("victorian") {
		t.Error("unenumerated style must be rejected")
	}
}

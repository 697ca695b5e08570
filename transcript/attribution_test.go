package transcript

import (
	"strings"
	"testing"

	"github.com/kumalab/kuma/ocr"
)

func TestAttribute_EmptyInput(t *testing.T) {
	engine := NewEngine(0.1)
	tr := engine.Attribute(nil)
	if !tr.Empty() {
		t.Fatal("expected empty transcript")
	}
	if tr.String() != "" {
		t.Errorf("expected empty string, got %q", tr.String())
	}
}

func TestAttribute_SingleLine(t *testing.T) {
	engine := NewEngine(0.1)
	tr := engine.Attribute([]ocr.PositionedLine{{Text: "Hello", Left: 0.05}})
	want := "Remote:\nHello"
	if got := tr.String(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAttribute_AllRemote_SingleHeader(t *testing.T) {
	engine := NewEngine(0.1)
	lines := []ocr.PositionedLine{
		{Text: "Hi", Left: 0.05},
		{Text: "Are you there?", Left: 0.07},
		{Text: "Hello??", Left: 0.02},
	}
	tr := engine.Attribute(lines)
	got := tr.String()

	want := "Remote:\nHi\nAre you there?\nHello??"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if strings.Count(got, "Remote:") != 1 {
		t.Errorf("expected exactly one header, got %q", got)
	}
	if strings.Contains(got, "\n\n") {
		t.Errorf("expected no separators, got %q", got)
	}
}

func TestAttribute_Alternating_SeparatorPerChange(t *testing.T) {
	engine := NewEngine(0.1)
	lines := []ocr.PositionedLine{
		{Text: "a", Left: 0.05},
		{Text: "b", Left: 0.5},
		{Text: "c", Left: 0.05},
	}
	got := engine.Attribute(lines).String()

	if strings.Count(got, "\n\n") != 2 {
		t.Errorf("expected 2 separators for 3 alternating lines, got %q", got)
	}
	want := "Remote:\na\n\nLocal:\nb\n\nRemote:\nc"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAttribute_EndToEndScenario(t *testing.T) {
	engine := NewEngine(0.1)
	lines := []ocr.PositionedLine{
		{Text: "Hi", Left: 0.05},
		{Text: "Hey!", Left: 0.5},
		{Text: "How are you?", Left: 0.5},
	}
	got := engine.Attribute(lines).String()

	want := "Remote:\nHi\n\nLocal:\nHey!\nHow are you?"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestAttribute_ThresholdBoundary(t *testing.T) {
	engine := NewEngine(0.1)
	// Exactly at the threshold attributes to the local side.
	tr := engine.Attribute([]ocr.PositionedLine{{Text: "edge", Left: 0.1}})
	if got := tr.String(); got != "Local:\nedge" {
		t.Errorf("expected local attribution at threshold, got %q", got)
	}
}

func TestAttribute_CustomThreshold(t *testing.T) {
	engine := NewEngine(0.3)
	tr := engine.Attribute([]ocr.PositionedLine{{Text: "wide margin", Left: 0.2}})
	if got := tr.String(); got != "Remote:\nwide margin" {
		t.Errorf("expected remote attribution below custom threshold, got %q", got)
	}
}

func TestNewEngine_DefaultThreshold(t *testing.T) {
	engine := NewEngine(0)
	if engine.leftThreshold != DefaultLeftThreshold {
		t.Errorf("expected default threshold, got %v", engine.leftThreshold)
	}
}

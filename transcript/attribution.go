package transcript

import (
	"strings"

	"github.com/kumalab/kuma/ocr"
)

// DefaultLeftThreshold is the horizontal offset below which a line is
// attributed to the remote participant. The value is layout-dependent: it
// holds for SMS-like screenshots where received bubbles hug the left edge,
// and has no stated tolerance beyond that.
const DefaultLeftThreshold = 0.1

// Engine attributes positioned text lines to speakers using horizontal
// position as the sole discriminant.
//
// Metadata lines (timestamps, delivery receipts) are not distinguished from
// message content; both end up in the transcript. The generation prompt
// compensates for that noise, the engine does not.
type Engine struct {
	leftThreshold float64
}

// NewEngine creates an attribution engine. A non-positive threshold falls
// back to DefaultLeftThreshold.
func NewEngine(leftThreshold float64) *Engine {
	if leftThreshold <= 0 {
		leftThreshold = DefaultLeftThreshold
	}
	return &Engine{leftThreshold: leftThreshold}
}

// Attribute groups the extractor's lines into a speaker-labeled transcript.
// Consecutive lines from the same speaker are concatenated into one block;
// a speaker change starts a new block. Empty input yields an empty
// transcript.
func (e *Engine) Attribute(lines []ocr.PositionedLine) *Transcript {
	t := &Transcript{Style: StyleBlocks}

	var current *strings.Builder
	var currentSpeaker Speaker
	started := false

	flush := func() {
		if current != nil {
			t.Lines = append(t.Lines, Line{Speaker: currentSpeaker, Content: current.String()})
		}
	}

	for _, line := range lines {
		speaker := Local()
		if line.Left < e.leftThreshold {
			speaker = Remote("")
		}

		if !started || speaker != currentSpeaker {
			flush()
			current = &strings.Builder{}
			currentSpeaker = speaker
			started = true
		} else {
			current.WriteString("\n")
		}
		current.WriteString(line.Text)
	}
	flush()

	return t
}

package transcript

import "strings"

// Speaker labels used when rendering a transcript.
const (
	// LocalLabel marks the participant on whose behalf replies are generated.
	LocalLabel = "Local"
	// RemoteLabel marks any other participant in screenshot mode, where the
	// actual identity is unknown.
	RemoteLabel = "Remote"
	// LocalChatLabel is the canonical label for the local participant in
	// live chat mode.
	LocalChatLabel = "me"
)

// Speaker identifies which side of the conversation a line belongs to.
type Speaker struct {
	local bool
	name  string
}

// Local returns the local-participant speaker.
func Local() Speaker { return Speaker{local: true} }

// Remote returns a remote-participant speaker. The name may be empty when
// the source (a screenshot) carries no identity.
func Remote(name string) Speaker { return Speaker{name: name} }

// IsLocal reports whether the speaker is the local participant.
func (s Speaker) IsLocal() bool { return s.local }

// Name returns the remote participant's name, if known.
func (s Speaker) Name() string { return s.name }

// Line is one speaker-labeled unit of conversation content.
type Line struct {
	Speaker Speaker
	Content string
}

// RenderStyle selects how a transcript serializes to its final string.
type RenderStyle int

const (
	// StyleBlocks renders a speaker header per group with blank-line
	// separators between speaker changes (screenshot mode).
	StyleBlocks RenderStyle = iota
	// StyleInline renders one "speaker: content" line per message
	// (live chat mode).
	StyleInline
)

// Transcript is the ordered, speaker-labeled reconstruction of a
// conversation, oldest first.
type Transcript struct {
	Lines []Line
	Style RenderStyle
}

// Empty reports whether the transcript holds no content.
func (t *Transcript) Empty() bool { return len(t.Lines) == 0 }

// String serializes the transcript to the single newline-joined string fed
// to the generation backend.
func (t *Transcript) String() string {
	if t.Style == StyleInline {
		return t.renderInline()
	}
	return t.renderBlocks()
}

func (t *Transcript) renderBlocks() string {
	var b strings.Builder
	for i, line := range t.Lines {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(t.label(line.Speaker))
		b.WriteString(":\n")
		b.WriteString(line.Content)
	}
	return b.String()
}

func (t *Transcript) renderInline() string {
	var b strings.Builder
	for i, line := range t.Lines {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(t.label(line.Speaker))
		b.WriteString(": ")
		b.WriteString(line.Content)
	}
	return b.String()
}

func (t *Transcript) label(s Speaker) string {
	if t.Style == StyleInline {
		if s.local {
			return LocalChatLabel
		}
		return s.name
	}
	if s.local {
		return LocalLabel
	}
	return RemoteLabel
}

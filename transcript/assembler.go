package transcript

import (
	"context"
	"strings"
	"time"

	"github.com/kumalab/kuma/logger"
	"github.com/kumalab/kuma/media"
)

// EmptyMessageMarker replaces a message whose content normalizes to nothing.
const EmptyMessageMarker = "[empty message]"

// Message is one raw chat message handed to the assembler.
type Message struct {
	// AuthorID is the sender's stable user identity. Display names are not
	// unique, so identity checks go through this field.
	AuthorID string
	// Author is the sender's display name, used only for rendering.
	Author string
	// Elements is the message's content, in declared order.
	Elements []media.Element
	// Timestamp is when the message was sent; the assembler itself only
	// relies on the order messages are handed in.
	Timestamp time.Time
}

// Normalizer converts message elements into textual substitutes. It never
// fails; broken elements come back as inline markers.
type Normalizer interface {
	NormalizeAll(ctx context.Context, els []media.Element) []media.Description
}

// AssemblerConfig holds the assembler settings.
type AssemblerConfig struct {
	// BotID is the system's own user identity. When the very first fetched
	// message was authored by it, that message is excluded: it is the
	// bot's own output, not conversation content.
	BotID string
	// DropLeadingSelf toggles that exclusion. The rule is a heuristic with
	// no stated tolerance, so it stays configurable.
	DropLeadingSelf bool
}

// Assembler merges text content and media descriptions into one
// speaker-labeled transcript.
type Assembler struct {
	cfg  AssemblerConfig
	norm Normalizer
	log  *logger.Logger
}

// NewAssembler creates a conversation assembler.
func NewAssembler(norm Normalizer, cfg AssemblerConfig) *Assembler {
	return &Assembler{
		cfg:  cfg,
		norm: norm,
		log:  logger.WithComponent("assembler"),
	}
}

// SetBotID updates the assembler's own identity. Chat gateways only reveal
// the session's user after connecting, so the front end calls this once at
// ready, before any command can arrive.
func (a *Assembler) SetBotID(id string) {
	if id != "" {
		a.cfg.BotID = id
	}
}

// Assemble produces a transcript from raw messages in fetch order.
// localID identifies the requesting participant, whose messages are
// rewritten to the canonical local label. When newestFirst is set the
// messages are reversed into chronological order after the leading-self
// exclusion is applied.
//
// Normalization failures are already isolated per element by the
// normalizer, so one broken attachment never aborts the remaining messages.
func (a *Assembler) Assemble(ctx context.Context, msgs []Message, localID string, newestFirst bool) *Transcript {
	if a.cfg.DropLeadingSelf && a.cfg.BotID != "" && len(msgs) > 0 && msgs[0].AuthorID == a.cfg.BotID {
		msgs = msgs[1:]
	}

	ordered := msgs
	if newestFirst {
		ordered = make([]Message, len(msgs))
		for i, m := range msgs {
			ordered[len(msgs)-1-i] = m
		}
	}

	t := &Transcript{Style: StyleInline}
	for _, msg := range ordered {
		content := a.messageContent(ctx, msg)

		speaker := Remote(msg.Author)
		if msg.AuthorID == localID {
			speaker = Local()
		}
		t.Lines = append(t.Lines, Line{Speaker: speaker, Content: content})
	}

	a.log.Debug("assembled transcript", logger.Fields("messages", len(t.Lines)))
	return t
}

// messageContent normalizes all elements of one message and joins them with
// newline separators. A message that ends up empty is replaced with the
// empty-message marker.
func (a *Assembler) messageContent(ctx context.Context, msg Message) string {
	descs := a.norm.NormalizeAll(ctx, msg.Elements)

	parts := make([]string, 0, len(descs))
	for _, d := range descs {
		if s := strings.TrimSpace(d.Text); s != "" {
			parts = append(parts, s)
		}
	}

	content := strings.Join(parts, "\n")
	if strings.TrimSpace(content) == "" {
		return EmptyMessageMarker
	}
	return content
}

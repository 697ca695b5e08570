package bot

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/kumalab/kuma/media"
	"github.com/kumalab/kuma/transcript"
)

// toMessages maps fetched Discord messages onto the pipeline's message
// shape, preserving fetch order.
func toMessages(msgs []*discordgo.Message) []transcript.Message {
	out := make([]transcript.Message, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, transcript.Message{
			AuthorID:  authorID(msg),
			Author:    displayName(msg.Author),
			Elements:  messageElements(msg),
			Timestamp: msg.Timestamp,
		})
	}
	return out
}

func authorID(msg *discordgo.Message) string {
	if msg.Author == nil {
		return ""
	}
	return msg.Author.ID
}

// trimHistory applies the leading-self exclusion to a fetched history and
// caps it back to the requested window. Used by commands that render the
// history directly instead of going through the assembler.
func (b *Bot) trimHistory(msgs []*discordgo.Message, count int) []*discordgo.Message {
	if b.cfg.DropLeadingSelf && len(msgs) > 0 && b.isSelf(msgs[0].Author) {
		msgs = msgs[1:]
	}
	if len(msgs) > count {
		msgs = msgs[:count]
	}
	return msgs
}

// messageElements breaks one Discord message into pipeline elements: its
// text content first, then attachments in declared order, then animated
// embeds. GIF share links (Tenor, Giphy) arrive as gifv embeds whose URL is
// a share page, not the media itself, so they become animated elements that
// still need resolution.
func messageElements(msg *discordgo.Message) []media.Element {
	var els []media.Element
	if msg.Content != "" {
		els = append(els, media.Text(msg.Content))
	}

	for _, att := range msg.Attachments {
		switch {
		case strings.HasPrefix(att.ContentType, "image/"):
			els = append(els, media.Image(att.URL))
		case strings.HasPrefix(att.ContentType, "audio/"),
			strings.HasPrefix(att.ContentType, "video/"):
			els = append(els, media.Voice(att.URL, att.Filename))
		}
	}

	for _, emb := range msg.Embeds {
		if emb.Type == discordgo.EmbedTypeGifv && emb.URL != "" {
			els = append(els, media.Animated(emb.URL))
		}
	}
	return els
}

package bot

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kumalab/kuma/answer"
	"github.com/kumalab/kuma/errors"
	"github.com/kumalab/kuma/logger"
	"github.com/kumalab/kuma/transcript"
)

const (
	sayCommand     = "kuma-say"
	getLastCommand = "kuma-get-last"
	answerCommand  = "kuma-answer"

	// Above this size the message history goes out as a file attachment
	// instead of an inline code block.
	inlineHistoryLimit = 1900

	minHistoryCount = 1
	maxHistoryCount = 100
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	emotionChoices := make([]*discordgo.ApplicationCommandOptionChoice, 0, len(answer.Emotions()))
	for _, e := range answer.Emotions() {
		emotionChoices = append(emotionChoices, &discordgo.ApplicationCommandOptionChoice{
			Name:  e.String(),
			Value: e.String(),
		})
	}

	return []*discordgo.ApplicationCommand{
		{
			Name:        sayCommand,
			Description: "Make the bot speak in this channel.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "message",
					Description: "Message to send",
					Required:    true,
				},
			},
		},
		{
			Name:        getLastCommand,
			Description: "Fetch the last messages of a channel.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "Number of messages to fetch (max 100)",
					Required:    true,
				},
			},
		},
		{
			Name:        answerCommand,
			Description: "Suggest three replies to the recent conversation.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "Number of messages to analyze (max 100)",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "emotion",
					Description: "Tone of the suggested replies",
					Required:    false,
					Choices:     emotionChoices,
				},
				{
					Type:        discordgo.ApplicationCommandOptionAttachment,
					Name:        "screenshot",
					Description: "Answer a chat screenshot instead of the channel history",
					Required:    false,
				},
			},
		},
	}
}

func (b *Bot) handleSay(s *discordgo.Session, i *discordgo.InteractionCreate) {
	message := i.ApplicationCommandData().Options[0].StringValue()

	if _, err := s.ChannelMessageSend(i.ChannelID, message); err != nil {
		appErr := deliveryError(err, i.ChannelID)
		b.log.Warn("say failed", logger.ErrorFields("send", appErr))
		respondEphemeral(s, i, appErr.Message)
		return
	}
	respondEphemeral(s, i, fmt.Sprintf("Message sent in <#%s>.", i.ChannelID))
}

func (b *Bot) handleGetLast(s *discordgo.Session, i *discordgo.InteractionCreate) {
	count := int(i.ApplicationCommandData().Options[0].IntValue())
	if count < minHistoryCount || count > maxHistoryCount {
		respondEphemeral(s, i, fmt.Sprintf("Pick a number between %d and %d.", minHistoryCount, maxHistoryCount))
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		b.log.Warn("defer failed", logger.ErrorFields("defer", err))
		return
	}

	msgs, err := b.fetchHistory(s, i.ChannelID, count)
	if err != nil {
		b.followupError(s, i, err)
		return
	}
	// kuma-get-last does not go through the assembler, so the leading-self
	// exclusion happens here.
	msgs = b.trimHistory(msgs, count)

	lines := make([]string, 0, len(msgs))
	offset := time.Duration(b.cfg.DisplayUTCOffset) * time.Hour
	for idx := len(msgs) - 1; idx >= 0; idx-- { // oldest first
		msg := msgs[idx]
		content := msg.Content
		if content == "" {
			content = transcript.EmptyMessageMarker
		}
		stamp := msg.Timestamp.Add(offset).Format("2006-01-02 15:04:05")
		lines = append(lines, fmt.Sprintf("[%s] %s : %s", stamp, displayName(msg.Author), content))
	}
	history := strings.Join(lines, "\n")

	if len(history) > inlineHistoryLimit {
		_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Files: []*discordgo.File{{
				Name:        "messages.txt",
				ContentType: "text/plain",
				Reader:      strings.NewReader(history),
			}},
		})
	} else {
		_, err = s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
			Content: fmt.Sprintf("Here are the last **%d** messages:\n```%s```", count, history),
		})
	}
	if err != nil {
		b.log.Warn("followup failed", logger.ErrorFields("followup", err))
	}
}

func (b *Bot) handleAnswer(s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()

	var count int
	emotion := answer.EmotionDefault
	var screenshot *discordgo.MessageAttachment
	for _, opt := range data.Options {
		switch opt.Name {
		case "count":
			count = int(opt.IntValue())
		case "emotion":
			emotion = answer.Emotion(opt.StringValue())
		case "screenshot":
			if id, ok := opt.Value.(string); ok && data.Resolved != nil {
				screenshot = data.Resolved.Attachments[id]
			}
		}
	}
	if screenshot == nil && (count < minHistoryCount || count > maxHistoryCount) {
		respondEphemeral(s, i, fmt.Sprintf("Pick a number between %d and %d.", minHistoryCount, maxHistoryCount))
		return
	}
	if screenshot != nil && !strings.HasPrefix(screenshot.ContentType, "image/") {
		respondEphemeral(s, i, "The screenshot must be an image.")
		return
	}

	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		b.log.Warn("defer failed", logger.ErrorFields("defer", err))
		return
	}

	ctx := context.Background()
	tr, err := b.answerTranscript(ctx, s, i, count, screenshot)
	if err != nil {
		b.followupError(s, i, err)
		return
	}

	raw, err := b.generator.Generate(ctx, tr.String(), emotion)
	if err != nil {
		b.followupError(s, i, err)
		return
	}

	candidates := answer.Sanitize(raw)
	if len(candidates) == 0 {
		b.followupError(s, i, errors.InvalidInput("generation", "the model produced no usable replies"))
		return
	}

	b.presentCandidates(s, i, candidates)
}

// answerTranscript reconstructs the conversation to answer: from an
// attached chat screenshot when one was given, otherwise from the channel
// history.
func (b *Bot) answerTranscript(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, count int, screenshot *discordgo.MessageAttachment) (*transcript.Transcript, error) {
	if screenshot != nil {
		tr, err := b.screenshots.Read(ctx, screenshot.URL)
		if err != nil {
			return nil, err
		}
		if tr.Empty() {
			return nil, errors.InvalidInput("screenshot", "no text found in the screenshot")
		}
		return tr, nil
	}

	msgs, err := b.fetchHistory(s, i.ChannelID, count)
	if err != nil {
		return nil, err
	}
	localID := ""
	if u := invokingUser(i); u != nil {
		localID = u.ID
	}
	tr := b.assembler.Assemble(ctx, toMessages(msgs), localID, true)
	if tr.Empty() {
		return nil, errors.InvalidInput("count", "no usable messages in the selected range")
	}
	return tr, nil
}

// fetchHistory retrieves the newest count messages of a channel, newest
// first. One extra message is requested so a leading bot-authored message
// can be excluded without shrinking the window the user asked for; when no
// exclusion applies the oldest extra is trimmed back off.
func (b *Bot) fetchHistory(s *discordgo.Session, channelID string, count int) ([]*discordgo.Message, error) {
	msgs, err := s.ChannelMessages(channelID, count+1, "", "", "")
	if err != nil {
		return nil, errors.ExternalServiceError("chat history", err)
	}

	leadingSelf := b.cfg.DropLeadingSelf && len(msgs) > 0 && b.isSelf(msgs[0].Author)
	if !leadingSelf && len(msgs) > count {
		msgs = msgs[:count]
	}
	return msgs, nil
}

// followupError surfaces a failure to the invoking user without touching
// the channel. Typed errors keep their user-facing message.
func (b *Bot) followupError(s *discordgo.Session, i *discordgo.InteractionCreate, err error) {
	content := "Something went wrong. Please try again."
	if appErr, ok := errors.AsAppError(err); ok {
		content = appErr.Message
	}
	b.log.Warn("command failed", logger.ErrorFields("command", err))

	_, ferr := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if ferr != nil {
		b.log.Warn("followup failed", logger.ErrorFields("followup", ferr))
	}
}

// deliveryError maps a send failure to a typed error, distinguishing
// missing write permission from everything else.
func deliveryError(err error, channelID string) *errors.AppError {
	var restErr *discordgo.RESTError
	if stderrors.As(err, &restErr) && restErr.Response != nil &&
		restErr.Response.StatusCode == http.StatusForbidden {
		return errors.DeliveryForbidden(fmt.Sprintf("<#%s>", channelID))
	}
	return errors.ExternalServiceError("chat delivery", err)
}

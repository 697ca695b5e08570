package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/kumalab/kuma/answer"
	"github.com/kumalab/kuma/logger"
	"github.com/kumalab/kuma/transcript"
)

// Config holds the front-end settings.
type Config struct {
	// Token is the bot session token.
	Token string
	// DisplayUTCOffset shifts timestamps shown by kuma-get-last, in hours.
	DisplayUTCOffset int
	// SelectTimeout disables candidate buttons after this inactivity window.
	SelectTimeout time.Duration
	// DropLeadingSelf mirrors the assembler's leading-self exclusion so the
	// fetch size can be trimmed back consistently.
	DropLeadingSelf bool
}

// Bot wires the Discord session to the conversation pipeline.
type Bot struct {
	cfg         Config
	session     *discordgo.Session
	assembler   *transcript.Assembler
	generator   *answer.Generator
	screenshots *ScreenshotReader
	selects     *selectionRegistry
	log         *logger.Logger

	// botID is the session's own user ID, set at ready. Self checks go
	// through the ID; display names are not unique.
	botID string

	commandIDs []string
}

// New creates the bot and its Discord session. The session is not opened
// until Start is called.
func New(cfg Config, asm *transcript.Assembler, gen *answer.Generator, shots *ScreenshotReader) (*Bot, error) {
	if cfg.SelectTimeout <= 0 {
		cfg.SelectTimeout = 60 * time.Second
	}

	session, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("bot: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentMessageContent

	b := &Bot{
		cfg:         cfg,
		session:     session,
		assembler:   asm,
		generator:   gen,
		screenshots: shots,
		selects:     newSelectionRegistry(),
		log:         logger.WithComponent("bot"),
	}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Start opens the gateway connection. Command registration happens in the
// ready handler once the session knows its own application ID.
func (b *Bot) Start(_ context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("bot: open session: %w", err)
	}
	return nil
}

// Stop unregisters the slash commands and closes the gateway connection.
func (b *Bot) Stop() error {
	for _, id := range b.commandIDs {
		if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, "", id); err != nil {
			b.log.Warn("delete command failed", logger.ErrorFields("command_delete", err))
		}
	}
	return b.session.Close()
}

// isSelf reports whether a user is the bot itself. Always false before the
// session is ready.
func (b *Bot) isSelf(u *discordgo.User) bool {
	return u != nil && b.botID != "" && u.ID == b.botID
}

func (b *Bot) onReady(s *discordgo.Session, _ *discordgo.Ready) {
	b.log.Info("connected", map[string]any{"user": s.State.User.Username})
	b.botID = s.State.User.ID
	b.assembler.SetBotID(s.State.User.ID)

	for _, cmd := range commandDefinitions() {
		created, err := s.ApplicationCommandCreate(s.State.User.ID, "", cmd)
		if err != nil {
			b.log.Error("register command failed", map[string]any{
				"command":         cmd.Name,
				logger.FieldError: err.Error(),
			})
			continue
		}
		b.commandIDs = append(b.commandIDs, created.ID)
	}
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		switch i.ApplicationCommandData().Name {
		case sayCommand:
			b.handleSay(s, i)
		case getLastCommand:
			b.handleGetLast(s, i)
		case answerCommand:
			b.handleAnswer(s, i)
		}
	case discordgo.InteractionMessageComponent:
		b.handleCandidatePick(s, i)
	}
}

// respondEphemeral sends an immediate ephemeral text response.
func respondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_ = s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
}

// invokingUser returns the user behind an interaction, wherever it came
// from (guild interactions carry a member, DMs a bare user).
func invokingUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// displayName resolves the name shown in chat for a user.
func displayName(u *discordgo.User) string {
	if u == nil {
		return "unknown"
	}
	if u.GlobalName != "" {
		return u.GlobalName
	}
	return u.Username
}

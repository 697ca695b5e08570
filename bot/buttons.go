package bot

import (
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"github.com/kumalab/kuma/logger"
)

// Discord caps button labels at 80 characters.
const buttonLabelLimit = 80

// candidateButton binds one generated reply to one button. The value is
// fixed at construction so every button carries its own candidate, whatever
// order the interactions arrive in.
type candidateButton struct {
	customID string
	value    string
}

// selection is one pending pick-a-reply prompt.
type selection struct {
	buttons     []*candidateButton
	interaction *discordgo.Interaction
	messageID   string
	// timer is armed under the registry lock when the selection is added;
	// readers see it through the same lock's ordering.
	timer *time.Timer
}

// selectionRegistry tracks pending selections by button custom ID.
type selectionRegistry struct {
	mu         sync.Mutex
	byCustomID map[string]*candidateButton
	owner      map[string]*selection
}

func newSelectionRegistry() *selectionRegistry {
	return &selectionRegistry{
		byCustomID: make(map[string]*candidateButton),
		owner:      make(map[string]*selection),
	}
}

// add publishes a selection and arms its expiry timer in one step, so no
// pick can observe the selection without its timer.
func (r *selectionRegistry) add(sel *selection, timeout time.Duration, onExpire func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, btn := range sel.buttons {
		r.byCustomID[btn.customID] = btn
		r.owner[btn.customID] = sel
	}
	sel.timer = time.AfterFunc(timeout, onExpire)
}

// take resolves a button press and removes the whole owning selection, so a
// prompt can be answered at most once.
func (r *selectionRegistry) take(customID string) (*candidateButton, *selection, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	btn, ok := r.byCustomID[customID]
	if !ok {
		return nil, nil, false
	}
	sel := r.owner[customID]
	r.removeLocked(sel)
	return btn, sel, true
}

// expire removes a selection if it is still pending.
func (r *selectionRegistry) expire(sel *selection) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.owner[sel.buttons[0].customID]; !ok {
		return false
	}
	r.removeLocked(sel)
	return true
}

func (r *selectionRegistry) removeLocked(sel *selection) {
	for _, btn := range sel.buttons {
		delete(r.byCustomID, btn.customID)
		delete(r.owner, btn.customID)
	}
}

// presentCandidates shows the candidates as an ephemeral message with one
// button per reply and arms the inactivity timeout.
func (b *Bot) presentCandidates(s *discordgo.Session, i *discordgo.InteractionCreate, candidates []string) {
	sel := &selection{interaction: i.Interaction}
	for _, c := range candidates {
		sel.buttons = append(sel.buttons, &candidateButton{
			customID: uuid.NewString(),
			value:    c,
		})
	}

	msg, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content:    "Pick a reply to send:",
		Flags:      discordgo.MessageFlagsEphemeral,
		Components: selectionComponents(sel, false),
	})
	if err != nil {
		b.log.Warn("present candidates failed", logger.ErrorFields("followup", err))
		return
	}
	sel.messageID = msg.ID

	b.selects.add(sel, b.cfg.SelectTimeout, func() { b.expireSelection(s, sel) })
}

// handleCandidatePick sends the chosen reply to the channel and retires the
// prompt. Presses on an already-resolved or expired prompt are answered
// with a short notice.
func (b *Bot) handleCandidatePick(s *discordgo.Session, i *discordgo.InteractionCreate) {
	customID := i.MessageComponentData().CustomID

	btn, sel, ok := b.selects.take(customID)
	if !ok {
		respondEphemeral(s, i, "This prompt has expired.")
		return
	}
	if sel.timer != nil {
		sel.timer.Stop()
	}

	if _, err := s.ChannelMessageSend(i.ChannelID, btn.value); err != nil {
		appErr := deliveryError(err, i.ChannelID)
		b.log.Warn("candidate delivery failed", logger.ErrorFields("send", appErr))
		respondEphemeral(s, i, appErr.Message)
		return
	}

	content := "Reply sent."
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: selectionComponents(sel, true),
		},
	})
	if err != nil {
		b.log.Warn("update prompt failed", logger.ErrorFields("update", err))
	}
}

// expireSelection disables the buttons after the inactivity window. Nothing
// is sent on the user's behalf; the prompt just becomes inert.
func (b *Bot) expireSelection(s *discordgo.Session, sel *selection) {
	if !b.selects.expire(sel) {
		return // already resolved by a pick
	}

	content := "Selection timed out."
	components := selectionComponents(sel, true)
	_, err := s.FollowupMessageEdit(sel.interaction, sel.messageID, &discordgo.WebhookEdit{
		Content:    &content,
		Components: &components,
	})
	if err != nil {
		b.log.Warn("disable prompt failed", logger.ErrorFields("edit", err))
	}
}

func selectionComponents(sel *selection, disabled bool) []discordgo.MessageComponent {
	row := discordgo.ActionsRow{}
	for _, btn := range sel.buttons {
		row.Components = append(row.Components, discordgo.Button{
			Label:    truncateLabel(btn.value),
			Style:    discordgo.PrimaryButton,
			CustomID: btn.customID,
			Disabled: disabled,
		})
	}
	return []discordgo.MessageComponent{row}
}

func truncateLabel(s string) string {
	runes := []rune(s)
	if len(runes) <= buttonLabelLimit {
		return s
	}
	return fmt.Sprintf("%s…", string(runes[:buttonLabelLimit-1]))
}

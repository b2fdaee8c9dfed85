package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/portcullis-bot/Portcullis/config"
	"github.com/portcullis-bot/Portcullis/model"
	"github.com/portcullis-bot/Portcullis/pkg/log"
	tb "gopkg.in/tucnak/telebot.v2"
)

// handleUserJoined gates the newcomer behind the unverified role and posts a
// public welcome. Both steps are best-effort.
func (b *Bot) handleUserJoined(m *tb.Message) {
	joined := m.UserJoined
	if joined == nil {
		return
	}
	userID := UserID(joined)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	role, ok, err := b.Ledger.FindRoleByName(ctx, m.Chat.ID, model.RoleUnverified)
	if err != nil {
		log.Warn("handleUserJoined: %v", err)
	} else if !ok {
		log.Warn("handleUserJoined: role %v not found for chat %v", model.RoleUnverified, m.Chat.ID)
	} else if err := b.Ledger.AddRole(ctx, m.Chat.ID, userID, role); err != nil {
		log.Warn("handleUserJoined: assign %v to %v: %v", model.RoleUnverified, userID, err)
	} else {
		log.Info("assigned %v role to user %v in chat %v", model.RoleUnverified, userID, m.Chat.ID)
	}
	b.Events.Record(m.Chat.ID, userID, "member joined")

	dest := m.Chat
	if id := config.GetConfig().WelcomeChat; id != 0 {
		dest = &tb.Chat{ID: id}
	}
	if _, err := b.Bot.Send(dest,
		fmt.Sprintf("Welcome to the group, %v! We're glad to have you here! 🎉", DisplayName(joined))); err != nil {
		log.Warn("handleUserJoined: welcome message: %v", err)
	}
}

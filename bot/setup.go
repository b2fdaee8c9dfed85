package bot

import (
	"github.com/portcullis-bot/Portcullis/config"
	"github.com/portcullis-bot/Portcullis/pkg/log"
	"github.com/portcullis-bot/Portcullis/service"
	tb "gopkg.in/tucnak/telebot.v2"
)

const verifyPromptText = "Welcome! 👋\n\nIf you hold the unverified role, press the button below to gain full access to the group."

// SetupVerificationChat seeds the required roles for the configured
// verification chat and posts the public verify prompt, once per chat across
// restarts.
func (b *Bot) SetupVerificationChat() {
	conf := config.GetConfig()
	if conf.VerificationChat == 0 {
		log.Warn("no verification chat configured; the verify prompt will not be posted")
		return
	}
	chat := &tb.Chat{ID: conf.VerificationChat}
	chatIdentifier := b.ChatIdentifier(chat)
	created, _, err := b.Ledger.EnsureRequiredRoles(chatIdentifier)
	if err != nil {
		log.Warn("SetupVerificationChat: %v", err)
	} else if len(created) > 0 {
		log.Info("created missing roles %v for chat %v", created, chatIdentifier)
	}
	posted, err := service.SetupMessagePosted(chatIdentifier)
	if err != nil {
		log.Warn("SetupVerificationChat: %v", err)
	}
	if posted {
		log.Info("verify prompt already posted in chat %v", chatIdentifier)
		return
	}
	markup := &tb.ReplyMarkup{InlineKeyboard: [][]tb.InlineButton{{
		{Unique: "verify_user", Text: "Verify"},
	}}}
	m, err := b.Bot.Send(chat, verifyPromptText, markup)
	if err != nil {
		log.Warn("SetupVerificationChat: post prompt: %v", err)
		return
	}
	if err := service.MarkSetupMessage(chatIdentifier, m.ID); err != nil {
		log.Warn("SetupVerificationChat: %v", err)
	}
	log.Info("verify prompt posted in chat %v", chatIdentifier)
}

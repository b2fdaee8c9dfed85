package callback_handler

import (
	"context"
	"time"

	"github.com/portcullis-bot/Portcullis/bot"
	"github.com/portcullis-bot/Portcullis/pkg/log"
	tb "gopkg.in/tucnak/telebot.v2"
)

func init() {
	bot.RegisterCallback("verify_user", VerifyUser)
}

// VerifyUser handles presses of the public Verify button and posts a fresh
// challenge for the presser.
func VerifyUser(b *bot.Bot, c *tb.Callback, data string) {
	userID := bot.UserID(c.Sender)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("VerifyUser: chat: %v, user: %v", c.Message.Chat.ID, userID)
	reply, err := b.Verifier.RequestChallenge(ctx, c.Message.Chat.ID, userID)
	if err != nil {
		log.Warn("VerifyUser: %v", err)
		b.RespondText(c, bot.GenericFailureText)
		return
	}
	if reply.Challenge == nil {
		// precondition not met; nothing was issued
		b.RespondText(c, reply.Text)
		return
	}
	b.RespondText(c, "Check the challenge message in the chat.")
	if err := b.SendChallenge(c.Message.Chat, c.Sender, reply); err != nil {
		log.Warn("VerifyUser: send challenge: %v", err)
	}
}

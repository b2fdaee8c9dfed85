package callback_handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/portcullis-bot/Portcullis/bot"
	"github.com/portcullis-bot/Portcullis/pkg/log"
	tb "gopkg.in/tucnak/telebot.v2"
)

func init() {
	bot.RegisterCallback("gender_select", GenderSelect)
}

// GenderSelect finishes verification with the chosen attribute role. The
// payload is "<addressee>:<attribute>".
func GenderSelect(b *bot.Bot, c *tb.Callback, data string) {
	parts := strings.SplitN(data, ":", 2)
	if len(parts) != 2 {
		return
	}
	addressee, attribute := parts[0], parts[1]
	userID := bot.UserID(c.Sender)
	if userID != addressee {
		b.RespondText(c, "This menu is not yours.")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("GenderSelect: chat: %v, user: %v, attribute: %v", c.Message.Chat.ID, userID, attribute)
	reply, err := b.Verifier.SelectAttribute(ctx, c.Message.Chat.ID, userID, attribute)
	if err != nil {
		log.Warn("GenderSelect: %v", err)
		b.RespondText(c, bot.GenericFailureText)
		return
	}
	if _, err := b.Bot.Edit(c.Message, fmt.Sprintf("%v, %v", bot.DisplayName(c.Sender), reply.Text)); err != nil {
		log.Warn("GenderSelect: %v", err)
	}
	b.RespondText(c, "")
}

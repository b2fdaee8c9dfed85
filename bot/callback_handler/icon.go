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
	bot.RegisterCallback("icon_select", IconSelect)
}

// IconSelect handles a press on one of the four challenge options. The
// payload is "<addressee>:<challengeID>:<icon name>".
func IconSelect(b *bot.Bot, c *tb.Callback, data string) {
	parts := strings.SplitN(data, ":", 3)
	if len(parts) != 3 {
		return
	}
	addressee, challengeID, selected := parts[0], parts[1], parts[2]
	userID := bot.UserID(c.Sender)
	if userID != addressee {
		b.RespondText(c, "This challenge is not yours.")
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("IconSelect: chat: %v, user: %v, selected: %v", c.Message.Chat.ID, userID, selected)
	reply, err := b.Verifier.AnswerChallenge(ctx, c.Message.Chat.ID, userID, challengeID, selected)
	if err != nil {
		log.Warn("IconSelect: %v", err)
		b.RespondText(c, bot.GenericFailureText)
		return
	}
	if reply.Attributes != nil {
		if err := b.EditAttributeMenu(c.Message, c.Sender, reply); err != nil {
			log.Warn("IconSelect: %v", err)
		}
	} else if _, err := b.Bot.Edit(c.Message, fmt.Sprintf("%v, %v", bot.DisplayName(c.Sender), reply.Text)); err != nil {
		log.Warn("IconSelect: %v", err)
	}
	b.RespondText(c, "")
}

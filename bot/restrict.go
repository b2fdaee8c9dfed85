package bot

import (
	"strconv"

	tb "gopkg.in/tucnak/telebot.v2"
)

// restrictor mirrors the gated role onto Telegram chat permissions: holders
// of the unverified role cannot post until the role is removed.
type restrictor struct {
	bot *tb.Bot
}

func (r *restrictor) member(userID string) (*tb.ChatMember, error) {
	uid, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return nil, err
	}
	return &tb.ChatMember{User: &tb.User{ID: uid}}, nil
}

func (r *restrictor) Restrict(chatID int64, userID string) error {
	member, err := r.member(userID)
	if err != nil {
		return err
	}
	member.Rights = tb.NoRights()
	return r.bot.Restrict(&tb.Chat{ID: chatID}, member)
}

func (r *restrictor) Lift(chatID int64, userID string) error {
	member, err := r.member(userID)
	if err != nil {
		return err
	}
	member.Rights = tb.NoRestrictions()
	return r.bot.Restrict(&tb.Chat{ID: chatID}, member)
}

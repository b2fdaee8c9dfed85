package bot

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/portcullis-bot/Portcullis/pkg/log"
	"github.com/portcullis-bot/Portcullis/service"
	tb "gopkg.in/tucnak/telebot.v2"
)

type Bot struct {
	Bot      *tb.Bot
	Verifier *service.Verifier
	Ledger   *service.RoleLedger
	Events   service.EventSink
}

// CallbackHandler handles one inline-button press. data is the payload after
// the button's unique identifier.
type CallbackHandler func(b *Bot, c *tb.Callback, data string)

var GlobalCallbackMapper = make(map[string]CallbackHandler)

func RegisterCallback(unique string, f CallbackHandler) {
	GlobalCallbackMapper[unique] = f
}

const GenericFailureText = "There was an error processing your verification. Please try again later or contact an administrator."

func New(token string, poller *tb.LongPoller, store service.VerificationStore) (*Bot, error) {
	if poller == nil {
		poller = &tb.LongPoller{Timeout: 15 * time.Second}
	}
	b, err := tb.NewBot(tb.Settings{
		Token:  token,
		Poller: poller,
	})
	if err != nil {
		return nil, err
	}
	ledger := service.NewRoleLedger(&restrictor{bot: b})
	events := service.NewFeedRecorder()
	bot := &Bot{
		Bot:      b,
		Verifier: service.NewVerifier(service.NewChallengeGenerator(nil), store, ledger, events),
		Ledger:   ledger,
		Events:   events,
	}
	b.Handle(tb.OnUserJoined, bot.handleUserJoined)
	b.Handle(tb.OnCallback, bot.handleCallback)
	bot.SetupVerificationChat()
	b.Start()
	return bot, nil
}

func (b *Bot) handleCallback(c *tb.Callback) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("callback %v from user %v: %v", strconv.Quote(c.Data), c.Sender.ID, r)
			b.RespondText(c, GenericFailureText)
		}
	}()
	unique, data := ParseCallbackData(c.Data)
	if handler, ok := GlobalCallbackMapper[unique]; ok {
		handler(b, c, data)
	}
}

// ParseCallbackData splits a raw callback payload. telebot delivers inline
// button presses as "\f<unique>" or "\f<unique>|<data>".
func ParseCallbackData(raw string) (unique string, data string) {
	if !strings.HasPrefix(raw, "\f") {
		return "", ""
	}
	raw = strings.TrimPrefix(raw, "\f")
	if i := strings.Index(raw, "|"); i >= 0 {
		return raw[:i], raw[i+1:]
	}
	return raw, ""
}

// RespondText answers the callback with a notification only its sender sees.
func (b *Bot) RespondText(c *tb.Callback, text string) {
	if err := b.Bot.Respond(c, &tb.CallbackResponse{Text: text}); err != nil {
		log.Warn("RespondText: %v", err)
	}
}

func (b *Bot) ChatIdentifier(c *tb.Chat) string {
	return service.ChatIdentifier(c.ID)
}

func UserID(u *tb.User) string {
	return strconv.FormatInt(u.ID, 10)
}

func DisplayName(u *tb.User) string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return u.FirstName
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const maxButtonsPerRow = 5

// SendChallenge posts the challenge into the chat, addressed to the user. The
// option buttons carry the addressee and challenge ID so late and foreign
// presses can be told apart from live ones.
func (b *Bot) SendChallenge(chat *tb.Chat, user *tb.User, reply service.Reply) error {
	challenge := reply.Challenge
	userID := UserID(user)
	var rows [][]tb.InlineButton
	var row []tb.InlineButton
	for _, icon := range challenge.Options {
		row = append(row, tb.InlineButton{
			Unique: "icon_select",
			Text:   fmt.Sprintf("%v %v", icon.Name, icon.Emoji),
			Data:   strings.Join([]string{userID, challenge.ID, icon.Name}, ":"),
		})
		if len(row) == maxButtonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	_, err := b.Bot.Send(chat,
		fmt.Sprintf("%v, %v", DisplayName(user), reply.Text),
		&tb.ReplyMarkup{InlineKeyboard: rows})
	return err
}

// EditAttributeMenu swaps a challenge message for the attribute-selection
// menu shown after a passed challenge.
func (b *Bot) EditAttributeMenu(m *tb.Message, user *tb.User, reply service.Reply) error {
	userID := UserID(user)
	var row []tb.InlineButton
	for _, attribute := range reply.Attributes {
		row = append(row, tb.InlineButton{
			Unique: "gender_select",
			Text:   titleCase(attribute),
			Data:   userID + ":" + attribute,
		})
	}
	_, err := b.Bot.Edit(m,
		fmt.Sprintf("%v, %v", DisplayName(user), reply.Text),
		&tb.ReplyMarkup{InlineKeyboard: [][]tb.InlineButton{row}})
	return err
}

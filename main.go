package main

import (
	"github.com/portcullis-bot/Portcullis/bot"
	_ "github.com/portcullis-bot/Portcullis/bot/callback_handler"
	"github.com/portcullis-bot/Portcullis/config"
	"github.com/portcullis-bot/Portcullis/pkg/log"
	"github.com/portcullis-bot/Portcullis/service"
	"github.com/portcullis-bot/Portcullis/webserver/router"
)

func main() {
	conf := config.GetConfig()
	var store service.VerificationStore = service.NewMemoryStore()
	if conf.PersistVerifications {
		store = service.NewBoltStore()
	}
	GoBackgrounds(store)
	go func() {
		if _, err := bot.New(conf.BotToken, nil, store); err != nil {
			log.Fatal("Bot: %v", err)
		}
	}()
	if err := router.Run(store); err != nil {
		log.Fatal("%v", err)
	}
}

package config

import (
	log2 "log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/portcullis-bot/Portcullis/common"
	"github.com/portcullis-bot/Portcullis/db"
	"github.com/portcullis-bot/Portcullis/pkg/log"
	"github.com/stevenroose/gonfig"
)

type Params struct {
	Address              string `id:"address" short:"a" default:"0.0.0.0:14914" desc:"Listening address"`
	Config               string `id:"config" short:"c" default:"$HOME/.config/portcullis" desc:"Portcullis configuration directory"`
	BotToken             string `id:"bot-token" desc:"Telegram bot token"`
	Host                 string `id:"host" default:"example.org"`
	VerificationChat     int64  `id:"verification-chat" desc:"ID of the chat to post the verification prompt into"`
	WelcomeChat          int64  `id:"welcome-chat" desc:"ID of the chat to post welcome messages into; defaults to the chat the member joined"`
	PersistVerifications bool   `id:"persist-verifications" desc:"Keep pending verifications in the database instead of memory"`
	LogLevel             string `id:"log-level" default:"info" desc:"Optional values: trace, debug, info, warn or error"`
	LogFile              string `id:"log-file" desc:"The path of log file"`
	LogMaxDays           int64  `id:"log-max-days" default:"3" desc:"Maximum number of days to keep log files"`
	LogDisableColor      bool   `id:"log-disable-color"`
	LogDisableTimestamp  bool   `id:"log-disable-timestamp"`
}

var params Params

func initFunc() {
	err := gonfig.Load(&params, gonfig.Conf{
		FileDisable:       true,
		FlagIgnoreUnknown: false,
		EnvPrefix:         "PORTCULLIS_",
	})
	if err != nil {
		// ignore the flags the test binary injects
		if !strings.HasPrefix(err.Error(), "unexpected word while parsing flags: '-test.") {
			log2.Fatal(err)
		}
	}
	// replace all dots of the filename with underlines
	params.Config = filepath.Join(
		filepath.Dir(params.Config),
		strings.ReplaceAll(filepath.Base(params.Config), ".", "_"),
	)
	// expand '~' with user home
	params.Config, err = common.HomeExpand(params.Config)
	if err != nil {
		log2.Fatal(err)
	}
	params.LogFile, err = common.HomeExpand(params.LogFile)
	if err != nil {
		log2.Fatal(err)
	}
	if strings.Contains(params.Config, "$HOME") {
		if h, err := os.UserHomeDir(); err == nil {
			params.Config = strings.ReplaceAll(params.Config, "$HOME", h)
		}
	}
	if err := os.MkdirAll(params.Config, 0700); err != nil {
		log2.Fatal(err)
	}
	logWay := "console"
	if params.LogFile != "" {
		logWay = "file"
	}
	log.InitLog(logWay, params.LogFile, params.LogLevel, params.LogMaxDays, params.LogDisableColor, params.LogDisableTimestamp)
	db.InitDB(params.Config)
}

var once sync.Once

func GetConfig() *Params {
	once.Do(initFunc)
	return &params
}

package controller

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portcullis-bot/Portcullis/common"
	"github.com/portcullis-bot/Portcullis/service"
)

// GetChatFeed serves the moderator feed of verification events. The format is
// chosen by the extension on the chat identifier (.rss, .atom or .json).
func GetChatFeed(ctx *gin.Context) {
	chatIdentifier, ext := SplitChatIdentifier(ctx)
	var (
		str string
		err error
	)
	switch strings.ToLower(ext) {
	case ".atom":
		str, err = service.GetChatFeed(nil, chatIdentifier, service.FeedFormatAtom)
	case ".rss":
		str, err = service.GetChatFeed(nil, chatIdentifier, service.FeedFormatRSS)
	case ".json":
		str, err = service.GetChatFeed(nil, chatIdentifier, service.FeedFormatJSON)
	default:
		common.ResponseBadRequestError(ctx)
		return
	}
	if err != nil {
		common.ResponseError(ctx, err)
		return
	}
	ctx.Header("Content-Type", "application/rss+xml")
	ctx.Writer.WriteString(str)
}

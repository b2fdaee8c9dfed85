package controller

import (
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portcullis-bot/Portcullis/service"
)

var (
	store  service.VerificationStore
	ledger *service.RoleLedger
)

// Init wires the controllers. The ledger here carries no restrictor: the HTTP
// surface manages role records only, never chat permissions.
func Init(s service.VerificationStore) {
	store = s
	ledger = service.NewRoleLedger(nil)
}

// SplitChatIdentifier separates an optional format extension from the
// ChatIdentifier path parameter.
func SplitChatIdentifier(ctx *gin.Context) (chatIdentifier string, ext string) {
	chatIdentifier = ctx.Param("ChatIdentifier")
	ext = path.Ext(chatIdentifier)
	return strings.TrimSuffix(chatIdentifier, ext), ext
}

package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/portcullis-bot/Portcullis/common"
)

// PostEnsureRoles seeds the required role set for a chat and reports which
// roles were created and which already existed.
func PostEnsureRoles(ctx *gin.Context) {
	chatIdentifier := ctx.Param("ChatIdentifier")
	created, existing, err := ledger.EnsureRequiredRoles(chatIdentifier)
	if err != nil {
		common.ResponseError(ctx, err)
		return
	}
	common.ResponseSuccess(ctx, gin.H{
		"Created":  created,
		"Existing": existing,
	})
}

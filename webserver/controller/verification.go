package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/portcullis-bot/Portcullis/common"
	"github.com/portcullis-bot/Portcullis/model"
)

// GetVerificationStats reports how many challenges are outstanding.
func GetVerificationStats(ctx *gin.Context) {
	common.ResponseSuccess(ctx, gin.H{
		"Pending":    store.Len(),
		"Expiration": model.VerificationExpiration.String(),
	})
}

package router

import (
	"github.com/gin-gonic/gin"
	"github.com/portcullis-bot/Portcullis/config"
	"github.com/portcullis-bot/Portcullis/service"
	"github.com/portcullis-bot/Portcullis/webserver/controller"
)

func Run(store service.VerificationStore) error {
	controller.Init(store)
	engine := gin.New()
	engine.Use(gin.Recovery())
	api := engine.Group("/api/:ChatIdentifier")
	{
		api.GET("verification", controller.GetVerificationStats)
		api.GET("feed", controller.GetChatFeed)
	}
	roles := api.Group("roles")
	{
		roles.POST("ensure", controller.PostEnsureRoles)
	}
	return engine.Run(config.GetConfig().Address)
}

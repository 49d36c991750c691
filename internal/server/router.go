package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/dverdugo/message-app/internal/handlers"
	"github.com/dverdugo/message-app/internal/middleware"
	"github.com/dverdugo/message-app/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *auth.Manager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	userH *handlers.UserHandler,
	chatH *handlers.ChatHandler,
	messageH *handlers.MessageHandler,
	wsH *handlers.WebSocketHandler,
	healthH *handlers.HealthHandler,
) {
	r.GET("/health", healthH.Health)

	// Live delivery channel; identity hint is optional, no auth required.
	r.GET("/ws", wsH.HandleWebSocket)

	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", authH.Register)
		authGroup.POST("/login", authH.Login)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.POST("/auth/logout", authH.Logout)
		api.GET("/session/:id", authH.Session)

		api.GET("/users", userH.ListUsers)
		api.GET("/users/:id", userH.GetUser)
		api.DELETE("/users/:id", userH.DeactivateUser)
		api.GET("/users/:id/chats", chatH.ListUserChats)

		api.POST("/chats", chatH.CreateChat)
		api.GET("/chats/:id", chatH.GetChat)
		api.DELETE("/chats/:id", chatH.DeactivateChat)
		api.POST("/chats/:id/participants", chatH.AddParticipant)
		api.DELETE("/chats/:id/participants/:userID", chatH.RemoveParticipant)

		api.POST("/chats/:id/messages", messageH.SendMessage)
		api.GET("/chats/:id/messages", messageH.ListMessages)
		api.GET("/messages/:id", messageH.GetMessage)
		api.DELETE("/messages/:id", messageH.DeleteMessage)

		api.GET("/online", wsH.OnlineUsers)
	}
}

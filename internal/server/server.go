package server

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/dverdugo/message-app/internal/database"
	"github.com/dverdugo/message-app/internal/handlers"
	"github.com/dverdugo/message-app/internal/service"
	"github.com/dverdugo/message-app/internal/session"
	"github.com/dverdugo/message-app/internal/websocket"
	"github.com/dverdugo/message-app/pkg/auth"
)

type Server struct {
	Router   *gin.Engine
	DB       *database.Database
	Redis    *redis.Client
	Hub      *websocket.Hub
	Sessions *session.Registry
}

func New() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	maxConns := 10
	if raw := os.Getenv("DB_MAX_CONNS"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxConns = n
		}
	}

	db, err := database.Connect(os.Getenv("DATABASE_URL"), maxConns)
	if err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := websocket.NewHub()
	go hub.Run()

	sessions := session.NewRegistry()

	userService := service.NewUserService(db)
	chatService := service.NewChatService(db)
	messageService := service.NewMessageService(db)

	authH := handlers.NewAuthHandler(userService, sessions, jwtMgr, rdb)
	userH := handlers.NewUserHandler(userService)
	chatH := handlers.NewChatHandler(chatService)
	messageH := handlers.NewMessageHandler(messageService)
	wsH := handlers.NewWebSocketHandler(hub)
	healthH := handlers.NewHealthHandler(db)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, userH, chatH, messageH, wsH, healthH)

	return &Server{
		Router:   router,
		DB:       db,
		Redis:    rdb,
		Hub:      hub,
		Sessions: sessions,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}

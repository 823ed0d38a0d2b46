package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/ThalyssonFerreira/Chat-telecom/internal/ai"
	"github.com/ThalyssonFerreira/Chat-telecom/internal/conversation"
	"github.com/ThalyssonFerreira/Chat-telecom/internal/delivery"
	"github.com/ThalyssonFerreira/Chat-telecom/internal/telegram"
	"github.com/ThalyssonFerreira/Chat-telecom/internal/user"
	"github.com/ThalyssonFerreira/Chat-telecom/web"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / DB INIT
	// =========================================================================

	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		log.Fatal("PORT is not set")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelPing()

	if err := db.PingContext(pingCtx); err != nil {
		log.Fatalf("db ping failed: %v", err)
	}

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	// =========================================================================
	// REPOSITORIES
	// =========================================================================

	userRepo := user.NewInfra(db)
	convRepo := conversation.NewInfra(db)

	// =========================================================================
	// SERVICES
	// =========================================================================

	userService := user.NewService(userRepo)
	convService := conversation.NewService(convRepo)

	openAIClient := ai.NewOpenAIClient()
	aiService := ai.NewAiService(openAIClient, convService)

	// =========================================================================
	// TELEGRAM BOT
	// =========================================================================

	var botApp *telegram.BotApp
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token == "" {
		log.Printf("[telegram] TELEGRAM_BOT_TOKEN ausente; bot desativado")
	} else {
		botApp = telegram.NewBotApp(convService, userService, aiService)
		if err := botApp.InitBot(token); err != nil {
			log.Printf("[telegram] init fail: %v; bot desativado", err)
			botApp = nil
		} else {
			go botApp.Run()
		}
	}

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// HANDLERS
	userHandler := delivery.NewUserHandler(userService, zl)
	convHandler := delivery.NewConversationHandler(convService, userService, zl)
	chatHandler := delivery.NewChatHandler(convService, aiService, zl)

	// ROUTES
	delivery.RegisterRoutes(r, userHandler, convHandler, chatHandler)

	// página de chat embutida
	r.Handle("/*", web.Handler())

	// =========================================================================
	// START / SHUTDOWN
	// =========================================================================

	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		zl.Log(logger.LogEntry{
			Level:   "info",
			Message: "listening at :" + port,
			Service: "chat-telecom",
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if botApp != nil {
		botApp.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "stopped",
		Service: "chat-telecom",
	})
}

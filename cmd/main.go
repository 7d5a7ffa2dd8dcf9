package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"paidvine/backend/internal/api/handler"
	"paidvine/backend/internal/appeal"
	"paidvine/backend/internal/eventhub"
	"paidvine/backend/internal/models"
	"paidvine/backend/internal/rewards"
	"paidvine/backend/internal/storage"
	"paidvine/backend/internal/survey"
	"paidvine/backend/internal/telegram"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		dsn = "host=localhost user=user password=password dbname=paidvinedb port=5432 sslmode=disable"
	}

	// TranslateError turns postgres unique violations into
	// gorm.ErrDuplicatedKey, which the appeal store relies on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Survey{},
		&models.SurveyAttempt{},
		&models.AppealTicket{},
		&models.Redemption{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

func main() {
	log.Println("Starting Paidvine Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set!")
	}

	// 1. Dependencies and services
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)

	notifier := telegram.NewNotifierFromEnv()
	var appealNotifier appeal.Notifier
	if notifier != nil {
		appealNotifier = notifier
	}

	appeals := appeal.NewService(s, appealNotifier)
	surveys := survey.NewService(s)
	rw := rewards.NewService(s)

	// 2. Activity feed hub
	hub := eventhub.NewManager(s)
	go hub.Run()

	// 3. Gin routing
	r := gin.Default()
	h := handler.NewHandler(appeals, surveys, rw, s, hub, []byte(jwtSecret))

	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/ws", h.ServeWebSocket)

	api := r.Group("/api", h.AuthRequired())
	{
		api.GET("/surveys", h.GetAvailableSurveys)
		api.GET("/surveys/history", h.GetSurveyHistory)
		api.GET("/surveys/stats", h.GetSurveyStats)
		api.GET("/surveys/:id", h.GetSurveyByID)
		api.POST("/surveys/:id/submit", h.SubmitSurvey)
		api.POST("/surveys/:id/disqualify", h.RecordDisqualification)

		api.GET("/appeals/analyze/:attemptId", h.AnalyzeDisqualification)
		api.GET("/appeals/message/:attemptId", h.GenerateAppealMessage)
		api.POST("/appeals", h.SubmitAppeal)
		api.GET("/appeals", h.GetUserAppeals)
		api.GET("/appeals/:id", h.GetAppealByID)

		api.GET("/redemptions", h.GetRedemptions)
		api.POST("/redemptions", h.CreateRedemption)

		api.GET("/leaderboard", h.GetLeaderboard)
		api.GET("/dashboard/stats", h.GetDashboardStats)
		api.GET("/dashboard/activity", h.GetRecentActivity)
	}

	server := &http.Server{
		Addr:           ":8080",
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}

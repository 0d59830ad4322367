package main

import (
	"log"
	"os"

	"carriertalk/internal/db"
	"carriertalk/internal/middleware"
	"carriertalk/internal/router"
	"carriertalk/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading env vars from system")
	}

	conn, err := db.Init()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	mailer := services.NewMailer()
	rep := services.NewReputationService(conn)
	notify := services.NewNotificationService(conn, mailer)

	r := gin.Default()

	// Setup Sessions
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		secret = "secret_key_change_me"
	}
	store := cookie.NewStore([]byte(secret))
	r.Use(sessions.Sessions("carriertalk_session", store))

	r.Use(middleware.LoadUser(conn))

	router.RegisterRoutes(r, conn, rep, notify)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("CarrierTalk server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

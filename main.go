package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/ErkinN/go-crm/configs"
	"github.com/ErkinN/go-crm/internal/db"
	"github.com/ErkinN/go-crm/internal/handlers"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found or error loading .env file:", err)
	}
}

func main() {

	db.Init()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{getEnv("ALLOWED_ORIGIN", "http://localhost:3000")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ── session store (flash messages) ──
	store := cookie.NewStore([]byte(getEnv("SESSION_SECRET", "change-me")))
	r.Use(sessions.Sessions("crmsess", store))

	r.LoadHTMLGlob("views/*.html")
	r.Static("/uploads", config.LoadUploadConfig().Dir)

	// ── customer routes ──
	r.GET("/", handlers.Homepage)
	r.GET("/about", handlers.About)
	r.GET("/add", handlers.AddCustomerForm)
	r.POST("/add", handlers.CreateCustomer)
	r.GET("/view/:id", handlers.ViewCustomer)
	r.GET("/edit/:id", handlers.EditCustomerForm)
	r.PUT("/edit/:id", handlers.UpdateCustomer)
	r.DELETE("/edit/:id", handlers.DeleteCustomer)
	r.POST("/search", handlers.SearchCustomers)

	r.Run(":" + getEnv("PORT", "8080"))
}

func getEnv(key, fallback string) string {

	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return fallback
}

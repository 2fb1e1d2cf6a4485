package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/aaafasf/PETPOCKEBACKEND1/internal/config"
	dbpkg "github.com/aaafasf/PETPOCKEBACKEND1/internal/db"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/fieldcrypt"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/middleware"
	"github.com/aaafasf/PETPOCKEBACKEND1/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	mongoDB := dbpkg.NewMongo(cfg)

	codec, err := fieldcrypt.New(cfg.FieldSecret)
	if err != nil {
		log.Fatalf("field encryption misconfigured: %v", err)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, mongoDB, codec, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

package main

import (
	"log"
	"net/http"
	"time"

	"github.com/BruksfildServices01/stable-scheduler/internal/cache"
	"github.com/BruksfildServices01/stable-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/stable-scheduler/internal/db"
	"github.com/BruksfildServices01/stable-scheduler/internal/media"
	"github.com/BruksfildServices01/stable-scheduler/internal/routes"
	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	// Redis é opcional: sem REDIS_ADDR o cache vira no-op
	var dayCache *cache.Cache
	if cfg.RedisAddr != "" {
		var err error
		dayCache, err = cache.New(
			cfg.RedisAddr,
			cfg.RedisPassword,
			cfg.RedisDB,
			time.Duration(cfg.CacheTTLSecs)*time.Second,
		)
		if err != nil {
			log.Printf("redis unavailable, running without cache: %v", err)
			dayCache = nil
		}
	}

	// S3 também é opcional: sem bucket, upload de fotos responde 503
	var uploader *media.Uploader
	if cfg.MediaEnabled() {
		uploader = media.NewUploader(media.Config{
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			Endpoint:  cfg.S3Endpoint,
			BaseURL:   cfg.S3BaseURL,
		})
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, dayCache, uploader)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

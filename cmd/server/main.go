package main

import (
	"log"
	"os"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/wasla-app/wasla-api/internal/config"
	"github.com/wasla-app/wasla-api/internal/entity"
	"github.com/wasla-app/wasla-api/internal/server"
	"github.com/wasla-app/wasla-api/pkg/database"
	"github.com/wasla-app/wasla-api/pkg/storage"
)

func main() {
	cfg := config.Load()

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, live notifications disabled")
	}

	var imageStorage storage.ImageStorage
	if os.Getenv("CLOUDINARY_URL") != "" {
		var err error
		imageStorage, err = storage.NewCloudinaryStorage()
		if err != nil {
			log.Fatalf("failed to initialize cloudinary storage: %v", err)
		}
	} else {
		log.Println("CLOUDINARY_URL not set, profile image upload disabled")
	}

	srv := server.New(cfg, db, redisClient, imageStorage)
	if err := srv.Run(); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&entity.Post{}, "Tags", &entity.PostTag{}); err != nil {
		return err
	}
	return db.AutoMigrate(
		&entity.User{},
		&entity.AuthToken{},
		&entity.Post{},
		&entity.PostImage{},
		&entity.Comment{},
		&entity.Like{},
		&entity.Follow{},
		&entity.Tag{},
		&entity.PostTag{},
		&entity.Notification{},
	)
}

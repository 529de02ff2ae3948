package database

import (
	"fmt"
	"log"
	"os"

	"streaming-app/internal/domain/billing"
	"streaming-app/internal/domain/music"
	"streaming-app/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("❌ DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// core
		&users.User{},
		&billing.Transaction{},

		// catalog
		&music.Artist{},
		&music.Album{},
		&music.Song{},
		&music.Playlist{},
		&music.PlaylistSong{},
		&music.LikedSong{},
		&music.PlayHistory{},
	); err != nil {
		log.Fatal("❌ AutoMigrate error:", err)
	}

	fmt.Println("✅ Connected and migrated successfully")
}

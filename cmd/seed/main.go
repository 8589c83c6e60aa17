package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/charcreator/backend/config"
	"github.com/charcreator/backend/internal/domain/entity"
	"github.com/charcreator/backend/pkg/helpers"
)

// Seeds an admin user plus one starter catalog asset per type. Intended for
// local development and staging only.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "admin@charcreator.local"
	password := "admin12345"
	hash := helpers.NewPasswordHasher(cfg.PasswordSalt).Hash(password)

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, email_verified, admin_level)
		VALUES ($1, $2, TRUE, 1)
		ON CONFLICT (email) DO UPDATE SET admin_level = 1
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed admin user: %v", err)
	}
	fmt.Printf("seeded admin: id=%d email=%s password=%s\n", id, email, password)

	for _, t := range entity.AssetTypes {
		fileName := fmt.Sprintf("%s_default.png", t)
		var assetID int64
		err := db.QueryRow(`
			INSERT INTO assets (file_name, asset_type, colorable)
			VALUES ($1, $2, FALSE)
			ON CONFLICT (file_name) DO UPDATE SET modified_at = now()
			RETURNING id
		`, fileName, string(t)).Scan(&assetID)
		if err != nil {
			log.Fatalf("failed to seed asset %s: %v", fileName, err)
		}
	}
	fmt.Printf("seeded %d starter assets\n", len(entity.AssetTypes))
}

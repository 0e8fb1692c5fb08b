package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial data: a default admin user and
// a default category, created only when the respective tables are empty.
func Seed(db *sql.DB, adminEmail, adminPassword string) error {
	var users int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&users); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if users == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("seed bcrypt: %w", err)
		}

		_, err = db.Exec(`
			INSERT INTO users (username, email, password_hash, role)
			VALUES ($1, $2, $3, $4)
		`, "admin", adminEmail, string(hash), "admin")
		if err != nil {
			return fmt.Errorf("seed insert admin: %w", err)
		}
		slog.Info("database seeded with default admin user", "email", adminEmail)
	}

	var categories int
	if err := db.QueryRow("SELECT COUNT(*) FROM categories").Scan(&categories); err != nil {
		return fmt.Errorf("seed check categories: %w", err)
	}

	if categories == 0 {
		_, err := db.Exec(`
			INSERT INTO categories (name, slug, description)
			VALUES ($1, $2, $3)
		`, "General", "general", "Default category")
		if err != nil {
			return fmt.Errorf("seed insert category: %w", err)
		}
		slog.Info("database seeded with default category")
	}

	return nil
}

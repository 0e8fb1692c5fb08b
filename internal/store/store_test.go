// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"pressroom/internal/database"
	"pressroom/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "pressroom")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "pressroom")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// seedUser inserts a throwaway user and returns its id. Each test gets
// unique rows so runs don't collide on unique indexes.
func seedUser(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	suffix := uuid.NewString()[:8]
	var id uuid.UUID
	err := db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, 'x', 'admin')
		RETURNING id
	`, "tester-"+suffix, "tester-"+suffix+"@example.com").Scan(&id)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM users WHERE id = $1`, id) })
	return id
}

// seedCategory inserts a throwaway category and returns its id.
func seedCategory(t *testing.T, db *sql.DB) uuid.UUID {
	t.Helper()
	suffix := uuid.NewString()[:8]
	var id uuid.UUID
	err := db.QueryRow(`
		INSERT INTO categories (name, slug) VALUES ($1, $2) RETURNING id
	`, "Cat "+suffix, "cat-"+suffix).Scan(&id)
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM categories WHERE id = $1`, id) })
	return id
}

// seedPost creates a draft through the PostStore.
func seedPost(t *testing.T, db *sql.DB, authorID, categoryID uuid.UUID) *models.Post {
	t.Helper()
	posts := NewPostStore(db)
	suffix := uuid.NewString()[:8]
	p, err := posts.Create(context.Background(), &models.Post{
		Title:      "Post " + suffix,
		Slug:       "post-" + suffix,
		Content:    "Integration test body " + suffix,
		Status:     models.PostStatusDraft,
		CategoryID: categoryID,
		AuthorID:   authorID,
	})
	if err != nil {
		t.Fatalf("seed post: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM posts WHERE id = $1`, p.ID) })
	return p
}

func seedComment(t *testing.T, db *sql.DB, postID uuid.UUID) *models.Comment {
	t.Helper()
	comments := NewCommentStore(db)
	c, err := comments.Create(context.Background(), &models.Comment{
		PostID:     postID,
		Content:    fmt.Sprintf("comment %s", uuid.NewString()[:8]),
		Status:     models.CommentStatusPending,
		GuestName:  "Guest",
		GuestEmail: "guest@example.com",
	})
	if err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return c
}

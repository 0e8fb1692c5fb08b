// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL or Valkey are
// unavailable.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"pressroom/internal/access"
	"pressroom/internal/blog"
	"pressroom/internal/cache"
	"pressroom/internal/database"
	"pressroom/internal/middleware"
	"pressroom/internal/models"
	"pressroom/internal/seo"
	"pressroom/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "pressroom")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "pressroom")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "resp:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

// memBackend is an in-memory storage.Backend for image handler tests.
type memBackend struct {
	mu     sync.Mutex
	stored map[string][]byte
}

func newMemBackend() *memBackend {
	return &memBackend{stored: make(map[string][]byte)}
}

func (b *memBackend) Upload(_ context.Context, key, _ string, body io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	b.stored[key] = data
	b.mu.Unlock()
	return b.URLFor(key), nil
}

func (b *memBackend) Delete(_ context.Context, key string) error {
	b.mu.Lock()
	delete(b.stored, key)
	b.mu.Unlock()
	return nil
}

func (b *memBackend) URLFor(key string) string {
	return "https://cdn.test/" + key
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB        *sql.DB
	Valkey    *redis.Client
	RespCache *cache.ResponseCache
	Users     *store.UserStore
	JWT       *middleware.Auth

	PostSvc     *blog.PostService
	CommentSvc  *blog.CommentService
	CategorySvc *blog.CategoryService
	TagSvc      *blog.TagService
	StatsSvc    *blog.StatsService
	ImageSvc    *blog.ImageService

	Auth       *Auth
	Posts      *Posts
	Comments   *Comments
	Categories *Categories
	Tags       *Tags
	Dashboard  *Dashboard
	SEO        *SEO
	Images     *Images
}

// newTestEnv creates a complete test environment wired like main.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	respCache := cache.NewResponseCache(vk, 1*time.Minute)

	posts := store.NewPostStore(db)
	comments := store.NewCommentStore(db)
	categories := store.NewCategoryStore(db)
	tags := store.NewTagStore(db)
	users := store.NewUserStore(db)
	images := store.NewImageStore(db)

	postSvc := blog.NewPostService(posts, categories, tags)
	commentSvc := blog.NewCommentService(comments, posts)
	categorySvc := blog.NewCategoryService(categories, posts)
	tagSvc := blog.NewTagService(tags)
	statsSvc := blog.NewStatsService(posts, comments, users, categories, tags)
	imageSvc := blog.NewImageService(images, newMemBackend())

	jwtAuth := middleware.NewAuth("handler-test-secret")
	site := seo.Site{BaseURL: "https://blog.test", Name: "Pressroom Test", LogoURL: "https://blog.test/logo.png"}

	return &testEnv{
		DB:          db,
		Valkey:      vk,
		RespCache:   respCache,
		Users:       users,
		JWT:         jwtAuth,
		PostSvc:     postSvc,
		CommentSvc:  commentSvc,
		CategorySvc: categorySvc,
		TagSvc:      tagSvc,
		StatsSvc:    statsSvc,
		ImageSvc:    imageSvc,
		Auth:        NewAuth(users, jwtAuth),
		Posts:       NewPosts(postSvc, categorySvc, tagSvc, respCache),
		Comments:    NewComments(commentSvc, postSvc),
		Categories:  NewCategories(categorySvc, respCache),
		Tags:        NewTags(tagSvc),
		Dashboard:   NewDashboard(statsSvc),
		SEO:         NewSEO(postSvc, respCache, site),
		Images:      NewImages(imageSvc),
	}
}

// ctxWithActor adds an actor to a request context the way Authenticate
// does.
func ctxWithActor(ctx context.Context, actor access.Actor) context.Context {
	return middleware.WithActor(ctx, actor)
}

// withChiURLParam adds a chi URL parameter to a request.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// seedAdmin inserts a throwaway admin user and returns its actor plus the
// plaintext password used for login tests.
func seedAdmin(t *testing.T, db *sql.DB) (access.Actor, string, string) {
	t.Helper()

	suffix := uuid.NewString()[:8]
	email := "admin-" + suffix + "@example.com"
	password := "pw-" + suffix

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	var id uuid.UUID
	err = db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin')
		RETURNING id
	`, "admin-"+suffix, email, string(hash)).Scan(&id)
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM users WHERE id = $1`, id) })

	return access.Admin(id), email, password
}

// seedRegularUser inserts a throwaway non-admin user.
func seedRegularUser(t *testing.T, db *sql.DB) access.Actor {
	t.Helper()

	suffix := uuid.NewString()[:8]
	var id uuid.UUID
	err := db.QueryRow(`
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, 'x', 'user')
		RETURNING id
	`, "user-"+suffix, "user-"+suffix+"@example.com").Scan(&id)
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	t.Cleanup(func() { db.Exec(`DELETE FROM users WHERE id = $1`, id) })

	return access.User(id)
}

// seedCategory inserts a throwaway category.
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

// seedVisiblePost creates and publishes a post through the service layer.
func seedVisiblePost(t *testing.T, env *testEnv, admin access.Actor, categoryID uuid.UUID) *models.Post {
	t.Helper()

	ctx := context.Background()
	suffix := uuid.NewString()[:8]
	post, err := env.PostSvc.Create(ctx, admin, blog.PostInput{
		Title:      "Handler Post " + suffix,
		Content:    "Handler test body " + suffix,
		CategoryID: categoryID,
	})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec(`DELETE FROM posts WHERE id = $1`, post.ID) })

	if err := env.PostSvc.Publish(ctx, admin, post.ID); err != nil {
		t.Fatalf("publish post: %v", err)
	}

	published, err := env.PostSvc.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("reload post: %v", err)
	}
	return published
}

// jsonRequest builds a request with a JSON body.
func jsonRequest(t *testing.T, method, target string, v any) *http.Request {
	t.Helper()

	body, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// decodeBody unmarshals a recorded JSON response.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// uniqueTitle returns a title that will not collide across test runs.
func uniqueTitle(prefix string) string {
	return fmt.Sprintf("%s %s", prefix, uuid.NewString()[:8])
}

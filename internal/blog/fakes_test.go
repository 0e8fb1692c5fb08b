// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/models"
)

// In-memory repository fakes. They honor the same contract as the store
// package: lookups return (nil, nil) when missing, writes affecting zero
// rows return ErrNotFound, and slug-unique violations return ErrSlugTaken.

type fakePostRepo struct {
	posts map[uuid.UUID]*models.Post
	order []uuid.UUID
	tags  map[uuid.UUID][]uuid.UUID
	now   func() time.Time
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		posts: make(map[uuid.UUID]*models.Post),
		tags:  make(map[uuid.UUID][]uuid.UUID),
		now:   time.Now,
	}
}

func (r *fakePostRepo) slugTaken(slug string, except uuid.UUID) bool {
	for id, p := range r.posts {
		if id != except && p.Slug == slug {
			return true
		}
	}
	return false
}

func (r *fakePostRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) FindBySlug(_ context.Context, slug string) (*models.Post, error) {
	for _, id := range r.order {
		if p := r.posts[id]; p != nil && p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePostRepo) FindVisibleBySlug(ctx context.Context, slug string) (*models.Post, error) {
	p, err := r.FindBySlug(ctx, slug)
	if err != nil || p == nil {
		return p, err
	}
	if !p.IsVisible(r.now()) {
		return nil, nil
	}
	return p, nil
}

func (r *fakePostRepo) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	if r.slugTaken(p.Slug, uuid.Nil) {
		return nil, ErrSlugTaken
	}
	cp := *p
	cp.ID = uuid.New()
	cp.CreatedAt = r.now()
	cp.UpdatedAt = cp.CreatedAt
	r.posts[cp.ID] = &cp
	r.order = append(r.order, cp.ID)
	out := cp
	return &out, nil
}

func (r *fakePostRepo) Update(_ context.Context, p *models.Post) error {
	existing, ok := r.posts[p.ID]
	if !ok {
		return ErrNotFound
	}
	if r.slugTaken(p.Slug, p.ID) {
		return ErrSlugTaken
	}
	cp := *p
	cp.CreatedAt = existing.CreatedAt
	cp.UpdatedAt = r.now()
	r.posts[p.ID] = &cp
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.posts[id]; !ok {
		return ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *fakePostRepo) Publish(_ context.Context, id uuid.UUID) error {
	p, ok := r.posts[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = models.PostStatusPublished
	if p.PublishedAt == nil {
		at := r.now()
		p.PublishedAt = &at
	}
	return nil
}

func (r *fakePostRepo) SetStatus(_ context.Context, id uuid.UUID, status models.PostStatus) error {
	p, ok := r.posts[id]
	if !ok {
		return ErrNotFound
	}
	p.Status = status
	return nil
}

func (r *fakePostRepo) IncrementViewCount(_ context.Context, id uuid.UUID) error {
	p, ok := r.posts[id]
	if !ok {
		return ErrNotFound
	}
	p.ViewCount++
	return nil
}

func (r *fakePostRepo) SetTags(_ context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if _, ok := r.posts[postID]; !ok {
		return ErrNotFound
	}
	r.tags[postID] = append([]uuid.UUID(nil), tagIDs...)
	return nil
}

func (r *fakePostRepo) list(filter func(*models.Post) bool) []models.Post {
	var out []models.Post
	for _, id := range r.order {
		p, ok := r.posts[id]
		if !ok {
			continue
		}
		if filter == nil || filter(p) {
			out = append(out, *p)
		}
	}
	return out
}

func (r *fakePostRepo) ListAll(context.Context) ([]models.Post, error) {
	return r.list(nil), nil
}

func (r *fakePostRepo) ListVisible(context.Context) ([]models.Post, error) {
	now := r.now()
	return r.list(func(p *models.Post) bool { return p.IsVisible(now) }), nil
}

func (r *fakePostRepo) ListFeatured(context.Context) ([]models.Post, error) {
	now := r.now()
	return r.list(func(p *models.Post) bool { return p.IsVisible(now) && p.IsFeatured }), nil
}

func (r *fakePostRepo) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]models.Post, error) {
	now := r.now()
	return r.list(func(p *models.Post) bool { return p.IsVisible(now) && p.CategoryID == categoryID }), nil
}

func (r *fakePostRepo) ListByTag(_ context.Context, tagID uuid.UUID) ([]models.Post, error) {
	now := r.now()
	return r.list(func(p *models.Post) bool {
		if !p.IsVisible(now) {
			return false
		}
		for _, id := range r.tags[p.ID] {
			if id == tagID {
				return true
			}
		}
		return false
	}), nil
}

func (r *fakePostRepo) Search(_ context.Context, term string) ([]models.Post, error) {
	now := r.now()
	term = strings.ToLower(term)
	return r.list(func(p *models.Post) bool {
		if !p.IsVisible(now) {
			return false
		}
		return strings.Contains(strings.ToLower(p.Title), term) ||
			strings.Contains(strings.ToLower(p.Content), term) ||
			strings.Contains(strings.ToLower(p.Excerpt), term)
	}), nil
}

func (r *fakePostRepo) Recent(_ context.Context, limit int) ([]models.Post, error) {
	now := r.now()
	out := r.list(func(p *models.Post) bool { return p.IsVisible(now) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].PublishedAt.After(*out[j].PublishedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) Popular(_ context.Context, limit int) ([]models.Post, error) {
	now := r.now()
	out := r.list(func(p *models.Post) bool { return p.IsVisible(now) })
	sort.SliceStable(out, func(i, j int) bool { return out[i].ViewCount > out[j].ViewCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePostRepo) CountAll(context.Context) (int, error) {
	return len(r.posts), nil
}

func (r *fakePostRepo) CountByStatus(_ context.Context, status models.PostStatus) (int, error) {
	n := 0
	for _, p := range r.posts {
		if p.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakePostRepo) CountByCategory(_ context.Context, categoryID uuid.UUID) (int, error) {
	n := 0
	for _, p := range r.posts {
		if p.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (r *fakePostRepo) CountCreatedSince(_ context.Context, cutoff time.Time) (int, error) {
	n := 0
	for _, p := range r.posts {
		if !p.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

func (r *fakePostRepo) PublishedCountByCategory(context.Context) ([]CategoryCount, error) {
	counts := make(map[string]int)
	for _, p := range r.posts {
		if p.IsPublished() {
			counts[p.CategoryName]++
		}
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{CategoryName: name, PostCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryName < out[j].CategoryName })
	return out, nil
}

func (r *fakePostRepo) PublishedCountByMonth(context.Context) ([]MonthCount, error) {
	counts := make(map[string]int)
	for _, p := range r.posts {
		if p.IsPublished() && p.PublishedAt != nil {
			counts[p.PublishedAt.UTC().Format("2006-01")]++
		}
	}
	out := make([]MonthCount, 0, len(counts))
	for month, n := range counts {
		out = append(out, MonthCount{Month: month, PostCount: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

type fakeCommentRepo struct {
	comments map[uuid.UUID]*models.Comment
	order    []uuid.UUID
	now      func() time.Time
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{
		comments: make(map[uuid.UUID]*models.Comment),
		now:      time.Now,
	}
}

func (r *fakeCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCommentRepo) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	cp := *c
	cp.ID = uuid.New()
	cp.CreatedAt = r.now()
	r.comments[cp.ID] = &cp
	r.order = append(r.order, cp.ID)
	out := cp
	return &out, nil
}

func (r *fakeCommentRepo) UpdateContent(_ context.Context, id uuid.UUID, content string) error {
	c, ok := r.comments[id]
	if !ok {
		return ErrNotFound
	}
	c.Content = content
	at := r.now()
	c.UpdatedAt = &at
	return nil
}

func (r *fakeCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.comments[id]; !ok {
		return ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *fakeCommentRepo) SetStatus(_ context.Context, id uuid.UUID, status models.CommentStatus) error {
	c, ok := r.comments[id]
	if !ok {
		return ErrNotFound
	}
	c.Status = status
	return nil
}

func (r *fakeCommentRepo) BulkSetStatus(_ context.Context, ids []uuid.UUID, status models.CommentStatus) (int, error) {
	n := 0
	for _, id := range ids {
		if c, ok := r.comments[id]; ok {
			c.Status = status
			n++
		}
	}
	return n, nil
}

func (r *fakeCommentRepo) list(filter func(*models.Comment) bool) []models.Comment {
	var out []models.Comment
	for _, id := range r.order {
		c, ok := r.comments[id]
		if !ok {
			continue
		}
		if filter == nil || filter(c) {
			out = append(out, *c)
		}
	}
	return out
}

func (r *fakeCommentRepo) ListApprovedByPost(_ context.Context, postID uuid.UUID) ([]models.Comment, error) {
	return r.list(func(c *models.Comment) bool {
		return c.PostID == postID && c.Status == models.CommentStatusApproved
	}), nil
}

func (r *fakeCommentRepo) ListPending(context.Context) ([]models.Comment, error) {
	return r.list(func(c *models.Comment) bool { return c.Status == models.CommentStatusPending }), nil
}

func (r *fakeCommentRepo) ListAll(context.Context) ([]models.Comment, error) {
	return r.list(nil), nil
}

func (r *fakeCommentRepo) Recent(_ context.Context, limit int) ([]models.Comment, error) {
	out := r.list(nil)
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (r *fakeCommentRepo) CountAll(context.Context) (int, error) {
	return len(r.comments), nil
}

func (r *fakeCommentRepo) CountByStatus(_ context.Context, status models.CommentStatus) (int, error) {
	n := 0
	for _, c := range r.comments {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *fakeCommentRepo) CountCreatedSince(_ context.Context, cutoff time.Time) (int, error) {
	n := 0
	for _, c := range r.comments {
		if !c.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	categories map[uuid.UUID]*models.Category
	order      []uuid.UUID
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{categories: make(map[uuid.UUID]*models.Category)}
}

func (r *fakeCategoryRepo) slugTaken(slug string, except uuid.UUID) bool {
	for id, c := range r.categories {
		if id != except && c.Slug == slug {
			return true
		}
	}
	return false
}

func (r *fakeCategoryRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Category, error) {
	c, ok := r.categories[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeCategoryRepo) Create(_ context.Context, c *models.Category) (*models.Category, error) {
	if r.slugTaken(c.Slug, uuid.Nil) {
		return nil, ErrSlugTaken
	}
	cp := *c
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	r.categories[cp.ID] = &cp
	r.order = append(r.order, cp.ID)
	out := cp
	return &out, nil
}

func (r *fakeCategoryRepo) Update(_ context.Context, c *models.Category) error {
	if _, ok := r.categories[c.ID]; !ok {
		return ErrNotFound
	}
	if r.slugTaken(c.Slug, c.ID) {
		return ErrSlugTaken
	}
	cp := *c
	r.categories[c.ID] = &cp
	return nil
}

func (r *fakeCategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.categories[id]; !ok {
		return ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *fakeCategoryRepo) List(context.Context) ([]models.Category, error) {
	var out []models.Category
	for _, id := range r.order {
		if c, ok := r.categories[id]; ok {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) Count(context.Context) (int, error) {
	return len(r.categories), nil
}

type fakeTagRepo struct {
	tags  map[uuid.UUID]*models.Tag
	order []uuid.UUID
}

func newFakeTagRepo() *fakeTagRepo {
	return &fakeTagRepo{tags: make(map[uuid.UUID]*models.Tag)}
}

func (r *fakeTagRepo) slugTaken(slug string, except uuid.UUID) bool {
	for id, t := range r.tags {
		if id != except && t.Slug == slug {
			return true
		}
	}
	return false
}

func (r *fakeTagRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Tag, error) {
	t, ok := r.tags[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTagRepo) FindBySlug(_ context.Context, slug string) (*models.Tag, error) {
	for _, t := range r.tags {
		if t.Slug == slug {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTagRepo) FindByName(_ context.Context, name string) (*models.Tag, error) {
	for _, t := range r.tags {
		if strings.EqualFold(t.Name, name) {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTagRepo) Create(_ context.Context, t *models.Tag) (*models.Tag, error) {
	if r.slugTaken(t.Slug, uuid.Nil) {
		return nil, ErrSlugTaken
	}
	cp := *t
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	r.tags[cp.ID] = &cp
	r.order = append(r.order, cp.ID)
	out := cp
	return &out, nil
}

func (r *fakeTagRepo) Update(_ context.Context, t *models.Tag) error {
	if _, ok := r.tags[t.ID]; !ok {
		return ErrNotFound
	}
	if r.slugTaken(t.Slug, t.ID) {
		return ErrSlugTaken
	}
	cp := *t
	r.tags[t.ID] = &cp
	return nil
}

func (r *fakeTagRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.tags[id]; !ok {
		return ErrNotFound
	}
	delete(r.tags, id)
	return nil
}

func (r *fakeTagRepo) List(context.Context) ([]models.Tag, error) {
	var out []models.Tag
	for _, id := range r.order {
		if t, ok := r.tags[id]; ok {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTagRepo) Popular(ctx context.Context, limit int) ([]models.Tag, error) {
	out, _ := r.List(ctx)
	sort.SliceStable(out, func(i, j int) bool { return out[i].PostCount > out[j].PostCount })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeTagRepo) Count(context.Context) (int, error) {
	return len(r.tags), nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.LastLoginAt = &at
	return nil
}

func (r *fakeUserRepo) Count(context.Context) (int, error) {
	return len(r.users), nil
}

func (r *fakeUserRepo) CountCreatedSince(_ context.Context, cutoff time.Time) (int, error) {
	n := 0
	for _, u := range r.users {
		if !u.CreatedAt.Before(cutoff) {
			n++
		}
	}
	return n, nil
}

type fakeImageRepo struct {
	images    map[uuid.UUID]*models.Image
	order     []uuid.UUID
	createErr error
}

func newFakeImageRepo() *fakeImageRepo {
	return &fakeImageRepo{images: make(map[uuid.UUID]*models.Image)}
}

func (r *fakeImageRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Image, error) {
	img, ok := r.images[id]
	if !ok {
		return nil, nil
	}
	cp := *img
	return &cp, nil
}

func (r *fakeImageRepo) Create(_ context.Context, img *models.Image) (*models.Image, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	cp := *img
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	r.images[cp.ID] = &cp
	r.order = append(r.order, cp.ID)
	out := cp
	return &out, nil
}

func (r *fakeImageRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.images[id]; !ok {
		return ErrNotFound
	}
	delete(r.images, id)
	return nil
}

func (r *fakeImageRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Image, error) {
	var out []models.Image
	for _, id := range r.order {
		if img, ok := r.images[id]; ok && img.UploadedBy == userID {
			out = append(out, *img)
		}
	}
	return out, nil
}

// fakeBackend records uploads and deletes in memory.
type fakeBackend struct {
	stored  map[string]int64
	deleted []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{stored: make(map[string]int64)}
}

func (b *fakeBackend) Upload(_ context.Context, key, _ string, body io.Reader, size int64) (string, error) {
	if _, err := io.Copy(io.Discard, body); err != nil {
		return "", err
	}
	b.stored[key] = size
	return b.URLFor(key), nil
}

func (b *fakeBackend) Delete(_ context.Context, key string) error {
	delete(b.stored, key)
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *fakeBackend) URLFor(key string) string {
	return "https://cdn.test/" + key
}

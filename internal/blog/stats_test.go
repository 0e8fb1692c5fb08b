// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"pressroom/internal/models"
)

func TestStatsOverview(t *testing.T) {
	posts := newFakePostRepo()
	comments := newFakeCommentRepo()
	users := newFakeUserRepo()
	categories := newFakeCategoryRepo()
	tags := newFakeTagRepo()
	svc := NewStatsService(posts, comments, users, categories, tags)
	ctx := context.Background()

	cat, _ := categories.Create(ctx, &models.Category{Name: "General", Slug: "general"})
	authorID := uuid.New()
	users.users[authorID] = &models.User{ID: authorID, Username: "author", Role: models.RoleAdmin}

	seedPost := func(slug string, status models.PostStatus) {
		p, err := posts.Create(ctx, &models.Post{
			Title:      slug,
			Slug:       slug,
			Content:    "body",
			Status:     status,
			CategoryID: cat.ID,
			AuthorID:   authorID,
		})
		if err != nil {
			t.Fatalf("seed post %s: %v", slug, err)
		}
		if status == models.PostStatusPublished {
			if err := posts.Publish(ctx, p.ID); err != nil {
				t.Fatalf("publish %s: %v", slug, err)
			}
		}
	}
	seedPost("p1", models.PostStatusPublished)
	seedPost("p2", models.PostStatusPublished)
	seedPost("d1", models.PostStatusDraft)
	seedPost("a1", models.PostStatusArchived)

	seedComment := func(status models.CommentStatus) {
		uid := uuid.New()
		c, err := comments.Create(ctx, &models.Comment{PostID: uuid.New(), Content: "c", Status: models.CommentStatusPending, UserID: &uid})
		if err != nil {
			t.Fatalf("seed comment: %v", err)
		}
		if status != models.CommentStatusPending {
			if err := comments.SetStatus(ctx, c.ID, status); err != nil {
				t.Fatalf("set status: %v", err)
			}
		}
	}
	seedComment(models.CommentStatusPending)
	seedComment(models.CommentStatusApproved)
	seedComment(models.CommentStatusApproved)
	seedComment(models.CommentStatusRejected)

	tags.Create(ctx, &models.Tag{Name: "go", Slug: "go"})

	stats, err := svc.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}

	want := DashboardStats{
		TotalPosts:       4,
		PublishedPosts:   2,
		DraftPosts:       1,
		TotalComments:    4,
		PendingComments:  1,
		ApprovedComments: 2,
		TotalUsers:       1,
		TotalCategories:  1,
		TotalTags:        1,
	}
	if *stats != want {
		t.Errorf("overview = %+v, want %+v", *stats, want)
	}
}

func TestStatsAnalyticsCutoff(t *testing.T) {
	posts := newFakePostRepo()
	comments := newFakeCommentRepo()
	users := newFakeUserRepo()
	svc := NewStatsService(posts, comments, users, newFakeCategoryRepo(), newFakeTagRepo())
	ctx := context.Background()

	now := time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	seedAt := func(at time.Time, slug string) {
		posts.now = func() time.Time { return at }
		if _, err := posts.Create(ctx, &models.Post{Title: slug, Slug: slug, Content: "b", Status: models.PostStatusDraft, CategoryID: uuid.New(), AuthorID: uuid.New()}); err != nil {
			t.Fatalf("seed %s: %v", slug, err)
		}
	}
	seedAt(now.AddDate(0, 0, -31), "too-old")
	seedAt(now.AddDate(0, 0, -30), "on-the-boundary")
	seedAt(now.AddDate(0, 0, -1), "recent")

	a, err := svc.Analytics(ctx, 30)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if a.Days != 30 {
		t.Errorf("days = %d", a.Days)
	}
	// The cutoff is inclusive: the post created exactly 30 days ago counts.
	if a.PostsCreated != 2 {
		t.Errorf("posts created = %d, want 2", a.PostsCreated)
	}
}

func TestStatsAnalyticsDefaultPeriod(t *testing.T) {
	svc := NewStatsService(newFakePostRepo(), newFakeCommentRepo(), newFakeUserRepo(), newFakeCategoryRepo(), newFakeTagRepo())

	a, err := svc.Analytics(context.Background(), 0)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if a.Days != 30 {
		t.Errorf("days = %d, want default 30", a.Days)
	}
}

func TestStatsMonthBucketsDescending(t *testing.T) {
	posts := newFakePostRepo()
	svc := NewStatsService(posts, newFakeCommentRepo(), newFakeUserRepo(), newFakeCategoryRepo(), newFakeTagRepo())
	ctx := context.Background()

	publishAt := func(at time.Time, slug string) {
		p, err := posts.Create(ctx, &models.Post{Title: slug, Slug: slug, Content: "b", Status: models.PostStatusDraft, CategoryID: uuid.New(), AuthorID: uuid.New()})
		if err != nil {
			t.Fatalf("seed %s: %v", slug, err)
		}
		posts.now = func() time.Time { return at }
		if err := posts.Publish(ctx, p.ID); err != nil {
			t.Fatalf("publish %s: %v", slug, err)
		}
	}
	publishAt(time.Date(2026, time.January, 3, 0, 0, 0, 0, time.UTC), "jan-a")
	publishAt(time.Date(2026, time.March, 7, 0, 0, 0, 0, time.UTC), "mar-a")
	publishAt(time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), "jan-b")

	a, err := svc.Analytics(ctx, 30)
	if err != nil {
		t.Fatalf("analytics: %v", err)
	}
	if len(a.PostsByMonth) != 2 {
		t.Fatalf("months = %d, want 2", len(a.PostsByMonth))
	}
	if a.PostsByMonth[0].Month != "2026-03" || a.PostsByMonth[0].PostCount != 1 {
		t.Errorf("first bucket = %+v, want newest month first", a.PostsByMonth[0])
	}
	if a.PostsByMonth[1].Month != "2026-01" || a.PostsByMonth[1].PostCount != 2 {
		t.Errorf("second bucket = %+v", a.PostsByMonth[1])
	}
}

func TestStatsRecentDefaults(t *testing.T) {
	posts := newFakePostRepo()
	svc := NewStatsService(posts, newFakeCommentRepo(), newFakeUserRepo(), newFakeCategoryRepo(), newFakeTagRepo())

	if _, err := svc.RecentPosts(context.Background(), -1); err != nil {
		t.Fatalf("recent posts: %v", err)
	}
	if _, err := svc.PopularPosts(context.Background(), 0); err != nil {
		t.Fatalf("popular posts: %v", err)
	}
	if _, err := svc.RecentComments(context.Background(), 0); err != nil {
		t.Fatalf("recent comments: %v", err)
	}
}

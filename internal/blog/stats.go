// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"fmt"
	"time"

	"pressroom/internal/models"
)

// StatsService is the read-only aggregation layer for the operational
// dashboard. Nothing here mutates state and nothing is cached: every call
// recomputes from the stores.
type StatsService struct {
	posts      PostRepo
	comments   CommentRepo
	users      UserRepo
	categories CategoryRepo
	tags       TagRepo

	now func() time.Time
}

// NewStatsService creates a StatsService over the given repositories.
func NewStatsService(posts PostRepo, comments CommentRepo, users UserRepo, categories CategoryRepo, tags TagRepo) *StatsService {
	return &StatsService{
		posts:      posts,
		comments:   comments,
		users:      users,
		categories: categories,
		tags:       tags,
		now:        time.Now,
	}
}

// DashboardStats is the headline count block for the admin dashboard.
type DashboardStats struct {
	TotalPosts       int `json:"total_posts"`
	PublishedPosts   int `json:"published_posts"`
	DraftPosts       int `json:"draft_posts"`
	TotalComments    int `json:"total_comments"`
	PendingComments  int `json:"pending_comments"`
	ApprovedComments int `json:"approved_comments"`
	TotalUsers       int `json:"total_users"`
	TotalCategories  int `json:"total_categories"`
	TotalTags        int `json:"total_tags"`
}

// Analytics is the period-bucketed activity report.
type Analytics struct {
	Days            int             `json:"days"`
	PostsCreated    int             `json:"posts_created"`
	CommentsCreated int             `json:"comments_created"`
	UsersRegistered int             `json:"users_registered"`
	PostsByCategory []CategoryCount `json:"posts_by_category"`
	PostsByMonth    []MonthCount    `json:"posts_by_month"`
}

// Overview computes the dashboard counters.
func (s *StatsService) Overview(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	var err error

	if stats.TotalPosts, err = s.posts.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	if stats.PublishedPosts, err = s.posts.CountByStatus(ctx, models.PostStatusPublished); err != nil {
		return nil, fmt.Errorf("count published posts: %w", err)
	}
	if stats.DraftPosts, err = s.posts.CountByStatus(ctx, models.PostStatusDraft); err != nil {
		return nil, fmt.Errorf("count draft posts: %w", err)
	}
	if stats.TotalComments, err = s.comments.CountAll(ctx); err != nil {
		return nil, fmt.Errorf("count comments: %w", err)
	}
	if stats.PendingComments, err = s.comments.CountByStatus(ctx, models.CommentStatusPending); err != nil {
		return nil, fmt.Errorf("count pending comments: %w", err)
	}
	if stats.ApprovedComments, err = s.comments.CountByStatus(ctx, models.CommentStatusApproved); err != nil {
		return nil, fmt.Errorf("count approved comments: %w", err)
	}
	if stats.TotalUsers, err = s.users.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalCategories, err = s.categories.Count(ctx); err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	if stats.TotalTags, err = s.tags.Count(ctx); err != nil {
		return nil, fmt.Errorf("count tags: %w", err)
	}
	return stats, nil
}

// Analytics computes the last-N-days activity buckets (inclusive cutoff:
// created_at >= now - N days) plus the published-post groupings by
// category name and by year-month, months sorted descending.
func (s *StatsService) Analytics(ctx context.Context, days int) (*Analytics, error) {
	if days <= 0 {
		days = 30
	}
	cutoff := s.now().UTC().AddDate(0, 0, -days)

	a := &Analytics{Days: days}
	var err error

	if a.PostsCreated, err = s.posts.CountCreatedSince(ctx, cutoff); err != nil {
		return nil, fmt.Errorf("count recent posts: %w", err)
	}
	if a.CommentsCreated, err = s.comments.CountCreatedSince(ctx, cutoff); err != nil {
		return nil, fmt.Errorf("count recent comments: %w", err)
	}
	if a.UsersRegistered, err = s.users.CountCreatedSince(ctx, cutoff); err != nil {
		return nil, fmt.Errorf("count recent registrations: %w", err)
	}
	if a.PostsByCategory, err = s.posts.PublishedCountByCategory(ctx); err != nil {
		return nil, fmt.Errorf("group posts by category: %w", err)
	}
	if a.PostsByMonth, err = s.posts.PublishedCountByMonth(ctx); err != nil {
		return nil, fmt.Errorf("group posts by month: %w", err)
	}
	return a, nil
}

// RecentPosts returns the newest published posts for the dashboard.
func (s *StatsService) RecentPosts(ctx context.Context, count int) ([]models.Post, error) {
	if count <= 0 {
		count = 5
	}
	return s.posts.Recent(ctx, count)
}

// PopularPosts returns published posts ordered by view count.
func (s *StatsService) PopularPosts(ctx context.Context, count int) ([]models.Post, error) {
	if count <= 0 {
		count = 5
	}
	return s.posts.Popular(ctx, count)
}

// RecentComments returns the newest comments in any state.
func (s *StatsService) RecentComments(ctx context.Context, count int) ([]models.Comment, error) {
	if count <= 0 {
		count = 5
	}
	return s.comments.Recent(ctx, count)
}

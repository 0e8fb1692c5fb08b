// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// CommentStatus represents the moderation state of a comment.
// Moderation is reversible: approved and rejected comments can be toggled
// back and forth by an admin, there is no terminal state.
type CommentStatus string

const (
	CommentStatusPending  CommentStatus = "pending"
	CommentStatusApproved CommentStatus = "approved"
	CommentStatusRejected CommentStatus = "rejected"
)

// Comment represents a reader comment on a post. The author is either a
// registered user (UserID set) or a guest (GuestName and GuestEmail set),
// never both and never neither.
type Comment struct {
	ID         uuid.UUID     `json:"id"`
	PostID     uuid.UUID     `json:"post_id"`
	Content    string        `json:"content"`
	Status     CommentStatus `json:"status"`
	UserID     *uuid.UUID    `json:"user_id,omitempty"`
	GuestName  string        `json:"guest_name,omitempty"`
	GuestEmail string        `json:"guest_email,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  *time.Time    `json:"updated_at,omitempty"`

	// Virtual field populated by store methods for registered authors.
	AuthorName string `json:"author_name,omitempty"`
}

// IsGuest returns true when the comment was left anonymously. Guest
// comments have no owner and can only be edited or deleted by an admin.
func (c *Comment) IsGuest() bool {
	return c.UserID == nil
}

// IsApproved returns true if the comment is publicly visible.
func (c *Comment) IsApproved() bool {
	return c.Status == CommentStatusApproved
}

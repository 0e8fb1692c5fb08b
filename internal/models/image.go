// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Image represents an uploaded media file tracked in the database. The
// binary itself lives in the configured storage backend; StorageKey is the
// backend identifier used for deletion.
type Image struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	AltText     string    `json:"alt_text"`
	StorageKey  string    `json:"-"`
	UploadedBy  uuid.UUID `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"pressroom/internal/models"
)

// ImageStore handles uploaded-image metadata. The binaries themselves
// live in the configured storage backend.
type ImageStore struct {
	db *sql.DB
}

// NewImageStore creates a new ImageStore with the given database connection.
func NewImageStore(db *sql.DB) *ImageStore {
	return &ImageStore{db: db}
}

const imageColumns = `
	SELECT id, file_name, url, content_type, file_size, alt_text,
	       storage_key, uploaded_by, created_at
	FROM images`

func scanImage(row interface{ Scan(...any) error }) (*models.Image, error) {
	img := &models.Image{}
	err := row.Scan(
		&img.ID, &img.FileName, &img.URL, &img.ContentType, &img.FileSize,
		&img.AltText, &img.StorageKey, &img.UploadedBy, &img.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// FindByID retrieves an image record by its UUID. Returns nil if not found.
func (s *ImageStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Image, error) {
	img, err := scanImage(s.db.QueryRowContext(ctx, imageColumns+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find image: %w", err)
	}
	return img, nil
}

// Create inserts a new image record and returns it with generated fields.
func (s *ImageStore) Create(ctx context.Context, img *models.Image) (*models.Image, error) {
	result := *img
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO images (file_name, url, content_type, file_size, alt_text, storage_key, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, img.FileName, img.URL, img.ContentType, img.FileSize, img.AltText, img.StorageKey, img.UploadedBy,
	).Scan(&result.ID, &result.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create image: %w", err)
	}
	return &result, nil
}

// Delete removes an image record.
func (s *ImageStore) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	return requireRow(res, "delete image")
}

// ListByUser returns the images a user uploaded, newest first.
func (s *ImageStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Image, error) {
	rows, err := s.db.QueryContext(ctx, imageColumns+` WHERE uploaded_by = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var images []models.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, *img)
	}
	return images, rows.Err()
}

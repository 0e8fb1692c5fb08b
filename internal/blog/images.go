// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"pressroom/internal/access"
	"pressroom/internal/models"
	"pressroom/internal/storage"
)

const maxImageSize = 10 << 20 // 10 MiB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
	"image/avif": true,
}

// ImageService handles media uploads: the binary goes to the storage
// backend, the metadata row to the image repo.
type ImageService struct {
	images  ImageRepo
	backend storage.Backend
}

// NewImageService creates an ImageService over the given repo and backend.
func NewImageService(images ImageRepo, backend storage.Backend) *ImageService {
	return &ImageService{images: images, backend: backend}
}

// ImageInput carries an upload request.
type ImageInput struct {
	FileName    string
	ContentType string
	Size        int64
	AltText     string
	Body        io.Reader
}

func (in *ImageInput) validate() error {
	if strings.TrimSpace(in.FileName) == "" {
		return validation("file_name", "file name is required")
	}
	if !allowedImageTypes[in.ContentType] {
		return validation("content_type", fmt.Sprintf("unsupported content type %q", in.ContentType))
	}
	if in.Size <= 0 {
		return validation("file_size", "file size must be positive")
	}
	if in.Size > maxImageSize {
		return validation("file_size", "file exceeds the 10 MiB upload limit")
	}
	return nil
}

// Upload stores the file under a fresh random key and records its
// metadata. Anonymous actors are rejected. If recording fails after the
// binary was stored, the stored object is removed again.
func (s *ImageService) Upload(ctx context.Context, actor access.Actor, in ImageInput) (*models.Image, error) {
	if actor.Anonymous {
		return nil, ErrForbidden
	}
	if s.backend == nil {
		return nil, fmt.Errorf("image storage not configured")
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	key := uuid.NewString() + strings.ToLower(path.Ext(in.FileName))
	url, err := s.backend.Upload(ctx, key, in.ContentType, in.Body, in.Size)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img, err := s.images.Create(ctx, &models.Image{
		FileName:    in.FileName,
		URL:         url,
		ContentType: in.ContentType,
		FileSize:    in.Size,
		AltText:     strings.TrimSpace(in.AltText),
		StorageKey:  key,
		UploadedBy:  actor.ID,
	})
	if err != nil {
		// Best effort: don't leave an orphaned object behind.
		_ = s.backend.Delete(ctx, key)
		return nil, fmt.Errorf("record image: %w", err)
	}
	return img, nil
}

// Delete removes the image record and its stored binary. Owners and
// admins only.
func (s *ImageService) Delete(ctx context.Context, actor access.Actor, id uuid.UUID) error {
	img, err := s.images.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("find image: %w", err)
	}
	if img == nil {
		return ErrNotFound
	}
	if !access.CanMutate(actor, img.UploadedBy) {
		return ErrForbidden
	}
	if err := s.images.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if s.backend != nil {
		if err := s.backend.Delete(ctx, img.StorageKey); err != nil {
			return fmt.Errorf("delete stored file: %w", err)
		}
	}
	return nil
}

// ListByUser returns the images a user uploaded. Users see their own,
// admins see anyone's.
func (s *ImageService) ListByUser(ctx context.Context, actor access.Actor, userID uuid.UUID) ([]models.Image, error) {
	if !access.CanMutate(actor, userID) {
		return nil, ErrForbidden
	}
	return s.images.ListByUser(ctx, userID)
}

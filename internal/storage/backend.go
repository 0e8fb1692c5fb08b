// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides the object storage backends for uploaded media.
// The S3 backend targets any S3-compatible endpoint with path-style
// addressing (CEPH/Hetzner); the UploadThing backend talks to the hosted
// UploadThing REST API. Exactly one backend is wired at startup.
package storage

import (
	"context"
	"io"
)

// Backend stores and serves uploaded files by key. Upload returns the
// public URL the file is reachable at.
type Backend interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, key string) error
	URLFor(key string) string
}

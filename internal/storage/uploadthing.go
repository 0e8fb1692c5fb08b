// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

// UploadThingBackend stores uploads with the hosted UploadThing service.
type UploadThingBackend struct {
	apiURL string
	apiKey string
	client *http.Client
}

// NewUploadThing creates an UploadThing backend. Returns an error if the
// API key is missing.
func NewUploadThing(apiURL, apiKey string) (*UploadThingBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("uploadthing storage: api key is required")
	}
	if apiURL == "" {
		apiURL = "https://uploadthing.com/api"
	}
	return &UploadThingBackend{
		apiURL: strings.TrimRight(apiURL, "/"),
		apiKey: apiKey,
		client: &http.Client{Timeout: 60 * time.Second},
	}, nil
}

// Upload posts the file as multipart form data and returns the hosted URL
// from the service response.
func (b *UploadThingBackend) Upload(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", key)
	if err != nil {
		return "", fmt.Errorf("uploadthing form: %w", err)
	}
	if _, err := io.Copy(part, body); err != nil {
		return "", fmt.Errorf("uploadthing copy: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("uploadthing form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.apiURL+"/upload", &buf)
	if err != nil {
		return "", fmt.Errorf("uploadthing request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := b.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("uploadthing upload %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("uploadthing upload %s: status %d: %s", key, resp.StatusCode, strings.TrimSpace(string(data)))
	}

	var result struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("uploadthing response: %w", err)
	}
	if result.URL == "" {
		return "", fmt.Errorf("uploadthing upload %s: empty url in response", key)
	}
	return result.URL, nil
}

// Delete removes a hosted file by key.
func (b *UploadThingBackend) Delete(ctx context.Context, key string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, b.apiURL+"/files/"+key, nil)
	if err != nil {
		return fmt.Errorf("uploadthing request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("uploadthing delete %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("uploadthing delete %s: status %d", key, resp.StatusCode)
	}
	return nil
}

// URLFor returns the hosted URL for a key. UploadThing serves files from
// its own CDN host.
func (b *UploadThingBackend) URLFor(key string) string {
	return "https://utfs.io/f/" + key
}

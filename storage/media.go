// Package storage keeps uploaded media (project images, avatars, CVs, featured
// images) and hands back the public URL to store on the entity.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/rpupo63/folio-backend/config"
	"github.com/rs/zerolog/log"
)

type MediaStore interface {
	Save(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// Folders accepted for uploads, mirroring the image and file fields they feed.
var Folders = map[string]bool{
	"avatars":  true,
	"cv":       true,
	"projects": true,
	"blog":     true,
}

// ObjectKey builds a collision free key under folder that keeps a readable
// form of the original file name.
func ObjectKey(folder, filename string) string {
	base := filepath.Base(filename)
	ext := strings.ToLower(filepath.Ext(base))
	name := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		name = "file"
	}
	return path.Join(folder, fmt.Sprintf("%s-%s%s", name, uuid.NewString()[:8], ext))
}

// FromConfig selects the store named by MEDIA_BACKEND.
func FromConfig(ctx context.Context, c config.Config) (MediaStore, error) {
	switch backend := config.GetString(c, "MEDIA_BACKEND", "local"); backend {
	case "local":
		return NewLocalStore(
			config.GetString(c, "MEDIA_ROOT", "media"),
			config.GetString(c, "MEDIA_URL", "/media/"),
		), nil
	case "s3":
		return NewS3StoreFromConfig(ctx, c)
	default:
		return nil, fmt.Errorf("unsupported MEDIA_BACKEND %q", backend)
	}
}

// LocalStore writes media below a directory that the server also serves.
type LocalStore struct {
	root    string
	baseURL string
}

func NewLocalStore(root, baseURL string) *LocalStore {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &LocalStore{root: root, baseURL: baseURL}
}

func (s *LocalStore) Root() string {
	return s.root
}

func (s *LocalStore) BaseURL() string {
	return s.baseURL
}

func (s *LocalStore) Save(ctx context.Context, key, _ string, body io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	clean := path.Clean("/" + key)[1:]
	if clean == "" {
		return "", fmt.Errorf("empty media key")
	}

	target := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create media directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create media file: %w", err)
	}

	_, err = io.Copy(f, body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		// No partial uploads are left behind.
		if rmErr := os.Remove(target); rmErr != nil {
			log.Warn().Err(rmErr).Str("path", target).Msg("could not remove partial media file")
		}
		return "", fmt.Errorf("write media file: %w", err)
	}
	return s.baseURL + clean, nil
}

// SPDX-License-Identifier: GPL-3.0-only

// Package filestore persists uploaded media under a public-servable
// directory and hands back stable reference URLs.
package filestore

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"inkwell-server/commons"

	"github.com/google/uuid"
)

type Store struct {
	Root         string
	PublicPrefix string
}

func New(root, publicPrefix string) *Store {
	return &Store{Root: root, PublicPrefix: publicPrefix}
}

func FromEnv() *Store {
	return New(commons.GetEnv("UPLOAD_DIR", "public/uploads"), "/uploads")
}

// sanitizeFilename reduces a client-suggested name to a safe single path
// element. The suggestion is advisory only; it must never steer the write
// outside the upload root.
func sanitizeFilename(suggested string) string {
	name := filepath.Base(strings.ReplaceAll(suggested, "\\", "/"))
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." {
		return "file"
	}
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	cleaned := strings.Trim(b.String(), ".")
	if cleaned == "" {
		return "file"
	}
	return cleaned
}

// Save streams the uploaded file to disk and returns its public reference
// path. Stored names are uuid-prefixed so concurrent uploads with the same
// suggested name cannot clobber each other.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + "_" + sanitizeFilename(fh.Filename)

	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	dstPath := filepath.Join(s.Root, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("write upload file: %w", err)
	}

	return s.PublicPrefix + "/" + name, nil
}

// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh in-memory database per test. The shared-cache URI
// keeps every pooled connection on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := conn.AutoMigrate(AllModels...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return conn
}

func mustCreateUser(t *testing.T, db *gorm.DB, username, email string) *User {
	t.Helper()
	user, err := CreateUser(db, username, email, "argon2id-hash-placeholder")
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func mustCreateBlog(t *testing.T, db *gorm.DB, authorID uint, title, content string) *Blog {
	t.Helper()
	blog, err := CreateBlog(db, authorID, title, content, nil, nil)
	if err != nil {
		t.Fatalf("Failed to create blog %q: %v", title, err)
	}
	return blog
}

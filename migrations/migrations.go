// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"inkwell-server/models"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// Run applies schema migrations. A fresh database is initialized straight
// from the model definitions; existing databases replay the migration list.
func Run(db *gorm.DB) error {
	m := gormigrate.New(db, gormigrate.DefaultOptions, List())
	m.InitSchema(func(tx *gorm.DB) error {
		return tx.AutoMigrate(models.AllModels...)
	})
	return m.Migrate()
}

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			ID: "202508_comments_blog_parent_index",
			Migrate: func(tx *gorm.DB) error {
				migrator := tx.Migrator()
				if !migrator.HasIndex(&models.Comment{}, "idx_comments_blog_parent") {
					return tx.Exec("CREATE INDEX idx_comments_blog_parent ON comments(blog_id, parent_comment_id)").Error
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				return tx.Exec("DROP INDEX idx_comments_blog_parent").Error
			},
		},
	}
}

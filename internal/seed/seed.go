// Package seed loads the embedded dataset into a database.
//
// The dataset lives under data/test as one JSON file per table. Comments
// reference articles by their 1-based position in articles.json; Run maps
// those positions onto the ids the store actually assigns.
package seed

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
)

//go:embed data/test/*.json
var files embed.FS

// Dataset is the full content of one seed set.
type Dataset struct {
	Topics   []domain.Topic
	Users    []domain.User
	Articles []domain.Article
	Comments []domain.Comment
}

// Load parses the embedded dataset.
func Load() (*Dataset, error) {
	var ds Dataset
	for name, dst := range map[string]any{
		"topics":   &ds.Topics,
		"users":    &ds.Users,
		"articles": &ds.Articles,
		"comments": &ds.Comments,
	} {
		b, err := files.ReadFile("data/test/" + name + ".json")
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(b, dst); err != nil {
			return nil, fmt.Errorf("seed %s: %w", name, err)
		}
	}
	return &ds, nil
}

// Run drops every table, recreates the schema and inserts the embedded
// dataset in a single transaction.
func Run(ctx context.Context, db *gorm.DB) error {
	ds, err := Load()
	if err != nil {
		return err
	}
	return Apply(ctx, db, ds)
}

// Apply resets the schema and inserts ds.
func Apply(ctx context.Context, db *gorm.DB, ds *Dataset) error {
	db = db.WithContext(ctx)
	if err := repo.DropAll(db); err != nil {
		return fmt.Errorf("drop tables: %w", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if len(ds.Topics) > 0 {
			if err := tx.Create(&ds.Topics).Error; err != nil {
				return fmt.Errorf("insert topics: %w", err)
			}
		}
		if len(ds.Users) > 0 {
			if err := tx.Create(&ds.Users).Error; err != nil {
				return fmt.Errorf("insert users: %w", err)
			}
		}

		ids := make(map[int]int, len(ds.Articles))
		for i := range ds.Articles {
			a := ds.Articles[i]
			a.ArticleID = 0
			if err := tx.Omit(clause.Associations).Create(&a).Error; err != nil {
				return fmt.Errorf("insert article %d: %w", i+1, err)
			}
			ids[i+1] = a.ArticleID
		}

		for i := range ds.Comments {
			c := ds.Comments[i]
			id, ok := ids[c.ArticleID]
			if !ok {
				return fmt.Errorf("comment %d references unknown article %d", i+1, c.ArticleID)
			}
			c.CommentID = 0
			c.ArticleID = id
			if err := tx.Omit(clause.Associations).Create(&c).Error; err != nil {
				return fmt.Errorf("insert comment %d: %w", i+1, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info().
		Int("topics", len(ds.Topics)).
		Int("users", len(ds.Users)).
		Int("articles", len(ds.Articles)).
		Int("comments", len(ds.Comments)).
		Msg("database seeded")
	return nil
}

package seed

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tbourn/go-news-backend/internal/domain"
	"github.com/tbourn/go-news-backend/internal/repo"
)

func TestLoad_EmbeddedCounts(t *testing.T) {
	ds, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ds.Topics) != 3 || len(ds.Users) != 4 || len(ds.Articles) != 12 || len(ds.Comments) != 18 {
		t.Fatalf("unexpected sizes: topics=%d users=%d articles=%d comments=%d",
			len(ds.Topics), len(ds.Users), len(ds.Articles), len(ds.Comments))
	}
	if ds.Articles[0].Title != "Living in the shadow of a great man" || ds.Articles[0].Votes != 100 {
		t.Fatalf("first article mismatch: %+v", ds.Articles[0])
	}
	if ds.Articles[0].CreatedAt.IsZero() {
		t.Fatalf("created_at not parsed")
	}
}

func TestRun_InsertsAndIsRepeatable(t *testing.T) {
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "seed.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := Run(ctx, db); err != nil {
			t.Fatalf("Run #%d: %v", i+1, err)
		}
	}

	counts := map[string]int64{"topics": 3, "users": 4, "articles": 12, "comments": 18}
	for table, want := range counts {
		var got int64
		if err := db.Table(table).Count(&got).Error; err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != want {
			t.Fatalf("%s: got %d rows, want %d", table, got, want)
		}
	}

	// Ids restart at 1 after a reseed and comments point at them.
	var first domain.Article
	if err := db.Order("article_id ASC").First(&first).Error; err != nil {
		t.Fatalf("first article: %v", err)
	}
	if first.ArticleID != 1 || first.Author != "butter_bridge" {
		t.Fatalf("unexpected first article: %+v", first)
	}
	var n int64
	db.Model(&domain.Comment{}).Where("article_id = ?", 1).Count(&n)
	if n != 11 {
		t.Fatalf("article 1 comments = %d; want 11", n)
	}
}

func TestApply_RejectsDanglingComment(t *testing.T) {
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "bad.db"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	sqlDB, _ := db.DB()
	t.Cleanup(func() { _ = sqlDB.Close() })

	ds := &Dataset{
		Topics:   []domain.Topic{{Slug: "cats", Description: "Not dogs"}},
		Users:    []domain.User{{Username: "rogersop", Name: "paul"}},
		Comments: []domain.Comment{{Body: "x", ArticleID: 7, Author: "rogersop"}},
	}
	if err := Apply(context.Background(), db, ds); err == nil {
		t.Fatalf("expected error for comment on unknown article")
	}
}

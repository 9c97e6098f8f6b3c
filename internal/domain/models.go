// Package domain defines the persistence models for topics, users, articles
// and comments. These types are mapped with GORM and are serialized as-is in
// API responses.
package domain

import "time"

// Topic is a subject articles are filed under, keyed by its slug.
type Topic struct {
	Slug        string `json:"slug"        gorm:"type:varchar(64);primaryKey"`
	Description string `json:"description" gorm:"type:text;not null;default:''"`
}

// TableName returns the database table name for Topic.
func (Topic) TableName() string { return "topics" }

// User is an author of articles and comments, keyed by username.
type User struct {
	Username  string `json:"username"   gorm:"type:varchar(64);primaryKey"`
	Name      string `json:"name"       gorm:"type:varchar(255);not null;default:''"`
	AvatarURL string `json:"avatar_url" gorm:"column:avatar_url;type:text"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Article is a news item written by a user under a topic.
//
// Fields:
//   - ArticleID: store-assigned positive integer key.
//   - Topic / Author: foreign keys to topics.slug and users.username.
//   - Votes: mutable counter, see PATCH /api/articles/:article_id.
//   - CommentCount: derived by the list query; read-only and never migrated.
type Article struct {
	ArticleID    int       `json:"article_id"    gorm:"column:article_id;primaryKey;autoIncrement"`
	Title        string    `json:"title"         gorm:"type:varchar(255);not null"`
	Topic        string    `json:"topic"         gorm:"type:varchar(64);not null;index"`
	Author       string    `json:"author"        gorm:"type:varchar(64);not null;index"`
	Body         string    `json:"body"          gorm:"type:text;not null"`
	CreatedAt    time.Time `json:"created_at"    gorm:"index:idx_articles_created"`
	Votes        int       `json:"votes"         gorm:"not null;default:0"`
	CommentCount int64     `json:"comment_count" gorm:"->;-:migration"`

	TopicRef  Topic `json:"-" gorm:"foreignKey:Topic;references:Slug;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	AuthorRef User  `json:"-" gorm:"foreignKey:Author;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Declared on the parent so the FK lands on comments.article_id.
	// Comments are removed with their article.
	Comments []Comment `json:"-" gorm:"foreignKey:ArticleID;references:ArticleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Article.
func (Article) TableName() string { return "articles" }

// Comment is a reply on an article. Body, Author and ArticleID are NOT NULL
// at the store, which is what rejects incomplete submissions.
type Comment struct {
	CommentID int       `json:"comment_id" gorm:"column:comment_id;primaryKey;autoIncrement"`
	Body      string    `json:"body"       gorm:"type:text;not null"`
	ArticleID int       `json:"article_id" gorm:"column:article_id;not null;index:idx_article_comments,priority:1"`
	Author    string    `json:"author"     gorm:"type:varchar(64);not null"`
	Votes     int       `json:"votes"      gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_article_comments,priority:2"`

	AuthorRef User `json:"-" gorm:"foreignKey:Author;references:Username;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Comment.
func (Comment) TableName() string { return "comments" }

// Models lists every model in dependency order, for migrations and resets.
func Models() []any {
	return []any{&Topic{}, &User{}, &Article{}, &Comment{}}
}

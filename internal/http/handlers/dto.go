package handlers

import "github.com/tbourn/go-news-backend/internal/domain"

//
// DTOs
//

// TopicsResponse wraps the topic list.
type TopicsResponse struct {
	Topics []domain.Topic `json:"topics"`
}

// ArticlesResponse wraps the article list, newest first.
type ArticlesResponse struct {
	Articles []domain.Article `json:"articles"`
}

// ArticleResponse wraps a single article.
type ArticleResponse struct {
	Article *domain.Article `json:"article"`
}

// CommentsResponse wraps an article's comments, newest first.
type CommentsResponse struct {
	Comments []domain.Comment `json:"comments"`
}

// CommentResponse wraps a created comment.
type CommentResponse struct {
	Comment *domain.Comment `json:"comment"`
}

// UsersResponse wraps the user list.
type UsersResponse struct {
	Users []domain.User `json:"users"`
}

// PatchArticleRequest is the JSON payload for voting on an article.
type PatchArticleRequest struct {
	// IncVotes is added to the current vote count; may be negative. Bounded
	// to the integer column type.
	IncVotes *int `json:"inc_votes" binding:"required,min=-2147483648,max=2147483647" example:"1"`
}

// PostCommentRequest is the JSON payload for commenting on an article.
//
// Both fields are pointers so that an absent field stays nil and reaches the
// store as NULL.
type PostCommentRequest struct {
	Username *string `json:"username" example:"butter_bridge"`
	Body     *string `json:"body"     example:"test body"`
}

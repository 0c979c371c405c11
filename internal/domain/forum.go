package domain

import "time"

type ForumPost struct {
	ID        int32     `json:"id"`
	AuthorID  int32     `json:"author_id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	CreatedOn time.Time `json:"created_on"`
	UpdatedOn time.Time `json:"updated_on"`
}

type ForumComment struct {
	ID        int32     `json:"id"`
	PostID    int32     `json:"post_id"`
	AuthorID  int32     `json:"author_id"`
	Body      string    `json:"body"`
	CreatedOn time.Time `json:"created_on"`
}

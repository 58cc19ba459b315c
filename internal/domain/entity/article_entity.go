package entity

import "time"

// Article always carries exactly one Image.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	BlogID    string    `json:"blog_id"`
	Image     *Image    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Image points at bytes held by the image store under StoredName.
type Image struct {
	ID         string `json:"id"`
	StoredName string `json:"image_name"`
	URL        string `json:"url"`
	ArticleID  string `json:"-"`
}

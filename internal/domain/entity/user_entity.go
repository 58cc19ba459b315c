package entity

import (
	"time"
)

// User is the aggregate root for the blogging domain.
// Email is stored base64 encoded and Password as a bcrypt hash.
// SessionToken is set iff IsLoggedIn.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"-"`
	Password     string    `json:"-"`
	SessionToken string    `json:"-"`
	IsLoggedIn   bool      `json:"-"`
	Blogs        []*Blog   `json:"blogs,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FindBlog returns the owner's blog with the given id.
func (u *User) FindBlog(id string) (*Blog, bool) {
	for _, b := range u.Blogs {
		if b.ID == id {
			return b, true
		}
	}
	return nil, false
}

// FindBlogBySlug returns the owner's blog with the given slug.
func (u *User) FindBlogBySlug(slug string) (*Blog, bool) {
	for _, b := range u.Blogs {
		if b.Slug == slug {
			return b, true
		}
	}
	return nil, false
}

// FindArticle walks every blog the user owns looking for the article.
func (u *User) FindArticle(id string) (*Article, bool) {
	for _, b := range u.Blogs {
		if a, ok := b.FindArticle(id); ok {
			return a, true
		}
	}
	return nil, false
}

// Articles flattens the articles of all owned blogs.
func (u *User) Articles() []*Article {
	var out []*Article
	for _, b := range u.Blogs {
		out = append(out, b.Articles...)
	}
	return out
}

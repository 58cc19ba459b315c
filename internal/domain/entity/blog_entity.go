package entity

import "time"

// Blog belongs to one user; its slug is unique among that user's blogs.
type Blog struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	OwnerID   string     `json:"owner_id"`
	Articles  []*Article `json:"articles"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (b *Blog) FindArticle(id string) (*Article, bool) {
	for _, a := range b.Articles {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

func (b *Blog) HasArticleSlug(slug string) bool {
	for _, a := range b.Articles {
		if a.Slug == slug {
			return true
		}
	}
	return false
}

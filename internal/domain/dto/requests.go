package dto

import "io"

// Pointer fields distinguish an absent value from an empty one.

type RegisterRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type LoginRequest struct {
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

type BlogRequest struct {
	Title *string `json:"title"`
}

// ImageFile is an uploaded file as seen by the domain.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type ArticleRequest struct {
	Title   *string
	Content *string
	File    *ImageFile
}

// StrPtr is a small convenience for building requests.
func StrPtr(s string) *string { return &s }

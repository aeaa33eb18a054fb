package entity

import "time"

type PostType string

const (
	PostNotice PostType = "NOTICE"
	PostFree   PostType = "FREE"
)

// Post is a notice-board record, independent of profiles.
type Post struct {
	ID        string
	Title     string
	Content   string
	PostType  PostType
	CreatedAt time.Time
	UpdatedAt time.Time
}

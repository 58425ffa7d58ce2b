package models

import "time"

type Comment struct {
	ID         string
	UserID     string
	Content    string
	AuthorName string
	CreatedAt  time.Time
}

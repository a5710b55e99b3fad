package models

import "time"

// Photo is a record imported from the remote photo feed.
// PhotoID is the id assigned by the feed, not our surrogate key.
type Photo struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	AlbumID      int       `json:"album_id"`
	PhotoID      int       `json:"photo_id"`
	Title        string    `json:"title"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package repositories

import (
	"fmt"

	"gorm.io/gorm"

	"tienda/internal/models"
)

// GORMPhotoRepository is a GORM implementation of PhotoRepository.
type GORMPhotoRepository struct {
	db *gorm.DB
}

// NewGORMPhotoRepository creates a new instance of GORMPhotoRepository.
func NewGORMPhotoRepository(db *gorm.DB) *GORMPhotoRepository {
	return &GORMPhotoRepository{
		db: db,
	}
}

// FirstOrCreate inserts the photo unless an exact match on the full
// imported tuple exists. A record differing in any of the five fields is
// treated as a distinct photo, never as an update.
func (r *GORMPhotoRepository) FirstOrCreate(photo *models.Photo) (bool, error) {
	res := r.db.Where(map[string]interface{}{
		"album_id":      photo.AlbumID,
		"photo_id":      photo.PhotoID,
		"title":         photo.Title,
		"url":           photo.URL,
		"thumbnail_url": photo.ThumbnailURL,
	}).FirstOrCreate(photo)
	if res.Error != nil {
		return false, fmt.Errorf("failed to import photo %d: %w", photo.PhotoID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Count returns the total number of stored photos.
func (r *GORMPhotoRepository) Count() (int64, error) {
	var total int64
	if err := r.db.Model(&models.Photo{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return total, nil
}

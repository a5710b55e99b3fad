package repositories

import (
	"sync"
	"time"

	"tienda/internal/models"
)

// MockPhotoRepository is an in-memory implementation of PhotoRepository.
type MockPhotoRepository struct {
	photos []models.Photo
	nextID uint
	mu     sync.RWMutex
}

// NewMockPhotoRepository creates a new instance of MockPhotoRepository.
func NewMockPhotoRepository() *MockPhotoRepository {
	return &MockPhotoRepository{nextID: 1}
}

// FirstOrCreate inserts the photo unless an exact tuple match exists.
func (r *MockPhotoRepository) FirstOrCreate(photo *models.Photo) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.photos {
		if p.AlbumID == photo.AlbumID && p.PhotoID == photo.PhotoID &&
			p.Title == photo.Title && p.URL == photo.URL &&
			p.ThumbnailURL == photo.ThumbnailURL {
			*photo = p
			return false, nil
		}
	}

	photo.ID = r.nextID
	r.nextID++
	now := time.Now()
	photo.CreatedAt = now
	photo.UpdatedAt = now
	r.photos = append(r.photos, *photo)
	return true, nil
}

// Count returns the total number of stored photos.
func (r *MockPhotoRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int64(len(r.photos)), nil
}

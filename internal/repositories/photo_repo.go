package repositories

import (
	"tienda/internal/models"
)

// PhotoRepository defines the interface for photo data access.
type PhotoRepository interface {
	// FirstOrCreate inserts the photo unless a record matching all five
	// imported fields already exists. It reports whether a row was created.
	FirstOrCreate(photo *models.Photo) (bool, error)
	// Count returns the total number of photo records in the store.
	Count() (int64, error)
}

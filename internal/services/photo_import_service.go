package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/validation"
)

const (
	fetchAttempts = 3
	fetchBackoff  = 100 * time.Millisecond
)

// photoSchema is the fixed shape of one feed element.
var photoSchema = validation.Schema{
	{Name: "albumId", Required: true, Constraints: []validation.Constraint{validation.Integer{}}},
	{Name: "id", Required: true, Constraints: []validation.Constraint{validation.Integer{}}},
	{Name: "title", Required: true, Constraints: []validation.Constraint{validation.String{}}},
	{Name: "url", Required: true, Constraints: []validation.Constraint{validation.URL{}}},
	{Name: "thumbnailUrl", Required: true, Constraints: []validation.Constraint{validation.URL{}}},
}

// PhotoImportService pulls the remote photo feed and stores its records.
type PhotoImportService struct {
	repo    repositories.PhotoRepository
	client  *http.Client
	feedURL string
	events  EventPublisher
}

// NewPhotoImportService creates a new PhotoImportService. events may be
// nil, in which case no catalog events are published.
func NewPhotoImportService(repo repositories.PhotoRepository, feedURL string, events EventPublisher) *PhotoImportService {
	return &PhotoImportService{
		repo:    repo,
		client:  &http.Client{},
		feedURL: feedURL,
		events:  events,
	}
}

// ImportPhotos fetches the feed, stores every valid element that is not
// already present, and returns the total number of photo records in the
// store — including photos from prior runs. Elements failing validation
// are dropped without being reported.
func (s *PhotoImportService) ImportPhotos() (int64, error) {
	runID := uuid.New().String()

	body, err := s.fetch(runID)
	if err != nil {
		return 0, &UpstreamError{Err: err}
	}

	var feed []map[string]interface{}
	if err := json.Unmarshal(body, &feed); err != nil {
		return 0, &UpstreamError{Err: fmt.Errorf("photo feed is not a valid JSON array: %w", err)}
	}

	imported := 0
	for _, element := range feed {
		if errs := photoSchema.Validate(element); len(errs) > 0 {
			continue
		}

		albumID, _ := validation.AsInt(element["albumId"])
		photoID, _ := validation.AsInt(element["id"])
		photo := models.Photo{
			AlbumID:      albumID,
			PhotoID:      photoID,
			Title:        element["title"].(string),
			URL:          element["url"].(string),
			ThumbnailURL: element["thumbnailUrl"].(string),
		}
		created, err := s.repo.FirstOrCreate(&photo)
		if err != nil {
			return 0, &PersistenceError{Err: err}
		}
		if created {
			imported++
		}
	}

	total, err := s.repo.Count()
	if err != nil {
		return 0, &PersistenceError{Err: err}
	}

	log.Printf("[import %s] processed %d elements, %d new, %d stored in total", runID, len(feed), imported, total)
	s.publish("photos.imported", map[string]interface{}{
		"run_id":   runID,
		"imported": imported,
		"total":    total,
	})
	return total, nil
}

// fetch retrieves the feed body, retrying up to fetchAttempts times with
// a fixed delay. Any transport error or non-2xx status counts as a failed
// attempt.
func (s *PhotoImportService) fetch(runID string) ([]byte, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		if attempt > 1 {
			time.Sleep(fetchBackoff)
		}

		resp, err := s.client.Get(s.feedURL)
		if err != nil {
			lastErr = err
			log.Printf("[import %s] fetch attempt %d/%d failed: %v", runID, attempt, fetchAttempts, err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			log.Printf("[import %s] fetch attempt %d/%d failed: %v", runID, attempt, fetchAttempts, err)
			continue
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			lastErr = fmt.Errorf("photo feed returned status %d", resp.StatusCode)
			log.Printf("[import %s] fetch attempt %d/%d failed: %v", runID, attempt, fetchAttempts, lastErr)
			continue
		}
		return body, nil
	}
	return nil, lastErr
}

func (s *PhotoImportService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, payload); err != nil {
		log.Printf("Error publishing %s event: %v", event, err)
	}
}

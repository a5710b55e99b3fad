package services

import (
	"errors"
	"log"

	"tienda/internal/models"
	"tienda/internal/repositories"
	"tienda/internal/validation"
)

// productSchema mirrors the create payload rules. Update reuses it and
// appends the dynamic id rule.
var productSchema = validation.Schema{
	{Name: "name", Required: true, Constraints: []validation.Constraint{validation.String{}, validation.MaxLength{Max: 255}}},
	{Name: "description", Nullable: true, Constraints: []validation.Constraint{validation.String{}}},
	{Name: "image", Required: true, Constraints: []validation.Constraint{validation.String{}}},
	{Name: "brand", Required: true, Constraints: []validation.Constraint{validation.String{}, validation.MaxLength{Max: 255}}},
	{Name: "price", Required: true, Constraints: []validation.Constraint{validation.Numeric{}}},
	{Name: "price_sale", Required: true, Constraints: []validation.Constraint{validation.Numeric{}}},
	{Name: "category", Required: true, Constraints: []validation.Constraint{validation.String{}, validation.MaxLength{Max: 255}}},
	{Name: "stock", Required: true, Constraints: []validation.Constraint{validation.Integer{}}},
}

// ListQuery is the input to List: optional filters plus pagination.
type ListQuery struct {
	Filter repositories.ProductFilter
	Page   int
	RPP    int
}

// ListResult is one page of products. From and To are 1-based ordinals of
// the first and last item on the page; both are zero when the page is empty.
type ListResult struct {
	Total       int64
	From        int
	To          int
	CurrentPage int
	LastPage    int
	RPP         int
	Items       []models.Product
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo   repositories.ProductRepository
	events EventPublisher
}

// NewProductService creates a new ProductService. events may be nil, in
// which case no catalog events are published.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	return &ProductService{
		repo:   repo,
		events: events,
	}
}

// Create validates the payload and persists a new product. The store
// assigns the id and timestamps.
func (s *ProductService) Create(payload map[string]interface{}) (*models.Product, error) {
	if errs := productSchema.Validate(payload); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}

	product := productFromPayload(payload)
	if err := s.repo.Create(product); err != nil {
		return nil, &PersistenceError{Err: err}
	}

	s.publish("product.created", map[string]interface{}{
		"id":   product.ID,
		"name": product.Name,
	})
	return product, nil
}

// Get retrieves a single product by its id.
func (s *ProductService) Get(id uint) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, err
		}
		return nil, &PersistenceError{Err: err}
	}
	return product, nil
}

// Update replaces all fields of an existing product. The lookup happens
// before payload validation, so an unknown id is reported as not found
// even when the payload is invalid. An id field in the payload, when
// present, must reference an existing product and equal the path id.
func (s *ProductService) Update(id uint, payload map[string]interface{}) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, err
		}
		return nil, &PersistenceError{Err: err}
	}

	schema := append(validation.Schema{}, productSchema...)
	schema = append(schema, validation.Field{
		Name: "id",
		Constraints: []validation.Constraint{
			validation.Integer{},
			validation.Exists{Probe: s.productExists},
			validation.In{Value: int(id)},
		},
	})
	if errs := schema.Validate(payload); len(errs) > 0 {
		return nil, &ValidationError{Messages: errs}
	}

	product := productFromPayload(payload)
	product.ID = existing.ID
	product.CreatedAt = existing.CreatedAt
	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return nil, err
		}
		return nil, &PersistenceError{Err: err}
	}
	return product, nil
}

// Delete removes a product permanently.
func (s *ProductService) Delete(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return err
		}
		return &PersistenceError{Err: err}
	}
	return nil
}

// List returns one page of products matching the query's filters, ordered
// by ascending id. Page defaults to 1, page size to 10.
func (s *ProductService) List(q ListQuery) (*ListResult, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	rpp := q.RPP
	if rpp < 1 {
		rpp = 10
	}
	offset := (page - 1) * rpp

	items, total, err := s.repo.List(q.Filter, offset, rpp)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	lastPage := int((total + int64(rpp) - 1) / int64(rpp))
	if lastPage < 1 {
		lastPage = 1
	}
	result := &ListResult{
		Total:       total,
		CurrentPage: page,
		LastPage:    lastPage,
		RPP:         rpp,
		Items:       items,
	}
	if len(items) > 0 {
		result.From = offset + 1
		result.To = offset + len(items)
	}
	return result, nil
}

// productExists backs the update id rule; validation probes the store
// directly here.
func (s *ProductService) productExists(id int) bool {
	if id < 1 {
		return false
	}
	exists, err := s.repo.ExistsByID(uint(id))
	if err != nil {
		log.Printf("Error checking product %d existence: %v", id, err)
		return false
	}
	return exists
}

func (s *ProductService) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(event, payload); err != nil {
		log.Printf("Error publishing %s event: %v", event, err)
	}
}

// productFromPayload maps a validated payload onto a product. Numeric
// conversions cannot fail here because the schema already vetted them.
func productFromPayload(payload map[string]interface{}) *models.Product {
	price, _ := validation.AsFloat(payload["price"])
	priceSale, _ := validation.AsFloat(payload["price_sale"])
	stock, _ := validation.AsInt(payload["stock"])

	product := &models.Product{
		Name:      payload["name"].(string),
		Image:     payload["image"].(string),
		Brand:     payload["brand"].(string),
		Price:     price,
		PriceSale: priceSale,
		Category:  payload["category"].(string),
		Stock:     stock,
	}
	if desc, ok := payload["description"].(string); ok {
		product.Description = &desc
	}
	return product
}

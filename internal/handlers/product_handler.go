package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"tienda/internal/repositories"
	"tienda/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	baseURL string
}

// NewProductHandler creates a new ProductHandler. baseURL is the absolute
// base used for Location headers and pagination links.
func NewProductHandler(service *services.ProductService, baseURL string) *ProductHandler {
	return &ProductHandler{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/product", h.HandleList)
	router.Post("/product", h.HandleCreate)
	router.Get("/product/:id", h.HandleGet)
	router.Put("/product/:id", h.HandleUpdate)
	router.Delete("/product/:id", h.HandleDelete)
}

// HandleCreate creates a new product from a JSON payload.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	data, ok := decodeBody(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error",
			"errors": []string{"Request body is not a valid JSON"},
		})
	}

	product, err := h.service.Create(data)
	if err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": "error",
				"errors": vErr.Messages,
			})
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error",
			"error":  "Error saving product",
		})
	}

	c.Set(fiber.HeaderLocation, h.resourceURL(product.ID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  "success",
		"product": product,
	})
}

// HandleGet retrieves a single product by its id.
func (h *ProductHandler) HandleGet(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}

	product, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c)
		}
		log.Printf("Error getting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error",
			"error":  "Error getting product",
		})
	}
	return c.JSON(product)
}

// HandleUpdate replaces all fields of an existing product.
func (h *ProductHandler) HandleUpdate(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}

	data, ok := decodeBody(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"status": "error",
			"errors": []string{"Request body is not a valid JSON"},
		})
	}

	product, err := h.service.Update(id, data)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c)
		}
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"status": "error",
				"errors": vErr.Messages,
			})
		}
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error",
			"error":  "Error updating product",
		})
	}

	c.Set(fiber.HeaderLocation, h.resourceURL(product.ID))
	return c.JSON(fiber.Map{
		"status":  "success",
		"product": product,
	})
}

// HandleDelete removes a product permanently.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return productNotFound(c)
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return productNotFound(c)
		}
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error",
			"error":  "Error deleting product",
		})
	}
	return c.JSON(fiber.Map{"status": "success"})
}

// HandleList returns one page of products matching the query filters,
// with pagination links that preserve the original query parameters.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	query := services.ListQuery{
		Page: c.QueryInt("page", 1),
		RPP:  c.QueryInt("rpp", 10),
	}
	params := queryValues(c)
	query.Filter = filterFromQuery(params)

	result, err := h.service.List(query)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"status": "error",
			"error":  "Error getting products",
		})
	}

	var from, to, previous, next interface{}
	if result.From > 0 {
		from = result.From
		to = result.To
	}
	if result.CurrentPage > 1 {
		previous = h.pageURL(params, result.CurrentPage-1)
	}
	if result.CurrentPage < result.LastPage {
		next = h.pageURL(params, result.CurrentPage+1)
	}

	return c.JSON(fiber.Map{
		"status":        "success",
		"total":         result.Total,
		"from":          from,
		"to":            to,
		"previous_page": previous,
		"next_page":     next,
		"last_page":     h.pageURL(params, result.LastPage),
		"products":      result.Items,
	})
}

func (h *ProductHandler) resourceURL(id uint) string {
	return fmt.Sprintf("%s/api/product/%d", h.baseURL, id)
}

func (h *ProductHandler) pageURL(params url.Values, page int) string {
	values := url.Values{}
	for key, vals := range params {
		values[key] = vals
	}
	values.Set("page", strconv.Itoa(page))
	return h.baseURL + "/api/product?" + values.Encode()
}

// filterFromQuery builds the product filter from the parameters present
// in the request. Unparsable values impose no constraint.
func filterFromQuery(params url.Values) repositories.ProductFilter {
	var filter repositories.ProductFilter
	if params.Has("name") {
		name := params.Get("name")
		filter.Name = &name
	}
	filter.MinPrice = floatParam(params, "min_price")
	filter.MaxPrice = floatParam(params, "max_price")
	filter.MinPriceSale = floatParam(params, "min_price_sale")
	filter.MaxPriceSale = floatParam(params, "max_price_sale")
	filter.Stock = intParam(params, "stock")
	filter.MinStock = intParam(params, "min_stock")
	filter.MaxStock = intParam(params, "max_stock")
	return filter
}

func floatParam(params url.Values, key string) *float64 {
	if !params.Has(key) {
		return nil
	}
	f, err := strconv.ParseFloat(params.Get(key), 64)
	if err != nil {
		return nil
	}
	return &f
}

func intParam(params url.Values, key string) *int {
	if !params.Has(key) {
		return nil
	}
	i, err := strconv.Atoi(params.Get(key))
	if err != nil {
		return nil
	}
	return &i
}

// queryValues collects all query parameters of the request.
func queryValues(c *fiber.Ctx) url.Values {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return values
}

func decodeBody(c *fiber.Ctx) (map[string]interface{}, bool) {
	var data map[string]interface{}
	if err := json.Unmarshal(c.Body(), &data); err != nil || data == nil {
		return nil, false
	}
	return data, true
}

func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func productNotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"status": "error",
		"error":  "Product not found",
	})
}

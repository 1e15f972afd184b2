package handlers

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"productstore/internal/models"
	"productstore/internal/repositories"
	"productstore/internal/services"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// hasJSONContentType reports whether the request media type is
// application/json. Media type parameters such as charset are ignored.
func hasJSONContentType(c *fiber.Ctx) bool {
	contentType := c.Get(fiber.HeaderContentType)
	mediaType := strings.TrimSpace(strings.Split(contentType, ";")[0])
	return strings.EqualFold(mediaType, fiber.MIMEApplicationJSON)
}

func unsupportedMediaType(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnsupportedMediaType).JSON(fiber.Map{
		"message": "Content-Type must be application/json",
	})
}

// parseID extracts the :id path parameter. A non-numeric or negative id can
// never match a stored product, so it maps to the not-found path.
func parseID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *fiber.Ctx, id string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"message": fmt.Sprintf("Product with id '%s' was not found.", id),
	})
}

// HandleCreateProduct creates a new product from a JSON payload.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return unsupportedMediaType(c)
	}

	var payload models.ProductPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.CreateProduct(payload)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": validationErr.Error(),
			})
		}
		log.Printf("Error creating product: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create product",
			"error":   err.Error(),
		})
	}

	c.Location(fmt.Sprintf("/products/%d", product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleListProducts returns all products, optionally narrowed by a single
// query filter. Precedence is name, then category, then availability.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	var (
		products []models.Product
		err      error
	)

	switch {
	case c.Query("name") != "":
		products, err = h.service.GetProductsByName(c.Query("name"))
	case c.Query("category") != "":
		var category models.Category
		category, err = models.ParseCategory(c.Query("category"))
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": fmt.Sprintf("Invalid category: %s", c.Query("category")),
			})
		}
		products, err = h.service.GetProductsByCategory(category)
	case c.Query("available") != "":
		available := strings.EqualFold(c.Query("available"), "true")
		products, err = h.service.GetProductsByAvailability(available)
	default:
		products, err = h.service.GetAllProducts()
	}

	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, c.Params("id"))
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, c.Params("id"))
		}
		log.Printf("Error getting product by ID %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleUpdateProduct overwrites an existing product's fields from a JSON
// payload, re-running create validation.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	if !hasJSONContentType(c) {
		return unsupportedMediaType(c)
	}

	id, ok := parseID(c)
	if !ok {
		return notFound(c, c.Params("id"))
	}

	var payload models.ProductPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(id, payload)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return notFound(c, c.Params("id"))
		}
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": validationErr.Error(),
			})
		}
		log.Printf("Error updating product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleDeleteProduct deletes a product by its ID. The response is 204
// whether or not the ID existed.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return notFound(c, c.Params("id"))
	}

	if err := h.service.DeleteProduct(id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

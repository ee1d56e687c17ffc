package handlers

import (
	"fmt"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rohanz/shopkart/internal/services"
	"github.com/rohanz/shopkart/internal/storage"
)

type ProductHandler struct {
	products *services.ProductService
	media    storage.MediaStore
}

func NewProductHandler(products *services.ProductService, media storage.MediaStore) *ProductHandler {
	return &ProductHandler{products: products, media: media}
}

// List serves the catalog listing with optional search, category
// filter, and pagination.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q, err := services.ParseListQuery(
		c.Query("page"),
		c.Query("limit"),
		c.Query("search"),
		c.Query("category"),
	)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.products.List(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Get serves a single product by id.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// Create persists a new product from a multipart form. The image part
// is uploaded to the media host first; its URL goes into the record.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form := productForm(c)

	imageURL, err := h.uploadImage(c)
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.products.Create(c.Context(), form, imageURL)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// Update replaces a product. An image part is optional; without one the
// stored image URL is kept.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	form := productForm(c)

	imageURL, err := h.uploadImage(c)
	if err != nil {
		return respondError(c, err)
	}

	product, err := h.products.Update(c.Context(), c.Params("id"), form, imageURL)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// Delete removes a product.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.products.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "product deleted successfully"})
}

// Categories serves the distinct category values.
func (h *ProductHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.products.Categories(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(categories)
}

func productForm(c *fiber.Ctx) services.ProductForm {
	return services.ProductForm{
		Name:          c.FormValue("name"),
		Description:   c.FormValue("description"),
		Price:         c.FormValue("price"),
		OriginalPrice: c.FormValue("originalPrice"),
		Quantity:      c.FormValue("quantity"),
		Category:      c.FormValue("category"),
		Subcategory:   c.FormValue("subcategory"),
		Specs:         c.FormValue("specs"),
	}
}

// uploadImage sends the "image" multipart part to the media host and
// returns its durable URL. No part at all returns an empty URL; the
// service decides whether that is acceptable for the operation.
func (h *ProductHandler) uploadImage(c *fiber.Ctx) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	return h.storeImage(c, fileHeader)
}

func (h *ProductHandler) storeImage(c *fiber.Ctx, fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("opening uploaded image: %w", err)
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s_%s", primitive.NewObjectID().Hex(), fileHeader.Filename)
	return h.media.UploadImage(c.Context(), objectName, file, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
}

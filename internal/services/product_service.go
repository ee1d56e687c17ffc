package services

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rohanz/shopkart/internal/models"
)

// DefaultLimit is used when a listing request carries no limit; it is
// large enough to return the whole catalog in one page.
const DefaultLimit = 1000

// CategoryAll is the sentinel meaning "no category filter".
const CategoryAll = "All"

// ProductQuery is a validated listing request.
type ProductQuery struct {
	Search   string
	Category string // empty means no filter
	Page     int    // 1-based
	Limit    int
}

func (q ProductQuery) Skip() int64 { return int64((q.Page - 1) * q.Limit) }

// ListResult is one page of products plus pagination metadata.
type ListResult struct {
	Products      []models.Product `json:"products"`
	CurrentPage   int              `json:"currentPage"`
	TotalPages    int              `json:"totalPages"`
	TotalProducts int64            `json:"totalProducts"`
}

// ProductStore is the catalog store. Search returns one page sorted by
// creation time descending plus the total match count.
type ProductStore interface {
	Insert(ctx context.Context, p models.Product) error
	FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error)
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	Search(ctx context.Context, q ProductQuery) ([]models.Product, int64, error)
	Categories(ctx context.Context) ([]string, error)
}

// ProductForm carries the raw string fields of a product write request.
// Numeric fields arrive as strings (multipart form values) and are
// parsed here; a parse failure is a validation error, never a silent
// zero.
type ProductForm struct {
	Name          string
	Description   string
	Price         string
	OriginalPrice string
	Quantity      string
	Category      string
	Subcategory   string
	Specs         string // JSON array, e.g. `["100% cotton","Machine washable"]`
}

type ProductService struct {
	products ProductStore
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products}
}

// ParseListQuery validates raw query parameters. Absent page defaults
// to 1 and absent limit to DefaultLimit; non-numeric or non-positive
// values are rejected rather than propagated into the store query.
func ParseListQuery(page, limit, search, category string) (ProductQuery, error) {
	q := ProductQuery{Search: search, Page: 1, Limit: DefaultLimit}

	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil || n < 1 {
			return ProductQuery{}, invalidf("page must be a positive integer")
		}
		q.Page = n
	}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			return ProductQuery{}, invalidf("limit must be a positive integer")
		}
		q.Limit = n
	}
	if category != "" && category != CategoryAll {
		q.Category = category
	}
	return q, nil
}

// List runs a listing query and computes pagination metadata.
func (s *ProductService) List(ctx context.Context, q ProductQuery) (ListResult, error) {
	products, total, err := s.products.Search(ctx, q)
	if err != nil {
		return ListResult{}, err
	}
	if products == nil {
		products = []models.Product{}
	}
	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))
	return ListResult{
		Products:      products,
		CurrentPage:   q.Page,
		TotalPages:    totalPages,
		TotalProducts: total,
	}, nil
}

// Get fetches a product by its hex id.
func (s *ProductService) Get(ctx context.Context, id string) (models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, ErrInvalidID
	}
	return s.products.FindByID(ctx, objID)
}

// Create validates the form and persists a new product. imageURL is the
// durable URL returned by the media host and is required.
func (s *ProductService) Create(ctx context.Context, form ProductForm, imageURL string) (models.Product, error) {
	p, err := parseProductForm(form)
	if err != nil {
		return models.Product{}, err
	}
	if imageURL == "" {
		return models.Product{}, invalidf("missing required field(s): image")
	}

	p.ID = primitive.NewObjectID()
	p.Image = imageURL
	p.CreatedAt = time.Now()

	if err := s.products.Insert(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Update replaces a product's fields. The same validation as Create
// applies; a fresh imageURL overrides the stored one, an empty imageURL
// keeps it.
func (s *ProductService) Update(ctx context.Context, id string, form ProductForm, imageURL string) (models.Product, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Product{}, ErrInvalidID
	}

	existing, err := s.products.FindByID(ctx, objID)
	if err != nil {
		return models.Product{}, err
	}

	p, err := parseProductForm(form)
	if err != nil {
		return models.Product{}, err
	}

	p.ID = existing.ID
	p.CreatedAt = existing.CreatedAt
	p.Image = existing.Image
	if imageURL != "" {
		p.Image = imageURL
	}

	if err := s.products.Update(ctx, p); err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// Delete hard-deletes a product.
func (s *ProductService) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrInvalidID
	}
	return s.products.Delete(ctx, objID)
}

// Categories returns the distinct category values in the catalog.
func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.products.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

// parseProductForm checks required fields and converts the numeric
// ones. Missing fields are reported together by name.
func parseProductForm(form ProductForm) (models.Product, error) {
	var missing []string
	required := []struct {
		name, value string
	}{
		{"name", form.Name},
		{"description", form.Description},
		{"price", form.Price},
		{"quantity", form.Quantity},
		{"category", form.Category},
		{"subcategory", form.Subcategory},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return models.Product{}, invalidf("missing required field(s): %s", strings.Join(missing, ", "))
	}

	price, err := strconv.ParseFloat(form.Price, 64)
	if err != nil || price < 0 {
		return models.Product{}, invalidf("price must be a non-negative number")
	}

	var originalPrice float64
	if form.OriginalPrice != "" {
		originalPrice, err = strconv.ParseFloat(form.OriginalPrice, 64)
		if err != nil || originalPrice < 0 {
			return models.Product{}, invalidf("originalPrice must be a non-negative number")
		}
	}

	quantity, err := strconv.Atoi(form.Quantity)
	if err != nil || quantity < 0 {
		return models.Product{}, invalidf("quantity must be a non-negative integer")
	}

	specs := []string{}
	if form.Specs != "" {
		if err := json.Unmarshal([]byte(form.Specs), &specs); err != nil {
			return models.Product{}, invalidf("specs must be a JSON array of strings")
		}
	}

	return models.Product{
		Name:          strings.TrimSpace(form.Name),
		Description:   form.Description,
		Price:         price,
		OriginalPrice: originalPrice,
		Quantity:      quantity,
		Category:      strings.TrimSpace(form.Category),
		Subcategory:   strings.TrimSpace(form.Subcategory),
		Specs:         specs,
	}, nil
}

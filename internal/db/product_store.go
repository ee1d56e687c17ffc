package db

import (
	"context"
	"errors"
	"regexp"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rohanz/shopkart/internal/models"
	"github.com/rohanz/shopkart/internal/services"
)

// ProductStore is the MongoDB-backed catalog store.
type ProductStore struct {
	coll *mongo.Collection
}

func NewProductStore(db *mongo.Database) *ProductStore {
	return &ProductStore{coll: db.Collection("products")}
}

func (s *ProductStore) Insert(ctx context.Context, p models.Product) error {
	_, err := s.coll.InsertOne(ctx, p)
	return err
}

func (s *ProductStore) FindByID(ctx context.Context, id primitive.ObjectID) (models.Product, error) {
	var p models.Product
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Product{}, services.ErrNotFound
	}
	return p, err
}

func (s *ProductStore) Update(ctx context.Context, p models.Product) error {
	result, err := s.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *ProductStore) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return services.ErrNotFound
	}
	return nil
}

// Search returns one page sorted by created_at descending plus the
// total match count.
func (s *ProductStore) Search(ctx context.Context, q services.ProductQuery) ([]models.Product, int64, error) {
	filter := productFilter(q)

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(q.Skip()).
		SetLimit(int64(q.Limit))

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// Categories returns the distinct category values, sorted.
func (s *ProductStore) Categories(ctx context.Context) ([]string, error) {
	values, err := s.coll.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

// productFilter translates a listing query into a Mongo filter: a
// case-insensitive substring match OR-ed across the searchable fields,
// plus an exact category match. The search text is quoted so regex
// metacharacters in user input stay literal.
func productFilter(q services.ProductQuery) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"name": re},
			{"description": re},
			{"category": re},
			{"subcategory": re},
			{"specs": re},
		}
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	return filter
}

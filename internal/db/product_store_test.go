package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rohanz/shopkart/internal/services"
)

func TestProductFilterEmptyQuery(t *testing.T) {
	filter := productFilter(services.ProductQuery{})
	assert.Empty(t, filter)
}

func TestProductFilterCategory(t *testing.T) {
	filter := productFilter(services.ProductQuery{Category: "Gloves"})
	assert.Equal(t, bson.M{"category": "Gloves"}, filter)
}

func TestProductFilterSearchSpansFields(t *testing.T) {
	filter := productFilter(services.ProductQuery{Search: "carbon"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 5)

	fields := map[string]bool{}
	for _, clause := range or {
		for field, v := range clause {
			fields[field] = true
			re, ok := v.(primitive.Regex)
			require.True(t, ok, "field %s should hold a regex", field)
			assert.Equal(t, "carbon", re.Pattern)
			assert.Equal(t, "i", re.Options, "matching is case-insensitive")
		}
	}
	for _, field := range []string{"name", "description", "category", "subcategory", "specs"} {
		assert.True(t, fields[field], "search must cover %s", field)
	}
}

func TestProductFilterQuotesRegexMeta(t *testing.T) {
	filter := productFilter(services.ProductQuery{Search: "100% (cotton)"})

	or := filter["$or"].([]bson.M)
	re := or[0]["name"].(primitive.Regex)
	assert.Equal(t, `100% \(cotton\)`, re.Pattern,
		"user input is matched literally, not as a pattern")
}

func TestProductFilterCombinesSearchAndCategory(t *testing.T) {
	filter := productFilter(services.ProductQuery{Search: "pro", Category: "Gloves"})
	assert.Equal(t, "Gloves", filter["category"])
	assert.NotNil(t, filter["$or"])
}

package mongodb

import (
	"errors"
	"testing"

	"github.com/erp/catalog/internal/domain/catalog"
	"github.com/erp/catalog/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestTranslateError(t *testing.T) {
	t.Run("no documents", func(t *testing.T) {
		assert.ErrorIs(t, translateError(mongo.ErrNoDocuments, nil), shared.ErrNotFound)
	})

	t.Run("duplicate key names the field", func(t *testing.T) {
		name := "Bakery"
		err := mongo.WriteException{WriteErrors: []mongo.WriteError{{
			Code:    11000,
			Message: `E11000 duplicate key error collection: catalog.categories index: name_1 dup key: { name: "Bakery" }`,
		}}}

		var dup *shared.DuplicateKeyError
		require.ErrorAs(t, translateError(err, &name), &dup)
		assert.Equal(t, "name", dup.Field)
		assert.Equal(t, "Bakery", dup.Value)
		assert.Equal(t, "name already exists", dup.Error())
	})

	t.Run("other errors pass through", func(t *testing.T) {
		boom := errors.New("boom")
		assert.Same(t, boom, translateError(boom, nil))
		assert.NoError(t, translateError(nil, nil))
	})
}

func TestUpdateDocument(t *testing.T) {
	u := categoryUpdate(ptr("Breads"), nil, nil, ptr(true), nil, nil)

	doc := u.document()

	require.Len(t, doc, 2)
	assert.Equal(t, "$set", doc[0].Key)
	assert.Equal(t, bson.D{{Key: "name", Value: "Breads"}, {Key: "taxApplicability", Value: true}}, doc[0].Value)
	assert.Equal(t, "$unset", doc[1].Key)
	assert.Len(t, doc[1].Value, 4)
}

func TestUpdateDocument_OnlySet(t *testing.T) {
	u := &update{}
	u.field("totalAmount", 0.0, false)

	doc := u.document()

	require.Len(t, doc, 1)
	assert.Equal(t, "$set", doc[0].Key)
}

func TestSearchFilter(t *testing.T) {
	assert.Empty(t, searchFilter(""))

	f := searchFilter("c++ (large)")
	require.Len(t, f, 1)
	assert.Equal(t, primitive.Regex{Pattern: `c\+\+ \(large\)`, Options: "i"}, f[0].Value)
}

func TestLookupFilter(t *testing.T) {
	id := shared.NewID()
	assert.Equal(t, bson.D{{Key: "_id", Value: id}}, lookupFilter(catalog.LookupByID(id)))
	assert.Equal(t, bson.D{{Key: "name", Value: "Bakery"}}, lookupFilter(catalog.LookupByName("Bakery")))
}

func ptr[T any](v T) *T {
	return &v
}

package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseID(t *testing.T) {
	id, err := ParseID("65a1b2c3d4e5f6a7b8c9d0e1")
	require.NoError(t, err)
	assert.Equal(t, "65a1b2c3d4e5f6a7b8c9d0e1", id.Hex())
	assert.False(t, id.IsZero())

	for _, bad := range []string{"", "Bakery", "65a1b2c3d4e5", "zza1b2c3d4e5f6a7b8c9d0e1"} {
		_, err := ParseID(bad)
		assert.Error(t, err, bad)
		assert.False(t, IsValidID(bad), bad)
	}
}

func TestID_JSON(t *testing.T) {
	id := MustParseID("65a1b2c3d4e5f6a7b8c9d0e1")

	data, err := json.Marshal(struct {
		ID ID `json:"id"`
	}{id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"65a1b2c3d4e5f6a7b8c9d0e1"}`, string(data))

	var decoded struct {
		ID ID `json:"id"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, id, decoded.ID)

	assert.Error(t, json.Unmarshal([]byte(`{"id":"nope"}`), &decoded))
}

func TestID_BSONStoresObjectID(t *testing.T) {
	id := NewID()

	raw, err := bson.Marshal(bson.M{"_id": id})
	require.NoError(t, err)

	var native struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	require.NoError(t, bson.Unmarshal(raw, &native))
	assert.Equal(t, id.Hex(), native.ID.Hex())

	var back struct {
		ID ID `bson:"_id"`
	}
	require.NoError(t, bson.Unmarshal(raw, &back))
	assert.Equal(t, id, back.ID)
}

func TestID_SQL(t *testing.T) {
	id := NewID()

	v, err := id.Value()
	require.NoError(t, err)
	assert.Equal(t, id.Hex(), v)

	var scanned ID
	require.NoError(t, scanned.Scan(id.Hex()))
	assert.Equal(t, id, scanned)

	require.NoError(t, scanned.Scan([]byte(id.Hex())))
	assert.Equal(t, id, scanned)

	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsZero())

	assert.Error(t, scanned.Scan(42))
}

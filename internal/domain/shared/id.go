package shared

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ID is the store-assigned opaque identifier of a catalog entity.
// It is a MongoDB ObjectID; relational stores keep its 24-char hex form.
type ID primitive.ObjectID

// NilID is the zero identifier
var NilID ID

// NewID generates a new identifier
func NewID() ID {
	return ID(primitive.NewObjectID())
}

// ParseID parses the 24-character hex form of an identifier
func ParseID(s string) (ID, error) {
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return NilID, fmt.Errorf("invalid identifier %q: %w", s, err)
	}
	return ID(oid), nil
}

// MustParseID is like ParseID but panics on malformed input. Intended for tests.
func MustParseID(s string) ID {
	id, err := ParseID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// IsValidID reports whether s is a well-formed identifier
func IsValidID(s string) bool {
	return primitive.IsValidObjectID(s)
}

// Hex returns the 24-character hex form
func (id ID) Hex() string {
	return primitive.ObjectID(id).Hex()
}

// String implements fmt.Stringer
func (id ID) String() string {
	return id.Hex()
}

// IsZero reports whether the identifier is unset
func (id ID) IsZero() bool {
	return id == NilID
}

// MarshalJSON implements json.Marshaler
func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.Hex())
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// MarshalBSONValue stores the identifier as a native ObjectID
func (id ID) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(primitive.ObjectID(id))
}

// UnmarshalBSONValue reads a native ObjectID
func (id *ID) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	var oid primitive.ObjectID
	if err := (bson.RawValue{Type: t, Value: data}).Unmarshal(&oid); err != nil {
		return err
	}
	*id = ID(oid)
	return nil
}

// Value implements driver.Valuer for relational stores
func (id ID) Value() (driver.Value, error) {
	return id.Hex(), nil
}

// Scan implements sql.Scanner for relational stores
func (id *ID) Scan(value any) error {
	var s string
	switch v := value.(type) {
	case nil:
		*id = NilID
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("cannot scan %T into ID", value)
	}
	parsed, err := ParseID(s)
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

package mongodb

import (
	"errors"
	"regexp"

	"github.com/erp/catalog/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// dupKeyField extracts the first key of the "dup key: { name: ... }" part
// of an E11000 server message.
var dupKeyField = regexp.MustCompile(`dup key: \{ ?"?([A-Za-z0-9_.]+)"?\s*:`)

// translateError maps driver errors onto the domain error taxonomy
func translateError(err error, value *string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return shared.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		var v any
		if value != nil {
			v = *value
		}
		return shared.NewDuplicateKeyError(duplicateField(err), v)
	default:
		return err
	}
}

func duplicateField(err error) string {
	if m := dupKeyField.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}
	return "name"
}

// update accumulates a $set/$unset pair where nil values become $unset
type update struct {
	set   bson.D
	unset bson.D
}

func (u *update) field(key string, value any, isNil bool) {
	if isNil {
		u.unset = append(u.unset, bson.E{Key: key, Value: ""})
		return
	}
	u.set = append(u.set, bson.E{Key: key, Value: value})
}

func setString(u *update, key string, v *string) {
	if v == nil {
		u.field(key, nil, true)
		return
	}
	u.field(key, *v, false)
}

func setFloat(u *update, key string, v *float64) {
	if v == nil {
		u.field(key, nil, true)
		return
	}
	u.field(key, *v, false)
}

func setBool(u *update, key string, v *bool) {
	if v == nil {
		u.field(key, nil, true)
		return
	}
	u.field(key, *v, false)
}

// document renders the update, omitting empty operators which the server rejects
func (u *update) document() bson.D {
	doc := bson.D{}
	if len(u.set) > 0 {
		doc = append(doc, bson.E{Key: "$set", Value: u.set})
	}
	if len(u.unset) > 0 {
		doc = append(doc, bson.E{Key: "$unset", Value: u.unset})
	}
	return doc
}

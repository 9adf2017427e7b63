package persistence

import (
	"errors"
	"strings"

	"github.com/erp/catalog/internal/domain/shared"
	"gorm.io/gorm"
)

// translateError maps GORM errors onto the domain error taxonomy
func translateError(err error, name *string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		var value any
		if name != nil {
			value = *name
		}
		return shared.NewDuplicateKeyError("name", value)
	default:
		return err
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching term literally anywhere
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

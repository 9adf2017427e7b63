package catalog

import "github.com/erp/catalog/internal/domain/shared"

// LookupKey addresses a single entity either by identifier or by name
type LookupKey struct {
	id   shared.ID
	name string
	byID bool
}

// ParseLookupKey treats raw as an identifier when it is well-formed,
// otherwise as a name.
func ParseLookupKey(raw string) LookupKey {
	if id, err := shared.ParseID(raw); err == nil {
		return LookupByID(id)
	}
	return LookupByName(raw)
}

// LookupByID creates a key that matches on identifier
func LookupByID(id shared.ID) LookupKey {
	return LookupKey{id: id, byID: true}
}

// LookupByName creates a key that matches on exact name
func LookupByName(name string) LookupKey {
	return LookupKey{name: name}
}

// ID returns the identifier and true if the key is an identifier lookup
func (k LookupKey) ID() (shared.ID, bool) {
	return k.id, k.byID
}

// Name returns the name for a name lookup
func (k LookupKey) Name() string {
	return k.name
}

// String implements fmt.Stringer
func (k LookupKey) String() string {
	if k.byID {
		return "id:" + k.id.Hex()
	}
	return "name:" + k.name
}

package shared

import (
	"time"
)

// BaseEntity provides the identity and timestamps shared by all catalog entities
type BaseEntity struct {
	ID        ID        `bson:"_id" gorm:"type:varchar(24);primaryKey"`
	CreatedAt time.Time `bson:"createdAt" gorm:"not null"`
	UpdatedAt time.Time `bson:"updatedAt" gorm:"not null"`
}

// GetID returns the entity ID
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// NewBaseEntity creates a new base entity with generated ID
func NewBaseEntity() BaseEntity {
	now := time.Now().UTC().Truncate(time.Millisecond)
	return BaseEntity{
		ID:        NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the update timestamp
func (e *BaseEntity) Touch() {
	e.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
}

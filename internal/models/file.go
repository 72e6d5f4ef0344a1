package models

import (
	"time"

	"github.com/google/uuid"
)

// File is immutable metadata for one uploaded blob. The ID doubles as the
// object key in the blob store, so it is generated in-process before the
// blob write rather than by the database.
type File struct {
	ID           uuid.UUID `json:"fileId" gorm:"type:uuid;primaryKey"`
	OwnerID      uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	OriginalName string    `json:"originalName" gorm:"not null"`
	Size         int64     `json:"size" gorm:"not null"` // bytes
	MimeType     string    `json:"mimeType" gorm:"not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

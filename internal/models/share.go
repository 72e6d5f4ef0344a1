package models

import (
	"time"

	"github.com/google/uuid"
)

// Share is a tokenized link to a File. The token is the only external
// address of a share; the row ID stays internal. FileID is a weak reference:
// deleting a file removes its shares, but a share never owns the file.
type Share struct {
	ID             uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FileID         uuid.UUID  `json:"fileId" gorm:"type:uuid;index;not null"`
	Token          string     `json:"shareToken" gorm:"uniqueIndex;not null"` // secure random token
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
	MaxDownloads   *int       `json:"maxDownloads,omitempty"` // nil = unlimited
	DownloadCount  int        `json:"downloadCount" gorm:"not null;default:0"`
	LastDownloadAt *time.Time `json:"lastDownloadAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt" gorm:"autoCreateTime"`
}

// ShareState classifies a share at a point in time. It is derived, never
// stored; persisting it would go stale the moment the clock or the counter
// moves.
type ShareState string

const (
	ShareActive    ShareState = "active"
	ShareExpired   ShareState = "expired"
	ShareExhausted ShareState = "exhausted"
)

// StateAt is the single source of truth for share status. The download gate,
// the stats endpoint and the owner views all call this; nothing recomputes
// expiry or limits on its own.
func (s *Share) StateAt(now time.Time) ShareState {
	if s.ExpiresAt != nil && !now.Before(*s.ExpiresAt) {
		return ShareExpired
	}
	if s.MaxDownloads != nil && s.DownloadCount >= *s.MaxDownloads {
		return ShareExhausted
	}
	return ShareActive
}

// ActiveAt reports whether a download may succeed at the given instant.
func (s *Share) ActiveAt(now time.Time) bool {
	return s.StateAt(now) == ShareActive
}

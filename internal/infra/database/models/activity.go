package models

import (
	"time"
)

// Activity is a serialized event keyed by the hash of its member id.
type Activity struct {
	Key       string     `json:"key" gorm:"primaryKey;type:text"`
	Value     []byte     `json:"value" gorm:"type:bytea;not null"`
	ExpiresAt *time.Time `json:"expiresAt" gorm:"type:timestamp with time zone;index"`
	CDate     time.Time  `json:"cdate" gorm:"->;<-:create;type:timestamp with time zone;not null;default:clock_timestamp()"`
}

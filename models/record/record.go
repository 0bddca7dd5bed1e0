package record

import (
	"time"
)

// Record is one persisted collection stored as a JSON blob under a fixed key.
// The store treats values as opaque; schema validation happens on read.
type Record struct {
	Key       string    `gorm:"primaryKey;type:varchar(100)" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Record model
func (Record) TableName() string {
	return "records"
}

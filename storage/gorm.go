package storage

import (
	"errors"

	recordModel "ticket-booking/models/record"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps the collections as key/value rows in the records table.
type GormStore struct {
	typedStore
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	gs := &GormStore{db: db}
	gs.typedStore.raw = gs
	return gs
}

func (gs *GormStore) get(key string) ([]byte, error) {
	var rec recordModel.Record
	err := gs.db.Where("key = ?", key).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return []byte(rec.Value), nil
}

func (gs *GormStore) set(key string, value []byte) error {
	rec := recordModel.Record{Key: key, Value: string(value)}
	return gs.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&rec).Error
}

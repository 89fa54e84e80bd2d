package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"plate-service/internal/model"
)

const insertBatchSize = 200

type PlateRepository struct {
	db *gorm.DB
}

func NewPlateRepository(db *gorm.DB) *PlateRepository {
	return &PlateRepository{db: db}
}

// Replace stores collection and its entries as the only saved collection.
// Entry IDs and collection references are filled in place.
func (r *PlateRepository) Replace(ctx context.Context, collection *model.PlateCollection, entries []model.PlateEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := deleteAll(tx); err != nil {
			return err
		}
		if err := tx.Create(collection).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].ID = uuid.Nil
			entries[i].CollectionID = collection.ID
		}
		return tx.CreateInBatches(&entries, insertBatchSize).Error
	})
}

// GetLatest returns the most recently saved collection, or nil when nothing
// is stored.
func (r *PlateRepository) GetLatest(ctx context.Context) (*model.PlateCollection, error) {
	var collection model.PlateCollection
	err := r.db.WithContext(ctx).Order("saved_at DESC").First(&collection).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &collection, nil
}

func (r *PlateRepository) ListEntries(ctx context.Context, collectionID uuid.UUID) ([]model.PlateEntry, error) {
	var entries []model.PlateEntry
	err := r.db.WithContext(ctx).
		Where("collection_id = ?", collectionID).
		Order("position ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PlateRepository) Clear(ctx context.Context) error {
	return r.db.WithContext(ctx).Transaction(deleteAll)
}

func deleteAll(tx *gorm.DB) error {
	if err := tx.Where("1 = 1").Delete(&model.PlateEntry{}).Error; err != nil {
		return err
	}
	return tx.Where("1 = 1").Delete(&model.PlateCollection{}).Error
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlateCollection is one imported set of plates. Only the latest collection
// is kept.
type PlateCollection struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	Source   string    `gorm:"type:text;not null;default:''" json:"source"`
	LoadedAt time.Time `gorm:"not null" json:"loaded_at"`
	SavedAt  time.Time `gorm:"not null;index" json:"saved_at"`
}

func (PlateCollection) TableName() string {
	return "plate_collections"
}

func (c *PlateCollection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// PlateEntry is one unique plate of a collection together with every source
// row that carried it.
type PlateEntry struct {
	ID           uuid.UUID                     `gorm:"type:varchar(36);primaryKey" json:"id"`
	CollectionID uuid.UUID                     `gorm:"type:varchar(36);not null;index" json:"collection_id"`
	Position     int                           `gorm:"not null" json:"position"`
	Key          string                        `gorm:"column:plate_key;type:text;not null" json:"key"`
	Plate        string                        `gorm:"type:text;not null" json:"plate"`
	Rows         datatypes.JSONSlice[PlateRow] `gorm:"column:source_rows;type:text;not null" json:"rows"`
}

func (PlateEntry) TableName() string {
	return "plate_entries"
}

func (e *PlateEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// PlateRow is a source line that produced a plate. Fields keep the column
// order of the import.
type PlateRow struct {
	Line   int     `json:"line"`
	Fields []Field `json:"fields"`
}

type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

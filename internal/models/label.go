package models

import "time"

// Label is global: it is not owned by any user.
type Label struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Color     string    `gorm:"size:50;not null" json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// CardLabel is the card_labels join row.
type CardLabel struct {
	CardID  uint `gorm:"primaryKey;autoIncrement:false"`
	LabelID uint `gorm:"primaryKey;autoIncrement:false"`
}

package models

import "time"

// Board is owned by exactly one user.
type Board struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Lists []List `gorm:"foreignKey:BoardID;constraint:OnDelete:CASCADE" json:"lists,omitempty"`
}

// List is an ordered column on a board.
type List struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BoardID   uint      `gorm:"index;not null" json:"board_id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Position  int       `gorm:"not null" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Cards []Card `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"cards,omitempty"`
}

// Card is an ordered item in a list.
type Card struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ListID      uint      `gorm:"index;not null" json:"list_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Position    int       `gorm:"not null" json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Labels []Label `gorm:"many2many:card_labels;" json:"labels,omitempty"`
}

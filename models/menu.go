package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Slug      string    `json:"slug" gorm:"uniqueIndex;not null"`
	Title     string    `json:"title" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MenuItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	Name       string          `json:"name" gorm:"not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(6,2);not null"`
	CategoryID *uint           `json:"category_id"`
	Category   *Category       `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Featured   bool            `json:"featured" gorm:"default:false"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

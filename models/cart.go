package models

import (
	"github.com/shopspring/decimal"
)

// Cart is one pending line item awaiting checkout. (user, menuitem)
// is deliberately not unique: adding the same dish twice keeps two
// rows, and checkout sums row prices either way.
type Cart struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	UserID     uint            `json:"user_id" gorm:"index;not null"`
	MenuItemID uint            `json:"menuitem_id" gorm:"not null"`
	MenuItem   MenuItem        `json:"menuitem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(6,2);not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(6,2);not null"`
}

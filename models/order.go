package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is the immutable snapshot of a checkout. Only status and
// delivery_crew may change after creation; status=false means out for
// delivery (or not yet assigned), status=true means delivered.
type Order struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	UserID         uint            `json:"user_id" gorm:"index;not null"`
	User           *User           `json:"user,omitempty" gorm:"foreignKey:UserID"`
	DeliveryCrewID *uint           `json:"delivery_crew"`
	DeliveryCrew   *User           `json:"-" gorm:"foreignKey:DeliveryCrewID"`
	Status         bool            `json:"status" gorm:"index;default:false"`
	Total          decimal.Decimal `json:"total" gorm:"type:decimal(6,2);default:0"`
	Date           time.Time       `json:"date" gorm:"index"`
	Items          []OrderItem     `json:"order_items,omitempty" gorm:"foreignKey:OrderID"`
}

// OrderItem copies quantity and prices from the cart row it was
// created from; it is never recomputed from current catalog prices.
type OrderItem struct {
	ID         uint            `json:"id" gorm:"primaryKey"`
	OrderID    uint            `json:"order_id" gorm:"index;not null"`
	MenuItemID uint            `json:"menuitem_id" gorm:"not null"`
	MenuItem   MenuItem        `json:"menuitem,omitempty" gorm:"foreignKey:MenuItemID"`
	Quantity   int             `json:"quantity" gorm:"not null"`
	UnitPrice  decimal.Decimal `json:"unit_price" gorm:"type:decimal(6,2);not null"`
	Price      decimal.Decimal `json:"price" gorm:"type:decimal(6,2);not null"`
}

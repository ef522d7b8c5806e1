package domain

import "time"

// PaymentStatusSuccess is stored on every order. No payment is processed.
const PaymentStatusSuccess = "Success"

// Order a checkout submission. Product, description and price are free text
// copied from the request, not references to a MenuItem.
type Order struct {
	ID            string    `gorm:"primaryKey;size:32" json:"_id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Street        string    `json:"street" bson:"street"`
	City          string    `json:"city" bson:"city"`
	Pincode       string    `gorm:"size:32" json:"pincode" bson:"pincode"`
	Phone         string    `gorm:"size:32" json:"phone" bson:"phone"`
	Product       string    `json:"product" bson:"product"`
	Description   string    `json:"description" bson:"description"`
	Price         string    `gorm:"size:32" json:"price" bson:"price"`
	PaymentStatus string    `gorm:"size:32;default:Success" json:"paymentStatus" bson:"paymentStatus"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt"`
}

// TableName Specify table name
func (Order) TableName() string {
	return "food_order"
}

func (o *Order) GetID() string   { return o.ID }
func (o *Order) SetID(id string) { o.ID = id }

package domain

// MenuItem a dish offered on the menu. Price is display text, e.g. "$8.99".
type MenuItem struct {
	ID          string `gorm:"primaryKey;size:32" json:"_id" bson:"_id"`
	FoodName    string `gorm:"index" json:"foodName" bson:"foodName"`
	Description string `json:"description" bson:"description"`
	Price       string `gorm:"size:32" json:"price" bson:"price"`
	Image       string `gorm:"size:1024" json:"image" bson:"image"` // filename or URL
}

// TableName Specify table name
func (MenuItem) TableName() string {
	return "menu_item"
}

func (m *MenuItem) GetID() string   { return m.ID }
func (m *MenuItem) SetID(id string) { m.ID = id }

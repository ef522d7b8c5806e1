package domain

// ContactIDMaxLen matches the id column size
const ContactIDMaxLen = 64

// ContactMessage a contact form submission.
//
// Password is stored as submitted. The field exists for compatibility with
// the existing contact form and must not be read as a credential anywhere.
type ContactMessage struct {
	ID       string `gorm:"primaryKey;size:64" json:"_id" bson:"_id"`
	Name     string `json:"name" bson:"name"`
	Email    string `gorm:"index" json:"email" bson:"email"`
	Password string `json:"password" bson:"password"`
	About    string `json:"about" bson:"about"`
}

// TableName Specify table name
func (ContactMessage) TableName() string {
	return "contact_message"
}

func (m *ContactMessage) GetID() string   { return m.ID }
func (m *ContactMessage) SetID(id string) { m.ID = id }

package domain

// Entity is a flat record addressed by an opaque string id.
type Entity interface {
	GetID() string
	SetID(id string)
	TableName() string
}

var Tables = []interface{}{
	&MenuItem{},
	&ContactMessage{},
	&Order{},
}

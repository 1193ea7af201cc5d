package models

type Department struct {
	ID       string `bson:"_id,omitempty"`
	Name     string `bson:"name"`
	Surgical bool   `bson:"surgical"`
	Active   bool   `bson:"active"`
}

package model

type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`

	// Products is populated only when the association is included.
	Products []Product `json:"products"`
}

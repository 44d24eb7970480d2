package models

// Item is a row of the items table. OwnerEmail references User.Email and is
// never exposed over the API.
type Item struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	OwnerEmail  string `json:"-"`
}

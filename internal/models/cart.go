package models

// Cart is stored once per user email. Items are snapshots of the dish taken
// when the line was first added.
type Cart struct {
	Email string     `json:"email"`
	Items []CartItem `json:"items"`
}

type CartItem struct {
	DishID      string  `json:"dishId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Quantity    int     `json:"quantity"`
}

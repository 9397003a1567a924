package model

import "time"

type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	// PasswordHash holds the bcrypt digest, never the plaintext.
	PasswordHash string `json:"-"`
}

type Admin struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

type Part struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	PartID     int       `json:"part_id"`
	Quantity   int       `json:"quantity"`
	TotalPrice float64   `json:"total_price"`
	OrderDate  time.Time `json:"order_date"`
}

// UserOrder is an order as returned to its owner, joined with the part name.
type UserOrder struct {
	Order
	PartName *string `json:"part_name"`
}

// AdminOrder is an order as listed for the admin, joined with both names.
type AdminOrder struct {
	Order
	UserName *string `json:"user_name"`
	PartName *string `json:"part_name"`
}

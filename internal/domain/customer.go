package domain

// Customer is a registered buyer. Only the address is updatable after
// registration.
type Customer struct {
	ID        int64  `json:"id" db:"id"`
	FirstName string `json:"first_name" db:"first_name"`
	LastName  string `json:"last_name" db:"last_name"`
	Address   string `json:"address" db:"address"`
	Phone     int64  `json:"phone" db:"phone"`
	Email     string `json:"email" db:"email"`
}

package models

// User represents a registered account backed by the users CSV file.
type User struct {
	Email     string `json:"email"`
	Password  string `json:"-"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// Pioneer represents an early-access sign-up.
type Pioneer struct {
	ID           string `json:"id"`
	RegisteredAt string `json:"registeredAt"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
}

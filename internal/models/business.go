package models

// Business represents a student entrepreneurship offering listings.
type Business struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Email       string `json:"email"`
	OwnerName   string `json:"ownerName"`
	OwnerCareer string `json:"ownerCareer"`
}

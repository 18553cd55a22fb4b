package models

// Admin is the single administrator account.
type Admin struct {
	Email        string `json:"email" bson:"email"`
	Password     string `json:"-" bson:"password"` // bcrypt hash
	RegisteredAt string `json:"registeredAt" bson:"registeredAt"`
}

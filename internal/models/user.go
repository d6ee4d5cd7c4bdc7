package models

// User represents an internal user model for the application/database.
type User struct {
	ID             string `bson:"-" mapstructure:"id" db:"id"`
	Username       string `bson:"username" mapstructure:"username" db:"username"`
	HashedPassword string `bson:"password" mapstructure:"password" db:"password"`
}

// NewUser creates a new User instance with the given username and password.
// Note: No validation is performed here.
func NewUser(username string, hashedPassword string) *User {
	return &User{
		Username:       username,
		HashedPassword: hashedPassword,
	}
}

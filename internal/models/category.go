package models

// Category is a recipe category. Categories are seeded outside the application.
type Category struct {
	ID           string `db:"id"`
	CategoryName string `db:"category_name"`
}

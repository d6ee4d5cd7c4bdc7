// Package constants names the collections (tables, for Postgres) shared by
// the repositories.
package constants

const (
	UsersCollection      = "users"
	RecipesCollection    = "recipes"
	CategoriesCollection = "categories"
)

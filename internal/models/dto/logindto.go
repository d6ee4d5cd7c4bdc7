package dto

// LoginRequestDTO is the login form.
type LoginRequestDTO struct {
	Username string `mapstructure:"username" validate:"required,max=64"`
	Password string `mapstructure:"password" validate:"required,maxbytes=72"`
}

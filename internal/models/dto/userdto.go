package dto

// UserSignupRequestDTO is the registration form. bcrypt only accepts 72
// bytes, so the password limit is in bytes rather than characters.
type UserSignupRequestDTO struct {
	Username string `mapstructure:"username" validate:"required,min=3,max=64,singleword"`
	Password string `mapstructure:"password" validate:"required,min=5,maxbytes=72"`
}

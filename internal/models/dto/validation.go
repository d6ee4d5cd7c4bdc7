package dto

import (
	"strconv"
	"unicode"

	structValidator "github.com/go-playground/validator/v10"
)

const (
	// MaxBytesTag limits a string field by its UTF-8 length, e.g. maxbytes=72.
	MaxBytesTag = "maxbytes"
	// SingleWordTag rejects whitespace and non-printable characters.
	SingleWordTag = "singleword"
)

// RegisterValidations adds the custom tags used by the form DTOs to v.
func RegisterValidations(v *structValidator.Validate) error {
	if err := v.RegisterValidation(MaxBytesTag, maxBytes); err != nil {
		return err
	}
	return v.RegisterValidation(SingleWordTag, singleWord)
}

func maxBytes(fl structValidator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= limit
}

func singleWord(fl structValidator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

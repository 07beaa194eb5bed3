package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

var usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)

// reserved usernames collide with routing (GET /users/me).
var reservedUsernames = map[string]struct{}{
	"me": {},
}

func InitValidator() {
	Validate = validator.New()
	_ = Validate.RegisterValidation("username", validateUsername)
}

func validateUsername(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if !usernamePattern.MatchString(value) {
		return false
	}
	_, reserved := reservedUsernames[strings.ToLower(value)]
	return !reserved
}

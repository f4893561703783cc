package utils

import (
	"doctor-appointment-service/internal/pkg/constvars"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	specialCharRegex = regexp.MustCompile(`[!@#~$%^&*()+|_{}<>?\-=\[\].,;:'"/\\]`)
	uppercaseRegex   = regexp.MustCompile(`[A-Z]`)
)

func init() {
	validate = validator.New()
	validate.RegisterValidation("password", validatePassword)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	hasMinLen := len(password) >= 8
	return hasMinLen && specialCharRegex.MatchString(password) && uppercaseRegex.MatchString(password)
}

// IsAllowedImageContentType reports whether an uploaded profile image can be stored.
func IsAllowedImageContentType(contentType string) bool {
	return contentType == constvars.MIMEImageJPEG || contentType == constvars.MIMEImagePNG
}

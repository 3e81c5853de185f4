package validator

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

var (
	sanitizer *bluemonday.Policy

	handleRegex   = regexp.MustCompile(`^[a-z0-9-]+$`)
	hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)
)

func Init() {
	sanitizer = bluemonday.UGCPolicy()

	if engine, ok := binding.Validator.Engine().(*validator.Validate); ok {
		registerCustomValidations(engine)
	}
}

func registerCustomValidations(v *validator.Validate) {
	v.RegisterValidation("handle", validateHandle)
	v.RegisterValidation("hex_color", validateHexColor)
	v.RegisterValidation("no_html", validateNoHTML)
}

// SanitizeHTML keeps the user-generated-content subset of tags, for rich text
// block bodies.
func SanitizeHTML(html string) string {
	return sanitizer.Sanitize(html)
}

// SanitizeString strips all markup, for plain-text fields like headings.
func SanitizeString(s string) string {
	return bluemonday.StrictPolicy().Sanitize(s)
}

// IsValidHandle accepts URL-safe page handles like "summer-sale". An empty
// handle means the default layout for the page type.
func IsValidHandle(handle string) bool {
	if handle == "" {
		return true
	}
	return handleRegex.MatchString(handle)
}

// IsValidHexColor accepts #rgb, #rrggbb and #rrggbbaa forms.
func IsValidHexColor(color string) bool {
	return hexColorRegex.MatchString(color)
}

func validateHandle(fl validator.FieldLevel) bool {
	return IsValidHandle(fl.Field().String())
}

func validateHexColor(fl validator.FieldLevel) bool {
	return IsValidHexColor(fl.Field().String())
}

func validateNoHTML(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return !strings.Contains(value, "<") && !strings.Contains(value, ">")
}

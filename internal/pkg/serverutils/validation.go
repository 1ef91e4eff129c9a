package serverutils

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("sessionid", func(fl validator.FieldLevel) bool {
		return sessionIDPattern.MatchString(fl.Field().String())
	})
	return v
}

type FieldError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// ValidateRequest checks the validate tags of req and returns a
// VALIDATION_ERROR AppError listing every failing field.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return NewBadRequestError(CodeValidation, err.Error())
	}

	details := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: fieldMessage(fe),
		})
	}

	appErr := NewBadRequestError(CodeValidation, "Request validation failed")
	appErr.Details = details
	return appErr
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "sessionid":
		return fmt.Sprintf("%s may only contain letters, digits, '-' and '_'", fe.Field())
	default:
		return fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag())
	}
}

var (
	suspiciousPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)<\s*script`),
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)\bon\w+\s*=`),
		regexp.MustCompile(`(?i)\beval\s*\(`),
		regexp.MustCompile(`(?i)\bfunction\s*\(`),
	}
	angleBrackets = regexp.MustCompile(`[<>]`)
	jsProtocol    = regexp.MustCompile(`(?i)javascript:`)
	eventHandler  = regexp.MustCompile(`(?i)\bon\w+\s*=`)

	// "bags < $100" keeps its price cue once the brackets are stripped.
	lessThanPrice    = regexp.MustCompile(`<=?\s*(\$?\s?\d)`)
	greaterThanPrice = regexp.MustCompile(`>=?\s*(\$?\s?\d)`)
)

const maxMessageLength = 500

// SanitizeMessage strips markup from a chat message. Script-like input is
// rejected with SUSPICIOUS_INPUT, and a message with nothing left with
// EMPTY_QUERY.
func SanitizeMessage(msg string) (string, error) {
	for _, p := range suspiciousPatterns {
		if p.MatchString(msg) {
			return "", NewBadRequestError(CodeSuspiciousInput, "Message contains invalid characters")
		}
	}

	clean := lessThanPrice.ReplaceAllString(msg, "under $1")
	clean = greaterThanPrice.ReplaceAllString(clean, "over $1")
	clean = angleBrackets.ReplaceAllString(clean, "")
	clean = jsProtocol.ReplaceAllString(clean, "")
	clean = eventHandler.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)
	if r := []rune(clean); len(r) > maxMessageLength {
		clean = string(r[:maxMessageLength])
	}

	if clean == "" {
		return "", NewBadRequestError(CodeEmptyQuery, "Message cannot be empty after sanitization")
	}
	return clean, nil
}

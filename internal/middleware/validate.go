package middleware

import (
	"errors"
	"regexp"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var languageName = regexp.MustCompile(`^\p{L}+(?: \p{L}+)*$`)

// Validator is a struct that holds the validator instance
type Validator struct {
	validate *validator.Validate
}

// NewValidator creates a validator with the service's custom tags registered.
func NewValidator() *Validator {
	v := validator.New()
	// "language": letters separated by single spaces, e.g. "Traditional Chinese".
	_ = v.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		return languageName.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate validates the struct
func (v *Validator) Validate(s interface{}) error {
	return v.validate.Struct(s)
}

// ValidateQuery parses the query string into a fresh T on every request,
// validates it, and stores the *T in c.Locals(key).
func ValidateQuery[T any](key string) fiber.Handler {
	v := NewValidator()

	return func(c *fiber.Ctx) error {
		params := new(T)
		if err := c.QueryParser(params); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid query parameters",
				"msg":   err.Error(),
			})
		}

		if err := v.Validate(params); err != nil {
			var verrs validator.ValidationErrors
			if !errors.As(err, &verrs) {
				return err
			}

			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}

			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":  "Invalid query parameters",
				"fields": fields,
			})
		}

		c.Locals(key, params)
		return c.Next()
	}
}

// Query returns the *T stored by ValidateQuery, or a zero T when absent.
func Query[T any](c *fiber.Ctx, key string) *T {
	if params, ok := c.Locals(key).(*T); ok {
		return params
	}
	return new(T)
}

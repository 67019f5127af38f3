package http

import (
	"math"
	"reflect"
	"regexp"
	"strings"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/user"
	"github.com/IykeSol/iykesol-crypto-bank/pkg/id"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Code    string       `json:"code,omitempty"`
	Details []FieldError `json:"details,omitempty"`
	// set on payment intents larger than what is owed
	RemainingBalance string `json:"remainingBalance,omitempty"`
}

var (
	reTxHash = regexp.MustCompile(`^0x[A-Fa-f0-9]{64}$`)
	reAddr   = regexp.MustCompile(`^0x[A-Fa-f0-9]{40}$`)
)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json names, not Go field names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			for _, tag := range []string{"param", "query"} {
				if n := f.Tag.Get(tag); n != "" {
					return n
				}
			}
			return f.Name
		}
		return name
	})
	// money travels as decimal.Decimal; numeric tags see it as a float
	v.RegisterCustomTypeFunc(func(fv reflect.Value) any {
		if d, ok := fv.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	// loan and user ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return id.Valid(fl.Field().String())
	})
	_ = v.RegisterValidation("intlike", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-math.Round(f)) < 1e-9
	})
	// max 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	_ = v.RegisterValidation("txhash", func(fl validator.FieldLevel) bool {
		return reTxHash.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("ethaddr", func(fl validator.FieldLevel) bool {
		return reAddr.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
		return user.StrongPassword(fl.Field().String())
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "intlike":
			out = append(out, FieldError{Field: field, Message: "must be an integer value"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "txhash":
			out = append(out, FieldError{Field: field, Message: "must be 0x followed by 64 hex chars"})
		case "ethaddr":
			out = append(out, FieldError{Field: field, Message: "must be 0x followed by 40 hex chars"})
		case "strongpw":
			out = append(out, FieldError{Field: field, Message: "must be at least 8 chars with uppercase, number, and special character"})
		case "email":
			out = append(out, FieldError{Field: field, Message: "must be a valid email"})
		case "oneof":
			out = append(out, FieldError{Field: field, Message: "must be one of: " + e.Param()})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}

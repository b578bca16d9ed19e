package validator

import (
	"fmt"
	"regexp"
	"time"

	"github.com/filmoteka/movie-catalog/internal/domain"
	"github.com/go-playground/validator/v10"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Messages produced for failed validation rules. Tests rely on these formats.
const (
	ErrRequired    = "is required"
	ErrMin         = "must be at least %s"
	ErrMax         = "must be at most %s"
	ErrMovieStatus = "must be a valid movie status"
	ErrCountryCode = "must be a 2 or 3 letter ISO country code"
	ErrReleaseDate = "must not be more than one year in the future"
	ErrMoney       = "must be zero or greater"
)

var countryCodeRgx = regexp.MustCompile(`^[A-Za-z]{2,3}$`)

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("movie_status", validateMovieStatus)
	validator.RegisterValidation("country_code", validateCountryCode)
	validator.RegisterValidation("release_date", validateReleaseDate)
	validator.RegisterValidation("money", validateMoney)

	return validator
}

func validateMovieStatus(fl validator.FieldLevel) bool {
	return domain.MovieStatus(fl.Field().String()).IsValid()
}

func validateCountryCode(fl validator.FieldLevel) bool {
	return countryCodeRgx.MatchString(fl.Field().String())
}

// validateReleaseDate rejects dates more than 365 days in the future.
func validateReleaseDate(fl validator.FieldLevel) bool {
	date, ok := fl.Field().Interface().(openapi_types.Date)
	if !ok {
		return false
	}

	return !date.Time.After(time.Now().AddDate(0, 0, 365))
}

func validateMoney(fl validator.FieldLevel) bool {
	amount, ok := fl.Field().Interface().(decimal.Decimal)
	if !ok {
		return false
	}

	return !amount.IsNegative()
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		return fmt.Sprintf(ErrMin, err.Param())
	case "max":
		return fmt.Sprintf(ErrMax, err.Param())
	case "movie_status":
		return ErrMovieStatus
	case "country_code":
		return ErrCountryCode
	case "release_date":
		return ErrReleaseDate
	case "money":
		return ErrMoney
	default:
		return "is invalid"
	}
}

// Package api defines the request and response schema of the movie catalog
// HTTP API.
package api

import (
	"time"

	"github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

type ListMoviesParams struct {
	Page    int `validate:"min=1"`
	PerPage int `validate:"min=1,max=20"`
}

type MovieSummary struct {
	Id       int        `json:"id"`
	Name     string     `json:"name"`
	Date     types.Date `json:"date"`
	Score    float64    `json:"score"`
	Overview string     `json:"overview"`
}

type MovieListResponse struct {
	Movies     []MovieSummary `json:"movies"`
	PrevPage   *string        `json:"prev_page"`
	NextPage   *string        `json:"next_page"`
	TotalPages int            `json:"total_pages"`
	TotalItems int            `json:"total_items"`
}

type CountryResponse struct {
	Id   int     `json:"id"`
	Code string  `json:"code"`
	Name *string `json:"name"`
}

type GenreResponse struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type ActorResponse struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type LanguageResponse struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}

type MovieDetailResponse struct {
	Id        int                `json:"id"`
	Name      string             `json:"name"`
	Date      types.Date         `json:"date"`
	Score     float64            `json:"score"`
	Overview  string             `json:"overview"`
	Status    string             `json:"status"`
	Budget    float64            `json:"budget"`
	Revenue   float64            `json:"revenue"`
	Country   CountryResponse    `json:"country"`
	Genres    []GenreResponse    `json:"genres"`
	Actors    []ActorResponse    `json:"actors"`
	Languages []LanguageResponse `json:"languages"`
}

type CreateMovieRequest struct {
	Name      string          `json:"name" validate:"required,max=255"`
	Date      types.Date      `json:"date" validate:"required,release_date"`
	Score     float64         `json:"score" validate:"min=0,max=100"`
	Overview  string          `json:"overview" validate:"required"`
	Status    string          `json:"status" validate:"required,movie_status"`
	Budget    decimal.Decimal `json:"budget" validate:"money"`
	Revenue   decimal.Decimal `json:"revenue" validate:"money"`
	Country   string          `json:"country" validate:"required,country_code"`
	Genres    []string        `json:"genres" validate:"required,dive,required,max=255"`
	Actors    []string        `json:"actors" validate:"required,dive,required,max=255"`
	Languages []string        `json:"languages" validate:"required,dive,required,max=255"`
}

// UpdateMovieRequest is a partial payload: absent fields stay untouched.
// Associations cannot be updated after creation.
type UpdateMovieRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Date     *types.Date      `json:"date" validate:"omitempty,release_date"`
	Score    *float64         `json:"score" validate:"omitempty,min=0,max=100"`
	Overview *string          `json:"overview" validate:"omitempty,min=1"`
	Status   *string          `json:"status" validate:"omitempty,movie_status"`
	Budget   *decimal.Decimal `json:"budget" validate:"omitempty,money"`
	Revenue  *decimal.Decimal `json:"revenue" validate:"omitempty,money"`
}

type MessageResponse struct {
	Detail string `json:"detail"`
}

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

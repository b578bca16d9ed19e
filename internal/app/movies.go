package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/filmoteka/movie-catalog/api"
	"github.com/filmoteka/movie-catalog/internal/domain"
	"github.com/oapi-codegen/runtime/types"
)

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

func (app *Application) GetMovies(w http.ResponseWriter, r *http.Request) {
	params := api.ListMoviesParams{
		Page:    DefaultPage,
		PerPage: DefaultPerPage,
	}

	if page := r.URL.Query().Get("page"); page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("page must be an integer"))
			return
		}
		params.Page = n
	}

	if perPage := r.URL.Query().Get("per_page"); perPage != "" {
		n, err := strconv.Atoi(perPage)
		if err != nil {
			app.badRequestResponse(w, r, fmt.Errorf("per_page must be an integer"))
			return
		}
		params.PerPage = n
	}

	err := app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := domain.Pagination{
		Page:     params.Page,
		PageSize: params.PerPage,
	}

	movies, metadata, err := app.movieRepo.GetAll(r.Context(), pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if len(movies) == 0 {
		app.errorResponse(w, r, http.StatusNotFound, "No movies found.")
		return
	}

	resp := api.MovieListResponse{
		Movies:     toMovieSummaries(movies),
		TotalPages: metadata.TotalPages,
		TotalItems: metadata.TotalRecords,
	}

	if metadata.HasPrev() {
		prev := fmt.Sprintf("/movies?page=%d&per_page=%d", params.Page-1, params.PerPage)
		resp.PrevPage = &prev
	}

	if metadata.HasNext() {
		next := fmt.Sprintf("/movies?page=%d&per_page=%d", params.Page+1, params.PerPage)
		resp.NextPage = &next
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIdParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "Movie with the given ID was not found.")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	err = app.writeJSON(w, http.StatusOK, toMovieDetail(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateMovie(w http.ResponseWriter, r *http.Request) {
	var input api.CreateMovieRequest

	err := app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	// Best-effort uniqueness probe. The unique constraint on
	// (name, release_date) backs it up when two creates race.
	_, err = app.movieRepo.GetByNameAndDate(r.Context(), input.Name, input.Date.Time)
	if err == nil {
		app.movieConflictResponse(w, r, input.Name, input.Date.Time)
		return
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		app.serverErrorResponse(w, r, err)
		return
	}

	movie := toDomainMovie(input)

	err = app.movieRepo.Create(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrMovieAlreadyExists):
			app.movieConflictResponse(w, r, input.Name, input.Date.Time)
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	// Re-fetch with associations hydrated, so the caller never sees a
	// partially loaded movie.
	movie, err = app.movieRepo.GetById(r.Context(), movie.ID)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toMovieDetail(movie), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIdParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input api.UpdateMovieRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	movie, err := app.movieRepo.GetById(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "Movie with the given ID was not found.")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	movie.Apply(toMovieUpdate(input))

	err = app.movieRepo.Update(r.Context(), movie)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "Movie with the given ID was not found.")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	resp := api.MessageResponse{
		Detail: "Movie updated successfully.",
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) DeleteMovie(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIdParam(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.movieRepo.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			app.errorResponse(w, r, http.StatusNotFound, "Movie with the given ID was not found.")
		default:
			app.serverErrorResponse(w, r, err)
		}

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toMovieSummaries(movies []*domain.Movie) []api.MovieSummary {
	summaries := make([]api.MovieSummary, len(movies))

	for i, movie := range movies {
		summaries[i] = api.MovieSummary{
			Id:       movie.ID,
			Name:     movie.Name,
			Date:     types.Date{Time: movie.ReleaseDate},
			Score:    movie.Score,
			Overview: movie.Overview,
		}
	}

	return summaries
}

func toMovieDetail(movie *domain.Movie) api.MovieDetailResponse {
	detail := api.MovieDetailResponse{
		Id:       movie.ID,
		Name:     movie.Name,
		Date:     types.Date{Time: movie.ReleaseDate},
		Score:    movie.Score,
		Overview: movie.Overview,
		Status:   string(movie.Status),
		Budget:   movie.Budget.InexactFloat64(),
		Revenue:  movie.Revenue.InexactFloat64(),
		Country: api.CountryResponse{
			Id:   movie.Country.ID,
			Code: movie.Country.Code,
			Name: movie.Country.Name,
		},
		Genres:    make([]api.GenreResponse, 0, len(movie.Genres)),
		Actors:    make([]api.ActorResponse, 0, len(movie.Actors)),
		Languages: make([]api.LanguageResponse, 0, len(movie.Languages)),
	}

	for _, genre := range movie.Genres {
		detail.Genres = append(detail.Genres, api.GenreResponse{Id: genre.ID, Name: genre.Name})
	}
	for _, actor := range movie.Actors {
		detail.Actors = append(detail.Actors, api.ActorResponse{Id: actor.ID, Name: actor.Name})
	}
	for _, language := range movie.Languages {
		detail.Languages = append(detail.Languages, api.LanguageResponse{Id: language.ID, Name: language.Name})
	}

	return detail
}

func toDomainMovie(input api.CreateMovieRequest) *domain.Movie {
	movie := &domain.Movie{
		Name:        input.Name,
		ReleaseDate: input.Date.Time,
		Score:       input.Score,
		Overview:    input.Overview,
		Status:      domain.MovieStatus(input.Status),
		Budget:      input.Budget,
		Revenue:     input.Revenue,
		Country:     domain.Country{Code: input.Country},
	}

	for _, name := range input.Genres {
		movie.Genres = append(movie.Genres, domain.Genre{Name: name})
	}
	for _, name := range input.Actors {
		movie.Actors = append(movie.Actors, domain.Actor{Name: name})
	}
	for _, name := range input.Languages {
		movie.Languages = append(movie.Languages, domain.Language{Name: name})
	}

	return movie
}

func toMovieUpdate(input api.UpdateMovieRequest) domain.MovieUpdate {
	update := domain.MovieUpdate{
		Name:     input.Name,
		Score:    input.Score,
		Overview: input.Overview,
		Budget:   input.Budget,
		Revenue:  input.Revenue,
	}

	if input.Date != nil {
		update.ReleaseDate = &input.Date.Time
	}

	if input.Status != nil {
		status := domain.MovieStatus(*input.Status)
		update.Status = &status
	}

	return update
}

func (app *Application) movieConflictResponse(w http.ResponseWriter, r *http.Request, name string, releaseDate time.Time) {
	message := fmt.Sprintf("A movie with the name '%s' and release date '%s' already exists.",
		name, releaseDate.Format("2006-01-02"))

	app.errorResponse(w, r, http.StatusConflict, message)
}

package repository

import (
	"context"
	"errors"
	"time"

	"github.com/filmoteka/movie-catalog/internal/domain"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresMovieRepository struct {
	db *pgxpool.Pool
}

func NewPostgresMovieRepository(db *pgxpool.Pool) *PostgresMovieRepository {
	return &PostgresMovieRepository{
		db: db,
	}
}

// GetAll returns one page of movie summaries, newest first, together with the
// pagination metadata. Associations are not loaded on the list path.
func (p *PostgresMovieRepository) GetAll(ctx context.Context, pagination domain.Pagination) ([]*domain.Movie, *domain.Metadata, error) {
	query := `SELECT count(*) OVER(), id, name, release_date, score, overview
		FROM movies
		ORDER BY id DESC
		LIMIT $1 OFFSET $2`

	rows, err := p.db.Query(ctx, query, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	totalRecords := 0
	movies := []*domain.Movie{}

	for rows.Next() {
		var movie domain.Movie

		err := rows.Scan(
			&totalRecords,
			&movie.ID,
			&movie.Name,
			&movie.ReleaseDate,
			&movie.Score,
			&movie.Overview,
		)

		if err != nil {
			return nil, nil, err
		}

		movies = append(movies, &movie)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return movies, metadata, nil
}

// GetById returns one movie with its country, genres, actors and languages
// hydrated, so callers never observe partially loaded associations.
func (p *PostgresMovieRepository) GetById(ctx context.Context, id int) (*domain.Movie, error) {
	query := `SELECT m.id, m.name, m.release_date, m.score, m.overview, m.status,
			m.budget, m.revenue, m.created_at, m.version,
			c.id, c.code, c.name
		FROM movies m
		INNER JOIN countries c ON c.id = m.country_id
		WHERE m.id = $1`

	var movie domain.Movie
	var status string

	err := p.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Name,
		&movie.ReleaseDate,
		&movie.Score,
		&movie.Overview,
		&status,
		&movie.Budget,
		&movie.Revenue,
		&movie.CreatedAt,
		&movie.Version,
		&movie.Country.ID,
		&movie.Country.Code,
		&movie.Country.Name,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	movie.Status = domain.MovieStatus(status)

	err = p.loadAssociations(ctx, &movie)
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// GetByNameAndDate is the existence probe behind create-time uniqueness.
func (p *PostgresMovieRepository) GetByNameAndDate(ctx context.Context, name string, releaseDate time.Time) (*domain.Movie, error) {
	query := `SELECT id, name, release_date, score, overview
		FROM movies
		WHERE name = $1 AND release_date = $2`

	var movie domain.Movie

	err := p.db.QueryRow(ctx, query, name, releaseDate).Scan(
		&movie.ID,
		&movie.Name,
		&movie.ReleaseDate,
		&movie.Score,
		&movie.Overview,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}

		return nil, err
	}

	return &movie, nil
}

// Create persists the movie and its association rows in one transaction.
// Reference entities are resolved get-or-create by natural key first, so two
// movies sharing a genre share the same genre row. A concurrent create of the
// same (name, release_date) surfaces as ErrMovieAlreadyExists.
func (p *PostgresMovieRepository) Create(ctx context.Context, movie *domain.Movie) error {
	return runInTx(ctx, p.db, func(tx pgx.Tx) error {
		country, err := resolveCountry(ctx, tx, movie.Country.Code)
		if err != nil {
			return err
		}
		movie.Country = country

		genres := []domain.Genre{}
		for _, name := range dedupNames(genreNames(movie.Genres)) {
			id, err := resolveByName(ctx, tx, "genres", name)
			if err != nil {
				return err
			}
			genres = append(genres, domain.Genre{ID: id, Name: name})
		}
		movie.Genres = genres

		actors := []domain.Actor{}
		for _, name := range dedupNames(actorNames(movie.Actors)) {
			id, err := resolveByName(ctx, tx, "actors", name)
			if err != nil {
				return err
			}
			actors = append(actors, domain.Actor{ID: id, Name: name})
		}
		movie.Actors = actors

		languages := []domain.Language{}
		for _, name := range dedupNames(languageNames(movie.Languages)) {
			id, err := resolveByName(ctx, tx, "languages", name)
			if err != nil {
				return err
			}
			languages = append(languages, domain.Language{ID: id, Name: name})
		}
		movie.Languages = languages

		query := `INSERT INTO movies (name, release_date, score, overview, status, budget, revenue, country_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, created_at, version`

		err = tx.QueryRow(ctx,
			query,
			movie.Name,
			movie.ReleaseDate,
			movie.Score,
			movie.Overview,
			string(movie.Status),
			movie.Budget,
			movie.Revenue,
			movie.Country.ID).Scan(&movie.ID, &movie.CreatedAt, &movie.Version)

		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return domain.ErrMovieAlreadyExists
			}

			return err
		}

		err = copyAssociations(ctx, tx, "movie_genres", "genre_id", movie.ID, genreIDs(movie.Genres))
		if err != nil {
			return err
		}

		err = copyAssociations(ctx, tx, "movie_actors", "actor_id", movie.ID, actorIDs(movie.Actors))
		if err != nil {
			return err
		}

		return copyAssociations(ctx, tx, "movie_languages", "language_id", movie.ID, languageIDs(movie.Languages))
	})
}

// Update writes the scalar fields of an already merged movie. Associations
// are immutable after creation and never touched here.
func (p *PostgresMovieRepository) Update(ctx context.Context, movie *domain.Movie) error {
	query := `UPDATE movies
		SET name = $1, release_date = $2, score = $3, overview = $4, status = $5,
			budget = $6, revenue = $7, version = version + 1
		WHERE id = $8
		RETURNING version`

	err := p.db.QueryRow(ctx,
		query,
		movie.Name,
		movie.ReleaseDate,
		movie.Score,
		movie.Overview,
		string(movie.Status),
		movie.Budget,
		movie.Revenue,
		movie.ID).Scan(&movie.Version)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrRecordNotFound
		}

		return err
	}

	return nil
}

// Delete removes the movie; association rows go with it via ON DELETE
// CASCADE. Reference rows stay even when no movie references them anymore.
func (p *PostgresMovieRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM movies WHERE id = $1`

	cmdTag, err := p.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if cmdTag.RowsAffected() == 0 {
		return domain.ErrRecordNotFound
	}

	return nil
}

func (p *PostgresMovieRepository) loadAssociations(ctx context.Context, movie *domain.Movie) error {
	query := `SELECT g.id, g.name
		FROM genres g
		INNER JOIN movie_genres mg ON mg.genre_id = g.id
		WHERE mg.movie_id = $1
		ORDER BY g.id`

	rows, err := p.db.Query(ctx, query, movie.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	movie.Genres = []domain.Genre{}
	for rows.Next() {
		var genre domain.Genre
		if err := rows.Scan(&genre.ID, &genre.Name); err != nil {
			return err
		}
		movie.Genres = append(movie.Genres, genre)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	query = `SELECT a.id, a.name
		FROM actors a
		INNER JOIN movie_actors ma ON ma.actor_id = a.id
		WHERE ma.movie_id = $1
		ORDER BY a.id`

	rows, err = p.db.Query(ctx, query, movie.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	movie.Actors = []domain.Actor{}
	for rows.Next() {
		var actor domain.Actor
		if err := rows.Scan(&actor.ID, &actor.Name); err != nil {
			return err
		}
		movie.Actors = append(movie.Actors, actor)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	query = `SELECT l.id, l.name
		FROM languages l
		INNER JOIN movie_languages ml ON ml.language_id = l.id
		WHERE ml.movie_id = $1
		ORDER BY l.id`

	rows, err = p.db.Query(ctx, query, movie.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	movie.Languages = []domain.Language{}
	for rows.Next() {
		var language domain.Language
		if err := rows.Scan(&language.ID, &language.Name); err != nil {
			return err
		}
		movie.Languages = append(movie.Languages, language)
	}

	return rows.Err()
}

func copyAssociations(ctx context.Context, tx pgx.Tx, table, column string, movieID int, ids []int) error {
	if len(ids) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, []any{movieID, id})
	}

	_, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{table},
		[]string{"movie_id", column},
		pgx.CopyFromRows(rows),
	)

	return err
}

func runInTx(ctx context.Context, db *pgxpool.Pool, fn func(tx pgx.Tx) error) error {
	var txOptions pgx.TxOptions

	tx, err := db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(tx)
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

func genreNames(genres []domain.Genre) []string {
	names := make([]string, 0, len(genres))
	for _, genre := range genres {
		names = append(names, genre.Name)
	}

	return names
}

func actorNames(actors []domain.Actor) []string {
	names := make([]string, 0, len(actors))
	for _, actor := range actors {
		names = append(names, actor.Name)
	}

	return names
}

func languageNames(languages []domain.Language) []string {
	names := make([]string, 0, len(languages))
	for _, language := range languages {
		names = append(names, language.Name)
	}

	return names
}

func genreIDs(genres []domain.Genre) []int {
	ids := make([]int, 0, len(genres))
	for _, genre := range genres {
		ids = append(ids, genre.ID)
	}

	return ids
}

func actorIDs(actors []domain.Actor) []int {
	ids := make([]int, 0, len(actors))
	for _, actor := range actors {
		ids = append(ids, actor.ID)
	}

	return ids
}

func languageIDs(languages []domain.Language) []int {
	ids := make([]int, 0, len(languages))
	for _, language := range languages {
		ids = append(ids, language.ID)
	}

	return ids
}

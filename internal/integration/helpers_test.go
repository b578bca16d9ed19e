package integration_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func prepareRequest(method, url string, body io.Reader, headers map[string]string) (*http.Request, error) {
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}

	return req, nil
}

func compareResponse(t testing.TB, body io.Reader, expected string) {
	t.Helper()

	var got map[string]any
	require.NoError(t, json.NewDecoder(body).Decode(&got))

	var want map[string]any
	require.NoError(t, json.Unmarshal([]byte(expected), &want))

	ignoreVolatile := cmpopts.IgnoreMapEntries(func(key string, _ any) bool {
		return key == "requestId" || key == "timestamp" || key == "version"
	})

	if diff := cmp.Diff(want, got, ignoreVolatile); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func truncateMovieTables(t testing.TB, db *pgxpool.Pool) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"TRUNCATE movies, countries, genres, actors, languages RESTART IDENTITY CASCADE")
	require.NoError(t, err)
}

func executeSQLFile(t testing.TB, db *pgxpool.Pool, path string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = db.Exec(context.Background(), string(content))
	require.NoError(t, err)
}

func countRows(t testing.TB, db *pgxpool.Pool, query string, args ...any) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(), query, args...).Scan(&count)
	require.NoError(t, err)

	return count
}

// uniqueName guards scenarios that skip table truncation against natural
// key collisions with earlier seeds.
func uniqueName(prefix string) string {
	return prefix + " " + uuid.NewString()
}

func createMovie(t testing.TB, app *TestApp, body string) {
	t.Helper()

	req, err := prepareRequest(http.MethodPost, "/movies", strings.NewReader(body), jsonHeaders)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.App.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
}

package integration_test

const (
	moviesSeedFile      = "testdata/movies.sql"
	movieDetailSeedFile = "testdata/movie_detail.sql"
)

var jsonHeaders = map[string]string{"Content-Type": "application/json"}

const createMovieBody = `{
	"name": "Interstate 60",
	"date": "2002-04-13",
	"score": 75.5,
	"overview": "A road trip along a highway that does not exist.",
	"status": "Released",
	"budget": 7000000,
	"revenue": 1200000,
	"country": "US",
	"genres": ["Adventure", "Comedy"],
	"actors": ["James Marsden", "Gary Oldman"],
	"languages": ["English"]
}`

const movieDetailResponse = `{
	"id": 1,
	"name": "Interstate 60",
	"date": "2002-04-13",
	"score": 75.5,
	"overview": "A road trip along a highway that does not exist.",
	"status": "Released",
	"budget": 7000000,
	"revenue": 1200000,
	"country": {"id": 1, "code": "US", "name": "United States of America"},
	"genres": [
		{"id": 1, "name": "Adventure"},
		{"id": 2, "name": "Comedy"}
	],
	"actors": [
		{"id": 1, "name": "James Marsden"},
		{"id": 2, "name": "Gary Oldman"}
	],
	"languages": [
		{"id": 1, "name": "English"}
	]
}`

// Same movie created through the API: the country row is created lazily from
// the code alone, so its name is still null.
const createdMovieResponse = `{
	"id": 1,
	"name": "Interstate 60",
	"date": "2002-04-13",
	"score": 75.5,
	"overview": "A road trip along a highway that does not exist.",
	"status": "Released",
	"budget": 7000000,
	"revenue": 1200000,
	"country": {"id": 1, "code": "US", "name": null},
	"genres": [
		{"id": 1, "name": "Adventure"},
		{"id": 2, "name": "Comedy"}
	],
	"actors": [
		{"id": 1, "name": "James Marsden"},
		{"id": 2, "name": "Gary Oldman"}
	],
	"languages": [
		{"id": 1, "name": "English"}
	]
}`

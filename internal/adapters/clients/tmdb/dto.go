package tmdb

// TMDB wire shapes. Never exposed outside this package.

type genreDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type genreListDTO struct {
	Genres []genreDTO `json:"genres"`
}

type castDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Character   string  `json:"character"`
	Order       int     `json:"order"`
	ProfilePath *string `json:"profile_path"`
}

type creditsDTO struct {
	Cast []castDTO `json:"cast"`
}

// movieDTO covers both listing items (genre_ids) and detail payloads
// (genres, runtime, credits).
type movieDTO struct {
	ID           int         `json:"id"`
	Title        string      `json:"title"`
	Overview     string      `json:"overview"`
	ReleaseDate  string      `json:"release_date"`
	VoteAverage  float64     `json:"vote_average"`
	VoteCount    int         `json:"vote_count"`
	Popularity   float64     `json:"popularity"`
	GenreIDs     []int       `json:"genre_ids"`
	Genres       []genreDTO  `json:"genres"`
	Runtime      *int        `json:"runtime"`
	PosterPath   *string     `json:"poster_path"`
	BackdropPath *string     `json:"backdrop_path"`
	Credits      *creditsDTO `json:"credits"`
}

type pageDTO struct {
	Page         int        `json:"page"`
	Results      []movieDTO `json:"results"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results"`
}

// statusDTO is TMDB's error envelope.
type statusDTO struct {
	StatusCode    int    `json:"status_code"`
	StatusMessage string `json:"status_message"`
	Success       *bool  `json:"success"`
}

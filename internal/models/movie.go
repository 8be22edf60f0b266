package models

// Movie represents a catalog entry. Only ID is interpreted by the API; the
// descriptive attributes are stored and returned as given.
type Movie struct {
	ID               int     `json:"id" dynamodbav:"id" validate:"required,gt=0"`
	Title            string  `json:"title" dynamodbav:"title" validate:"required"`
	OriginalTitle    string  `json:"original_title,omitempty" dynamodbav:"original_title,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty" dynamodbav:"original_language,omitempty"`
	Overview         string  `json:"overview,omitempty" dynamodbav:"overview,omitempty"`
	ReleaseDate      string  `json:"release_date,omitempty" dynamodbav:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	GenreIDs         []int   `json:"genre_ids,omitempty" dynamodbav:"genre_ids,omitempty"`
	Popularity       float64 `json:"popularity" dynamodbav:"popularity"`
	VoteAverage      float64 `json:"vote_average" dynamodbav:"vote_average" validate:"gte=0,lte=10"`
	VoteCount        int     `json:"vote_count" dynamodbav:"vote_count" validate:"gte=0"`
	Adult            bool    `json:"adult" dynamodbav:"adult"`
	Video            bool    `json:"video" dynamodbav:"video"`
	PosterPath       string  `json:"poster_path,omitempty" dynamodbav:"poster_path,omitempty"`
	BackdropPath     string  `json:"backdrop_path,omitempty" dynamodbav:"backdrop_path,omitempty"`
}

// Validate validates the movie data
func (m *Movie) Validate() error {
	return Validate(m)
}

// MovieCast is one actor credit on a movie, keyed by (MovieID, ActorName)
type MovieCast struct {
	MovieID         int    `json:"movieId" dynamodbav:"movieId" validate:"required,gt=0"`
	ActorName       string `json:"actorName" dynamodbav:"actorName" validate:"required"`
	RoleName        string `json:"roleName" dynamodbav:"roleName" validate:"required"`
	RoleDescription string `json:"roleDescription,omitempty" dynamodbav:"roleDescription,omitempty"`
}

// Validate validates the cast entry
func (c *MovieCast) Validate() error {
	return Validate(c)
}

// CastFilter narrows a cast listing. Empty fields do not filter.
type CastFilter struct {
	RoleName  string
	ActorName string
}

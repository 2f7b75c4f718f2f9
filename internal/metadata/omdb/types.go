package omdb

// Placeholder values used when OMDb omits a field.
const (
	PlaceholderPoster   = "https://via.placeholder.com/500x750?text=No+Image"
	DefaultOverview     = "No description available."
	DefaultReleaseDate  = "Unknown"
	DefaultRating       = "N/A"
	notAvailable        = "N/A"
	responseTrue        = "True"
	errMsgMovieNotFound = "Movie not found!"
)

// Details is the display metadata for a single title.
type Details struct {
	Title       string `json:"title"`
	Overview    string `json:"overview"`
	ReleaseDate string `json:"release_date"`
	Rating      string `json:"rating"`
	PosterURL   string `json:"poster_url"`
	IMDbID      string `json:"imdb_id,omitempty"`
}

// rawMovie is the subset of the OMDb title response we read.
type rawMovie struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Plot       string `json:"Plot"`
	Released   string `json:"Released"`
	IMDbRating string `json:"imdbRating"`
	Poster     string `json:"Poster"`
	IMDbID     string `json:"imdbID"`
}

func (r *rawMovie) toDetails(requested string) *Details {
	d := &Details{
		Title:       orDefault(r.Title, requested),
		Overview:    orDefault(r.Plot, DefaultOverview),
		ReleaseDate: orDefault(r.Released, DefaultReleaseDate),
		Rating:      orDefault(r.IMDbRating, DefaultRating),
		PosterURL:   r.Poster,
		IMDbID:      r.IMDbID,
	}
	if d.PosterURL == "" || d.PosterURL == notAvailable {
		d.PosterURL = PlaceholderPoster
	}
	return d
}

// orDefault returns def when v is empty or OMDb's "N/A".
func orDefault(v, def string) string {
	if v == "" || v == notAvailable {
		return def
	}
	return v
}

// Placeholder returns details for a title OMDb could not describe.
func Placeholder(title string) *Details {
	return &Details{
		Title:       title,
		Overview:    DefaultOverview,
		ReleaseDate: DefaultReleaseDate,
		Rating:      DefaultRating,
		PosterURL:   PlaceholderPoster,
	}
}

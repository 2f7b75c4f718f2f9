package catalog

// Columns lists the accepted header names for each logical field of a
// source. The first alias present in the header wins.
type Columns struct {
	Title []string
	Genre []string
	Score []string
}

// DefaultGeneralColumns matches the IMDb-style export.
func DefaultGeneralColumns() Columns {
	return Columns{
		Title: []string{"names", "title"},
		Genre: []string{"genre", "genres"},
		Score: []string{"score", "rating"},
	}
}

// DefaultRegionalColumns matches the Bollywood export, which ranks by
// box-office revenue.
func DefaultRegionalColumns() Columns {
	return Columns{
		Title: []string{"Movie Name", "title"},
		Genre: []string{"Genre", "genre"},
		Score: []string{"Revenue(INR)", "revenue"},
	}
}

// orDefault fills any empty alias list from def.
func (c Columns) orDefault(def Columns) Columns {
	if len(c.Title) == 0 {
		c.Title = def.Title
	}
	if len(c.Genre) == 0 {
		c.Genre = def.Genre
	}
	if len(c.Score) == 0 {
		c.Score = def.Score
	}
	return c
}

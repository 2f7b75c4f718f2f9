package genre

// Known lists the genre labels that appear in the mood table and in the
// bundled catalogs. Used to generate synthetic catalogs.
var Known = []string{
	"Action",
	"Adventure",
	"Animation",
	"Biography",
	"Comedy",
	"Crime",
	"Documentary",
	"Drama",
	"Family",
	"Fantasy",
	"History",
	"Horror",
	"Music",
	"Musical",
	"Mystery",
	"Romance",
	"Sci-Fi",
	"Sport",
	"Thriller",
	"War",
	"Western",
}

package recommend

import "strings"

// MoodInfo describes one selectable mood.
type MoodInfo struct {
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
}

// moodTable is the fixed mood to genre mapping, in display order.
var moodTable = []MoodInfo{
	{Name: "Happy", Genres: []string{"Comedy", "Adventure", "Family", "Animation"}},
	{Name: "Sad", Genres: []string{"Drama", "Romance", "Music"}},
	{Name: "Excited", Genres: []string{"Action", "Thriller", "Sci-Fi", "Adventure"}},
	{Name: "Romantic", Genres: []string{"Romance", "Drama", "Musical"}},
	{Name: "Relaxed", Genres: []string{"Documentary", "Animation", "Family", "Fantasy"}},
	{Name: "Inspired", Genres: []string{"Biography", "Drama", "History"}},
	{Name: "Scared", Genres: []string{"Horror", "Thriller", "Mystery"}},
	{Name: "Thoughtful", Genres: []string{"Drama", "Mystery", "Sci-Fi"}},
	{Name: "Funny", Genres: []string{"Comedy", "Family"}},
	{Name: "Adventurous", Genres: []string{"Adventure", "Action", "Fantasy", "Sci-Fi"}},
	{Name: "Nostalgic", Genres: []string{"Drama", "Romance", "Family", "History"}},
	{Name: "Curious", Genres: []string{"Documentary", "Mystery", "Sci-Fi"}},
}

var moodIndex = func() map[string]int {
	m := make(map[string]int, len(moodTable))
	for i, mood := range moodTable {
		m[strings.ToLower(mood.Name)] = i
	}
	return m
}()

// Moods returns the mood table in display order.
func Moods() []MoodInfo {
	out := make([]MoodInfo, len(moodTable))
	for i, m := range moodTable {
		out[i] = MoodInfo{Name: m.Name, Genres: append([]string(nil), m.Genres...)}
	}
	return out
}

// GenresFor returns the genres mapped to mood. Lookup ignores case and
// surrounding whitespace. Unknown moods return nil.
func GenresFor(mood string) []string {
	i, ok := moodIndex[strings.ToLower(strings.TrimSpace(mood))]
	if !ok {
		return nil
	}
	return append([]string(nil), moodTable[i].Genres...)
}

// CanonicalMood returns the display name for mood and whether it is known.
func CanonicalMood(mood string) (string, bool) {
	i, ok := moodIndex[strings.ToLower(strings.TrimSpace(mood))]
	if !ok {
		return "", false
	}
	return moodTable[i].Name, true
}

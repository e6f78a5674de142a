package naming

// keywordGroup maps a tag to the lowercase substrings that signal it.
type keywordGroup struct {
	tag      string
	keywords []string
}

// Genre tags.
const (
	GenreAfrobeat   = "afrobeat"
	GenreHipHop     = "hip_hop"
	GenreRnB        = "rnb"
	GenreDancehall  = "dancehall"
	GenrePop        = "pop"
	GenreElectronic = "electronic"
	GenreFrench     = "french"
	GenreAmapiano   = "amapiano"
)

// Context tags.
const (
	ContextMix      = "mix"
	ContextHits     = "hits"
	ContextNew      = "new"
	ContextOfficial = "official"
	ContextRemix    = "remix"
	ContextLive     = "live"
	ContextEnergy   = "energy"
)

// Table order is significant: equal genre counts keep this order.
var genreKeywords = []keywordGroup{
	{GenreAfrobeat, []string{"afrobeat", "afrobeats", "naija", "lagos", "nigeria", "ghana", "benin"}},
	{GenreHipHop, []string{"hip hop", "rap", "trap", "drill", "freestyle"}},
	{GenreRnB, []string{"r&b", "rnb", "soul", "smooth", "love", "romance"}},
	{GenreDancehall, []string{"dancehall", "reggae", "jamaica", "caribbean"}},
	{GenrePop, []string{"pop", "mainstream", "radio", "chart"}},
	{GenreElectronic, []string{"electronic", "edm", "house", "techno", "remix"}},
	{GenreFrench, []string{"french", "français", "clip officiel", "feat tayc"}},
	{GenreAmapiano, []string{"amapiano", "piano", "south africa", "sa"}},
}

var contextKeywords = []keywordGroup{
	{ContextMix, []string{"mix", "mixed", "compilation"}},
	{ContextHits, []string{"hit", "hits", "best", "top", "greatest"}},
	{ContextNew, []string{"new", "latest", "recent", "2024", "2025"}},
	{ContextOfficial, []string{"official", "music video", "video"}},
	{ContextRemix, []string{"remix", "remaster", "version"}},
	{ContextLive, []string{"live", "performance", "concert"}},
	{ContextEnergy, []string{"fire", "hot", "banger", "vibe", "energy"}},
}

var genreDisplayNames = map[string]string{
	GenreAfrobeat:   "Afrobeat",
	GenreHipHop:     "Hip-Hop",
	GenreRnB:        "R&B",
	GenreDancehall:  "Dancehall",
	GenrePop:        "Pop",
	GenreElectronic: "Electronic",
	GenreFrench:     "French",
	GenreAmapiano:   "Amapiano",
}

// Icons appended to descriptions, in table order.
var genreIcons = []struct {
	tag   string
	icons []string
}{
	{GenreAfrobeat, []string{"🌍", "🔥", "🥁"}},
	{GenreFrench, []string{"🇫🇷", "✨"}},
	{GenreHipHop, []string{"🎤", "💥"}},
	{GenreRnB, []string{"💖", "🌙"}},
}

const maxIcons = 3

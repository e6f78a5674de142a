package naming

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	dominantArtistCount = 3
	dominantGenreHits   = 2
)

// Identity is a generated collection name and description.
type Identity struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Generator builds identities from analyses.
type Generator struct {
	picker Picker
}

// NewGenerator returns a Generator using picker, or process-wide randomness
// when picker is nil.
func NewGenerator(picker Picker) *Generator {
	if picker == nil {
		picker = globalPicker{}
	}
	return &Generator{picker: picker}
}

// CreateIdentity analyzes titles and generates a name and description with
// process-wide randomness.
func CreateIdentity(titles []string) Identity {
	return NewGenerator(nil).CreateIdentity(titles)
}

// CreateIdentity analyzes titles and generates a name and description. An
// empty input yields a fixed default identity.
func (g *Generator) CreateIdentity(titles []string) Identity {
	if len(titles) == 0 {
		return DefaultIdentity()
	}
	analysis := Analyze(titles)
	name := g.GenerateName(analysis)
	return Identity{Name: name, Description: g.GenerateDescription(analysis, name)}
}

// DefaultIdentity is returned for empty collections.
func DefaultIdentity() Identity {
	return Identity{Name: defaultName, Description: defaultDescription}
}

// GenerateName applies the first matching rule: dominant performer, dominant
// genre, francophone content, afrobeat among the top two genres, then mood.
func (g *Generator) GenerateName(a Analysis) string {
	if len(a.TopArtists) > 0 && a.TopArtists[0].Count >= dominantArtistCount {
		return fmt.Sprintf(choose(g.picker, artistNameTemplates), a.TopArtists[0].Name)
	}
	if len(a.Genres) > 0 && a.Genres[0].Hits >= dominantGenreHits {
		return fmt.Sprintf(choose(g.picker, genreNameTemplates), GenreDisplayName(a.Genres[0].Genre))
	}
	if a.HasGenre(GenreFrench) {
		return choose(g.picker, francophoneNames)
	}
	if hasGenre(a.Genres[:min(2, len(a.Genres))], GenreAfrobeat) {
		return choose(g.picker, afrobeatNames)
	}
	return choose(g.picker, moodNames)
}

// GenerateDescription fills a randomly chosen template from the analysis and
// appends genre icons. name is accepted for templates that reference it.
func (g *Generator) GenerateDescription(a Analysis, name string) string {
	mainArtist := fallbackArtist
	if len(a.TopArtists) > 0 {
		mainArtist = a.TopArtists[0].Name
	}
	secondArtist := fallbackSecondArtist
	if len(a.TopArtists) > 1 {
		secondArtist = a.TopArtists[1].Name
	}
	genre := fallbackGenre
	if len(a.Genres) > 0 {
		genre = GenreDisplayName(a.Genres[0].Genre)
	}

	filler := strings.NewReplacer(
		"{genre}", genre,
		"{main_artist}", mainArtist,
		"{second_artist}", secondArtist,
		"{top_artists}", formatTopArtists(a.TopArtists),
		"{track_count}", strconv.Itoa(a.TrackCount),
		"{mood}", moodPhrase(a),
		"{context}", usagePhrase(a),
		"{playlist_name}", name,
	)
	return filler.Replace(choose(g.picker, descriptionTemplates)) + iconSuffix(a)
}

// GenreDisplayName returns the display label for a genre tag.
func GenreDisplayName(tag string) string {
	if label, ok := genreDisplayNames[tag]; ok {
		return label
	}
	return cases.Title(language.Und).String(strings.ReplaceAll(tag, "_", " "))
}

func formatTopArtists(top []ArtistCount) string {
	switch {
	case len(top) >= 3:
		return top[0].Name + ", " + top[1].Name + ", " + top[2].Name
	case len(top) == 2:
		return top[0].Name + " and " + top[1].Name
	case len(top) == 1:
		return top[0].Name
	default:
		return fallbackArtist
	}
}

func moodPhrase(a Analysis) string {
	switch {
	case a.HasContext(ContextEnergy) || a.HasContext(ContextHits):
		return "boost your energy"
	case a.HasContext(ContextNew):
		return "discover new releases"
	case a.HasContext(ContextMix):
		return "a perfect vibe"
	default:
		return "every moment"
	}
}

func usagePhrase(a Analysis) string {
	switch {
	case a.HasContext(ContextMix):
		return "a perfect mix"
	case a.HasContext(ContextHits):
		return "the biggest hits"
	case a.HasContext(ContextLive):
		return "live performances"
	default:
		return "your ideal playlist"
	}
}

func iconSuffix(a Analysis) string {
	var icons []string
	for _, entry := range genreIcons {
		if a.HasGenre(entry.tag) {
			icons = append(icons, entry.icons...)
		}
	}
	if len(icons) == 0 {
		return ""
	}
	if len(icons) > maxIcons {
		icons = icons[:maxIcons]
	}
	return "\n\n" + strings.Join(icons, " ")
}

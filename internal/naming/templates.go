package naming

var artistNameTemplates = []string{
	"%s Essentials",
	"Best of %s",
	"%s Vibes",
	"The %s Collection",
	"%s Hits & More",
}

var genreNameTemplates = []string{
	"%s Bangers",
	"Pure %s",
	"%s Vibes",
	"Ultimate %s Mix",
	"%s Sessions",
	"Fresh %s Sounds",
}

var moodNames = []string{
	"Midnight Vibes",
	"Feel Good Playlist",
	"Energy Boost",
	"Chill Mode",
	"Party Starters",
	"Late Night Moods",
}

var francophoneNames = []string{
	"French Touch Mix",
	"Afrobeat Français",
	"Sons Francophones",
}

var afrobeatNames = []string{
	"African Heat",
	"Naija Vibes",
	"Afrobeat Sessions",
	"Lagos Sounds",
}

var descriptionTemplates = []string{
	"🎵 A carefully curated selection of {genre} featuring {main_artist} and more. {track_count} tracks. Vibe: {mood}.",
	"🔥 The best {genre} sounds right now! Featuring {top_artists} and other talents. Perfect for {context}.",
	"✨ Discover the best of {genre} with this {track_count}-track playlist. From {main_artist} to new talent.",
	"🎯 Premium {genre} collection - {track_count} tracks selected for their quality and unique vibe.",
	"🌟 Your daily dose of {genre}! {main_artist}, {second_artist} and more in a {track_count}-track playlist.",
}

const (
	fallbackArtist       = "various artists"
	fallbackSecondArtist = "other talents"
	fallbackGenre        = "music"

	defaultName        = "Mix Playlist"
	defaultDescription = "A personalized playlist 🎵"
)

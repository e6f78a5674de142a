package titles

import "testing"

func TestCleanRemovesNoise(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"official music video", "Rema - Calm Down (Official Music Video)", "Rema - Calm Down"},
		{"bracketed official video", "Burna Boy | Last Last [Official Video]", "Burna Boy | Last Last"},
		{"hashtags", "Asake - Joha (Official Audio) #asake #afrobeats", "Asake - Joha"},
		{"remix quality and year", "Wizkid ft. Tems - Essence (Remix) [4K] (2021)", "Wizkid ft. Tems - Essence"},
		{"emoji", "🎵 DAVIDO - FEM (Official Video) 🔥", "DAVIDO - FEM"},
		{"lyrics video keeps bare HD", "Fireboy DML: Peru [Lyrics Video] HD", "Fireboy DML: Peru HD"},
		{"bare official suffix", "Ayra Starr - Rush Official Video", "Ayra Starr - Rush"},
		{"case insensitive", "Tems - Free Mind (OFFICIAL AUDIO)", "Tems - Free Mind"},
		{"live and lyric", "CKay - Love Nwantiti (Live at Wembley) [Lyric]", "CKay - Love Nwantiti"},
		{"feat annotation", "Davido - Unavailable (feat. Musa Keys)", "Davido - Unavailable"},
		{"old year", "Fela Kuti - Zombie [1977]", "Fela Kuti - Zombie"},
		{"mention", "Kizz Daniel @KizzDanielOfficial - Buga", "Kizz Daniel - Buga"},
		{"accented hashtag", "Bad Bunny - Tití Me Preguntó #música", "Bad Bunny - Tití Me Preguntó"},
		{"accented hashtag suffix", "Aya Nakamura - Djadja #français", "Aya Nakamura - Djadja"},
		{"accented mention", "Stromae - Papaoutai @Stromaé", "Stromae - Papaoutai"},
		{"annotation split by newline", "Rema - Calm Down (Official\nVideo)", "Rema - Calm Down"},
		{"emoji inside annotation", "Asake - Joha (🔥Live)", "Asake - Joha"},
		{"flags", "\U0001F1F3\U0001F1EC Olamide - Rock", "Olamide - Rock"},
		{"edge separators", " | Joeboy - Alcohol • ", "Joeboy - Alcohol"},
		{"whitespace collapse", "Victony   -\tSoweto", "Victony - Soweto"},
		{"empty", "", ""},
		{"only noise", "(Official Video) #tag", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Clean(tc.input); got != tc.want {
				t.Fatalf("Clean(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	inputs := []string{
		"Rema - Calm Down (Official Music Video)",
		"Wizkid ft. Tems - Essence (Remix) [4K] (2021)",
		"🎵 DAVIDO - FEM (Official Video) 🔥",
		"Omah Lay • Bad Influence | Live Performance",
		"  -- Tiwa Savage -- Somebody's Son (Extended Mix) -- ",
		"Asake & Tiakola - BADMAN GANGSTA",
		"Rema - Calm Down (Official\nVideo)",
		"Asake - Joha (🔥Live)",
		"Bad Bunny - Tití Me Preguntó #música",
		"///",
		"",
	}
	for _, input := range inputs {
		once := Clean(input)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestCleanStackedAnnotations(t *testing.T) {
	got := Clean("Artist - Song (Official Audio) (Dance Video)")
	if got != "Artist - Song" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestExtractArtistTitle(t *testing.T) {
	tests := []struct {
		input      string
		wantArtist string
		wantWork   string
		wantOK     bool
	}{
		{"Burna Boy - Last Last", "Burna Boy", "Last Last", true},
		{"Burna Boy | Last Last [Official Video]", "Burna Boy", "Last Last", true},
		{"Fireboy DML: Peru", "Fireboy DML", "Peru", true},
		{"Omah Lay • Bad Influence | Live Performance", "Omah Lay • Bad Influence", "Live Performance", true},
		{"Rema - Calm Down - Remix", "Rema", "Calm Down - Remix", true},
		{"A - Song", "", "A - Song", false},
		{"AC/DC - Thunderstruck", "AC/DC", "Thunderstruck", true},
		{"Calm Down", "", "Calm Down", false},
		{"", "", "", false},
	}

	for _, tc := range tests {
		artist, work, ok := ExtractArtistTitle(tc.input)
		if ok != tc.wantOK || artist != tc.wantArtist || work != tc.wantWork {
			t.Fatalf("ExtractArtistTitle(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tc.input, artist, work, ok, tc.wantArtist, tc.wantWork, tc.wantOK)
		}
	}
}

func TestExtractArtistTitleFallsThroughSeparators(t *testing.T) {
	// "-" splits into a one-character part, so the next separator in
	// priority order gets a chance.
	artist, work, ok := ExtractArtistTitle("X-Men Theme | Orchestra")
	if !ok {
		t.Fatal("expected a split")
	}
	if artist != "X-Men Theme" || work != "Orchestra" {
		t.Fatalf("unexpected split %q / %q", artist, work)
	}
}

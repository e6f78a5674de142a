package titles

import "regexp"

// rule removes every case-insensitive match of pattern from a title.
type rule struct {
	name    string
	pattern *regexp.Regexp
}

func newRule(name, expr string) rule {
	return rule{name: name, pattern: regexp.MustCompile(`(?i)` + expr)}
}

// noiseRules is evaluated top to bottom. Do not reorder: the generic
// "(...Video...)" rules rely on the official-release rules having already
// consumed overlapping annotations.
var noiseRules = []rule{
	// official release annotations
	newRule("official_paren", `\(Official.*?\)`),
	newRule("official_bracket", `\[Official.*?\]`),
	newRule("official_video", `Official Video`),
	newRule("official_audio", `Official Audio`),
	newRule("official_music_video", `Official Music Video`),

	// generic content type
	newRule("video_paren", `\(.*?Video.*?\)`),
	newRule("video_bracket", `\[.*?Video.*?\]`),
	newRule("audio_paren", `\(.*?Audio.*?\)`),
	newRule("audio_bracket", `\[.*?Audio.*?\]`),

	// lyrics and live performances
	newRule("lyric_paren", `\(Lyric.*?\)`),
	newRule("lyric_bracket", `\[Lyric.*?\]`),
	newRule("live_paren", `\(Live.*?\)`),
	newRule("live_bracket", `\[Live.*?\]`),

	// quality tags
	newRule("hd_paren", `\(HD\)`),
	newRule("hd_bracket", `\[HD\]`),
	newRule("4k_paren", `\(4K\)`),
	newRule("4k_bracket", `\[4K\]`),
	newRule("1080p_paren", `\(1080p\)`),
	newRule("1080p_bracket", `\[1080p\]`),

	// hashtags and mentions
	newRule("hashtag", `#[\p{L}\p{N}_]+`),
	newRule("mention", `@[\p{L}\p{N}_]+`),
	newRule("mention_suffixed", `@[\p{L}\p{N}]+(?:Official)?(?:Music)?`),

	// bare years
	newRule("year_2000s_paren", `\(20\d{2}\)`),
	newRule("year_2000s_bracket", `\[20\d{2}\]`),
	newRule("year_1900s_paren", `\(19\d{2}\)`),
	newRule("year_1900s_bracket", `\[19\d{2}\]`),

	// remix, remaster, extended, featuring
	newRule("remix_paren", `\(Remix\)`),
	newRule("remix_bracket", `\[Remix\]`),
	newRule("remastered_paren", `\(Remastered\)`),
	newRule("remastered_bracket", `\[Remastered\]`),
	newRule("extended_paren", `\(Extended.*?\)`),
	newRule("extended_bracket", `\[Extended.*?\]`),
	newRule("feat_paren", `\(feat\..*?\)`),
	newRule("feat_bracket", `\[feat\..*?\]`),
	newRule("ft_paren", `\(ft\..*?\)`),
	newRule("ft_bracket", `\[ft\..*?\]`),

	// emoji and pictographs
	newRule("emoticons", `[\x{1F600}-\x{1F64F}]`),
	newRule("pictographs", `[\x{1F300}-\x{1F5FF}]`),
	newRule("transport", `[\x{1F680}-\x{1F6FF}]`),
	newRule("flags", `[\x{1F1E0}-\x{1F1FF}]`),
}

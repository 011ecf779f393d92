package parser

import (
	"strings"
	"unicode/utf8"
)

// SongInfo is the metadata of an info.txt file next to a track
type SongInfo struct {
	Title  string
	Artist string
	Credit string
}

// ParseInfo reads "key: value" lines. Both the ascii and the full width
// colon separate keys, and unknown keys are ignored.
func ParseInfo(text string) SongInfo {
	var info SongInfo
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		i := strings.IndexAny(line, ":：")
		if i < 0 {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(line[:i]))
		_, size := utf8.DecodeRuneInString(line[i:])
		value := strings.TrimSpace(line[i+size:])
		if key == "" || value == "" {
			continue
		}
		switch key {
		case "title", "タイトル", "曲名":
			info.Title = value
		case "artist", "アーティスト", "歌手":
			info.Artist = value
		case "credit", "クレジット":
			info.Credit = value
		}
	}
	return info
}

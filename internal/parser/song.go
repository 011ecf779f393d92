package parser

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Song is the set of files found in a song directory
type Song struct {
	Directory string
	ChartFile string
	AudioFile string
	InfoFile  string
}

// Title is the name of the song directory
func (s Song) Title() string {
	return filepath.Base(s.Directory)
}

// Find walks a song directory for a chart, a track and an info.txt.
func Find(directory string) (Song, error) {
	song := Song{Directory: directory}
	if err := filepath.WalkDir(directory, func(p string, d fs.DirEntry, err error) error {
		if nil != err {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case ".ogg", ".mp3", ".wav":
			song.AudioFile = p
		case ".json":
			song.ChartFile = p
		case ".txt":
			song.InfoFile = p
		}
		return nil
	}); nil != err {
		return song, fmt.Errorf("unable to walk song directory: %w", err)
	}

	if song.AudioFile == "" && song.ChartFile == "" {
		return song, errors.New("unable to find a .json chart or .mp3/.ogg/.wav file in given directory")
	}
	return song, nil
}

// Info reads the info.txt of the song, if it has one
func (s Song) Info() (SongInfo, error) {
	if s.InfoFile == "" {
		return SongInfo{}, nil
	}
	data, err := os.ReadFile(s.InfoFile)
	if nil != err {
		return SongInfo{}, err
	}
	return ParseInfo(string(data)), nil
}

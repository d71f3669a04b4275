package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/reeltracker/reel"
)

// ReadSong loads a song from the reader, replacing the current song and
// clearing both undo histories. Both JSON and YAML songs are accepted. If
// the reader is a file, its path is remembered as the song's path.
func (m *Model) ReadSong(r io.ReadCloser) error {
	bytes, err := io.ReadAll(r)
	if err != nil {
		r.Close()
		return fmt.Errorf("reading song: %w", err)
	}
	if err := r.Close(); err != nil {
		return fmt.Errorf("closing song file: %w", err)
	}
	var song reel.Song
	if errJSON := json.Unmarshal(bytes, &song); errJSON != nil {
		if errYaml := yaml.Unmarshal(bytes, &song); errYaml != nil {
			return fmt.Errorf("parsing song: %w", errors.Join(errJSON, errYaml))
		}
	}
	if err := song.Validate(); err != nil {
		return fmt.Errorf("invalid song: %w", err)
	}
	m.d.Song = song
	m.d.FilePath = ""
	if f, ok := r.(*os.File); ok {
		m.d.FilePath = f.Name()
	}
	m.d.ChangedSinceSave = false
	m.score.Clear()
	m.mixer.Clear()
	TrySend(m.broker.ToUI, MsgToUI{Kind: SongChanged, Path: m.d.FilePath})
	return nil
}

// WriteSong saves the current song to the writer. A file with a .json
// extension gets JSON, everything else YAML. If the writer is a file, its
// path is remembered as the song's path.
func (m *Model) WriteSong(w io.WriteCloser) error {
	path := ""
	if f, ok := w.(*os.File); ok {
		path = f.Name()
	}
	var bytes []byte
	var err error
	if strings.EqualFold(filepath.Ext(path), ".json") {
		bytes, err = json.Marshal(m.d.Song)
	} else {
		bytes, err = yaml.Marshal(m.d.Song)
	}
	if err != nil {
		w.Close()
		return fmt.Errorf("marshaling song: %w", err)
	}
	if _, err := w.Write(bytes); err != nil {
		w.Close()
		return fmt.Errorf("writing song: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("closing song file: %w", err)
	}
	if path != "" {
		m.d.FilePath = path
	}
	m.d.ChangedSinceSave = false
	return nil
}

package game

import (
	"errors"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/crt-visualization/internal/audio"
)

// selectAudioFile asks for a file to drive the plates with. An empty name
// and nil error mean the dialog was cancelled.
func selectAudioFile() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: audio.Patterns,
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return filename, err
}

// selectSaveFile asks where to write an export.
func selectSaveFile(title, name, filterName, pattern string) (string, error) {
	filename, err := zenity.SelectFileSave(
		zenity.Title(title),
		zenity.Filename(name),
		zenity.ConfirmOverwrite(),
		zenity.FileFilters{{
			Name:     filterName,
			Patterns: []string{pattern},
		}},
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", nil
	}
	return filename, err
}

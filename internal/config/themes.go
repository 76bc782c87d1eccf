package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// defaultThemes is the built-in theme pool, used when no data file overrides it.
var defaultThemes = []string{
	"Popularity of foods",
	"Scariness of animals",
	"Usefulness of inventions",
	"How much you want this superpower",
	"Attractiveness of jobs",
	"How exciting this sounds",
	"Strength of smells",
	"How much this costs",
	"How famous this person is",
	"How spicy this dish is",
	"How much you want to live there",
	"Cuteness of animals",
	"How hard this is to learn",
	"How loud this sound is",
	"How good this smells",
	"How heavy this object is",
	"How nostalgic this feels",
	"How much this would hurt",
	"Importance of school subjects",
	"How likely you are to cry at this",
}

var (
	themes    []string
	themeOnce sync.Once
	themeErr  error
)

// LoadThemePool loads the theme pool from the given JSON file. Missing or
// malformed files leave the built-in pool in place and return an error the
// caller may log and ignore.
func LoadThemePool(path string) error {
	themeOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			themeErr = fmt.Errorf("failed to read theme pool: %w", err)
			return
		}

		var loaded []string
		if err := json.Unmarshal(data, &loaded); err != nil {
			themeErr = fmt.Errorf("failed to unmarshal theme pool: %w", err)
			return
		}
		if len(loaded) > 0 {
			themes = loaded
		}
	})
	return themeErr
}

// ThemePool returns the active theme pool.
func ThemePool() []string {
	if len(themes) > 0 {
		return themes
	}
	return defaultThemes
}

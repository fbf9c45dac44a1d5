package model

import (
	"errors"
	"fmt"
)

// Theme is the colour scheme preference
type Theme string

const (
	ThemeLight    Theme = "light"
	ThemeDark     Theme = "dark"
	ThemeCream    Theme = "cream"
	ThemeMidnight Theme = "midnight"
)

// DefaultTheme is used on first run and after reset
const DefaultTheme = ThemeCream

// ErrInvalidTheme is returned for a theme outside the fixed set
var ErrInvalidTheme = errors.New("unknown theme")

// Themes lists every supported theme in display order
func Themes() []Theme {
	return []Theme{ThemeLight, ThemeDark, ThemeCream, ThemeMidnight}
}

// Valid reports whether the theme is one of the fixed set
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeCream, ThemeMidnight:
		return true
	}
	return false
}

// Next returns the following theme, wrapping around
func (t Theme) Next() Theme {
	all := Themes()
	for i, th := range all {
		if th == t {
			return all[(i+1)%len(all)]
		}
	}
	return DefaultTheme
}

// ParseTheme validates a theme name
func ParseTheme(s string) (Theme, error) {
	t := Theme(s)
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTheme, s)
	}
	return t, nil
}

// BackupSnapshot is the full durable state exported as a single JSON document
type BackupSnapshot struct {
	Tasks        []Task  `json:"tasks"`
	CompletedIDs []int64 `json:"completedIds"`
	Theme        Theme   `json:"theme"`
	Username     string  `json:"username"`
	Timestamp    int64   `json:"timestamp"` // Unix milliseconds at export time
}

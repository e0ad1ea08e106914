// Package level loads the optional roster of invader waves.
package level

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Level describes one wave. Zero Rows or Cols mean "use the configured grid".
type Level struct {
	Name string `yaml:"name"`
	Rows int    `yaml:"rows"`
	Cols int    `yaml:"cols"`
}

type rosterFile struct {
	Levels []Level `yaml:"levels"`
}

// Set is an ordered, finite list of levels.
type Set struct {
	levels []Level
}

// Load reads a YAML roster from path.
func Load(path string) (*Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read levels %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a YAML roster.
func Parse(data []byte) (*Set, error) {
	var f rosterFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse levels: %w", err)
	}
	if len(f.Levels) == 0 {
		return nil, errors.New("roster has no levels")
	}
	for i, l := range f.Levels {
		if l.Rows < 0 || l.Cols < 0 {
			return nil, fmt.Errorf("level %d (%s): rows and cols must not be negative", i+1, l.Name)
		}
	}
	return &Set{levels: f.Levels}, nil
}

// Len returns the number of levels.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.levels)
}

// At returns level n, counting from 1.
func (s *Set) At(n int) (Level, bool) {
	if n < 1 || n > s.Len() {
		return Level{}, false
	}
	return s.levels[n-1], true
}

// Grid returns the wave size for l, substituting the defaults for zero values.
func (l Level) Grid(defRows, defCols int) (rows, cols int) {
	rows, cols = l.Rows, l.Cols
	if rows == 0 {
		rows = defRows
	}
	if cols == 0 {
		cols = defCols
	}
	return rows, cols
}

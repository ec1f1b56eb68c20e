/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/FlippedOut/pb-draw/draw"
	"github.com/FlippedOut/pb-draw/internal"
)

// DivisionSettings overrides the event-wide settings for one division.
// Zero values inherit.
type DivisionSettings struct {
	Name    string `yaml:"name"`
	Courts  int    `yaml:"courts"`
	Rounds  int    `yaml:"rounds"`
	ToScore int    `yaml:"to_score"`
	Skip    bool   `yaml:"skip"`
}

// Settings describes one event. A settings file looks like:
//
//	courts: 6
//	start_court: 1
//	to_score: 11
//	rounds: 0          # 0 derives the count from roster size
//	seed: 0            # 0 picks a random seed
//	registration_cutoff: "2025-06-14 08:00"
//	combine_divisions: false
//	divisions:
//	  - name: Open
//	    courts: 2
//	  - name: "3.0-3.49"
//	    rounds: 5
type Settings struct {
	Courts             int                `yaml:"courts"`
	StartCourt         int                `yaml:"start_court"`
	ToScore            int                `yaml:"to_score"`
	Rounds             int                `yaml:"rounds"`
	Seed               int64              `yaml:"seed"`
	RegistrationCutoff string             `yaml:"registration_cutoff"`
	CombineDivisions   bool               `yaml:"combine_divisions"`
	Divisions          []DivisionSettings `yaml:"divisions"`
}

func DefaultSettings() Settings {
	return Settings{
		Courts:     draw.DefaultCourts,
		StartCourt: draw.DefaultStartCourt,
		ToScore:    draw.DefaultToScore,
	}
}

// LoadSettings reads a YAML settings file on top of DefaultSettings.
func LoadSettings(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("tournament: failed to read settings %v: %w",
			path, err)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return Settings{}, fmt.Errorf("tournament: %v: %w", path, err)
	}

	return s, nil
}

func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

func (s Settings) Validate() error {
	if s.Courts < 0 {
		return fmt.Errorf("courts must not be negative (got %v)", s.Courts)
	}
	if s.Rounds < 0 {
		return fmt.Errorf("rounds must not be negative (got %v)", s.Rounds)
	}
	seen := make(map[string]bool)
	for _, d := range s.Divisions {
		if seen[d.Name] {
			return fmt.Errorf("division %q listed twice", d.Name)
		}
		seen[d.Name] = true
		if d.Courts < 0 || d.Rounds < 0 {
			return fmt.Errorf("division %q: courts and rounds must not be negative",
				d.Name)
		}
	}
	if _, err := s.Cutoff(); err != nil {
		return err
	}

	return nil
}

// Cutoff is the registration cutoff, or the zero time when none is set.
func (s Settings) Cutoff() (time.Time, error) {
	t, err := internal.ParseDateOrZero(s.RegistrationCutoff)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid registration_cutoff %q: %w",
			s.RegistrationCutoff, err)
	}
	return t, nil
}

func (s Settings) division(name string) DivisionSettings {
	for _, d := range s.Divisions {
		if d.Name == name {
			return d
		}
	}
	return DivisionSettings{Name: name}
}

// config merges the event and division settings into an engine config.
// StartCourt and Shuffler are filled in by the caller.
func (s Settings) config(name string) draw.Config {
	d := s.division(name)
	cfg := draw.Config{
		Courts:  s.Courts,
		ToScore: s.ToScore,
		Rounds:  s.Rounds,
	}
	if d.Courts > 0 {
		cfg.Courts = d.Courts
	}
	if d.ToScore > 0 {
		cfg.ToScore = d.ToScore
	}
	if d.Rounds > 0 {
		cfg.Rounds = d.Rounds
	}

	return cfg
}

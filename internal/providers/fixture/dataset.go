package fixture

import (
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed season.yaml
var seasonYAML []byte

type dataset struct {
	SeasonDays    int         `yaml:"season_days"`
	LookaheadDays int         `yaml:"lookahead_days"`
	ShotTypes     []string    `yaml:"shot_types"`
	Teams         []teamEntry `yaml:"teams"`
}

type teamEntry struct {
	Abbrev     string     `yaml:"abbrev"`
	Name       string     `yaml:"name"`
	CommonName string     `yaml:"common_name"`
	Scorers    [][]string `yaml:"scorers"`
}

func parseDataset(data []byte) (dataset, error) {
	var ds dataset
	if err := yaml.Unmarshal(data, &ds); err != nil {
		return dataset{}, fmt.Errorf("parse fixture dataset: %w", err)
	}
	if len(ds.Teams) < 2 || len(ds.Teams)%2 != 0 {
		return dataset{}, errors.New("fixture dataset needs an even number of teams")
	}
	for _, team := range ds.Teams {
		if team.Abbrev == "" || len(team.Scorers) == 0 {
			return dataset{}, fmt.Errorf("fixture team %q needs an abbreviation and scorers", team.Abbrev)
		}
	}
	if ds.SeasonDays <= 0 {
		ds.SeasonDays = 60
	}
	if ds.LookaheadDays < 0 {
		ds.LookaheadDays = 0
	}
	if len(ds.ShotTypes) == 0 {
		ds.ShotTypes = []string{"wrist"}
	}
	return ds, nil
}

func mustParseDataset(data []byte) dataset {
	ds, err := parseDataset(data)
	if err != nil {
		panic(err)
	}
	return ds
}

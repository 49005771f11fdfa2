package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/preston-bernstein/hockey-pool-service/internal/domain/standings"
)

//go:embed roster.yaml
var defaultRosterYAML []byte

type rosterFile struct {
	Owners []standings.Owner `yaml:"owners"`
}

// loadRoster reads the roster from path, or the embedded default when path is empty.
func loadRoster(path string) (standings.Roster, error) {
	data := defaultRosterYAML
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read roster: %w", err)
		}
		data = raw
	}
	return parseRoster(data)
}

func parseRoster(data []byte) (standings.Roster, error) {
	var file rosterFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config: parse roster: %w", err)
	}
	roster := make(standings.Roster, 0, len(file.Owners))
	seen := make(map[string]string)
	names := make(map[string]bool)
	for _, owner := range file.Owners {
		name := strings.TrimSpace(owner.Name)
		if name == "" {
			return nil, fmt.Errorf("config: roster owner without a name")
		}
		if names[strings.ToLower(name)] {
			return nil, fmt.Errorf("config: roster owner %s listed twice", name)
		}
		names[strings.ToLower(name)] = true
		teams := make([]string, 0, len(owner.Teams))
		for _, team := range owner.Teams {
			team = strings.ToUpper(strings.TrimSpace(team))
			if team == "" {
				continue
			}
			if prev, dup := seen[team]; dup {
				return nil, fmt.Errorf("config: team %s assigned to both %s and %s", team, prev, name)
			}
			seen[team] = name
			teams = append(teams, team)
		}
		roster = append(roster, standings.Owner{Name: name, Teams: teams})
	}
	return roster, nil
}

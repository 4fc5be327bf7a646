package skillgraph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Dataset is the on-disk form of a skill graph.
type Dataset struct {
	Skills      []Skill
	Connections []Connection
}

type fileSkill struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string `json:"category" yaml:"category"`
	Level       int    `json:"level" yaml:"level"`
	Tier        string `json:"tier,omitempty" yaml:"tier,omitempty"`
}

type fileConnection struct {
	From string `json:"from" yaml:"from"`
	To   string `json:"to" yaml:"to"`
}

type fileDataset struct {
	Skills      []fileSkill      `json:"skills" yaml:"skills"`
	Connections []fileConnection `json:"connections" yaml:"connections"`
}

// LoadFile reads a dataset from a .json, .yaml or .yml file.
// Skills without a tier are migrated from their names; a tier label that
// is set but not recognised is an error.
func LoadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Dataset{}, fmt.Errorf("read dataset: %w", err)
	}

	var fd fileDataset
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fd)
	case ".json":
		err = json.Unmarshal(data, &fd)
	default:
		return Dataset{}, fmt.Errorf("unsupported dataset format: %q", filepath.Ext(path))
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}

	ds, err := fd.toDataset()
	if err != nil {
		return Dataset{}, fmt.Errorf("parse dataset %s: %w", path, err)
	}
	return ds, nil
}

func (fd fileDataset) toDataset() (Dataset, error) {
	ds := Dataset{
		Skills:      make([]Skill, 0, len(fd.Skills)),
		Connections: make([]Connection, 0, len(fd.Connections)),
	}
	for _, s := range fd.Skills {
		tier := ParseTier(s.Tier)
		if tier == TierUnknown && strings.TrimSpace(s.Tier) != "" {
			return Dataset{}, fmt.Errorf("skill %q: unknown tier %q", s.ID, s.Tier)
		}
		ds.Skills = append(ds.Skills, Skill{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Category:    Category(strings.ToLower(s.Category)),
			Level:       s.Level,
			Tier:        tier,
		})
	}
	MigrateTiers(ds.Skills)

	for _, c := range fd.Connections {
		ds.Connections = append(ds.Connections, Connection{From: c.From, To: c.To})
	}
	return ds, nil
}

// Build builds a graph from the dataset.
func (ds Dataset) Build(opts BuildOptions) (*Graph, error) {
	return Build(ds.Skills, ds.Connections, opts)
}

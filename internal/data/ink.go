package data

import (
	"fmt"
	"io/fs"

	"github.com/inkblade/hackslash/internal/world"
)

// InkTemplate is an ink blueprint.
type InkTemplate struct {
	ID      string            `yaml:"id"`
	Label   string            `yaml:"label"`
	Effects []world.InkEffect `yaml:"effects"`
}

type inkFile struct {
	Basic []InkTemplate `yaml:"basic"`
	Rare  []InkTemplate `yaml:"rare"`
}

// InkTable holds the basic and rare ink pools.
type InkTable struct {
	Basic []InkTemplate
	Rare  []InkTemplate
}

func (t *InkTable) Count() int { return len(t.Basic) + len(t.Rare) }

// LoadInkTable loads inks.yaml.
func LoadInkTable(fsys fs.FS) (*InkTable, error) {
	var f inkFile
	if err := loadYAML(fsys, "inks.yaml", &f); err != nil {
		return nil, err
	}
	if len(f.Basic) == 0 || len(f.Rare) == 0 {
		return nil, fmt.Errorf("inks.yaml: both basic and rare pools are required")
	}
	return &InkTable{Basic: f.Basic, Rare: f.Rare}, nil
}

package data

import (
	"fmt"
	"io/fs"

	"github.com/inkblade/hackslash/internal/world"
)

// SkillTemplate is a skill book blueprint.
type SkillTemplate struct {
	ID        string          `yaml:"id"`
	Name      string          `yaml:"name"`
	Kind      world.SkillKind `yaml:"kind"`
	Element   world.Element   `yaml:"element"`
	Power     float64         `yaml:"power"`
	Cooldown  float64         `yaml:"cooldown"`
	MPCost    int             `yaml:"mp_cost"`
	Duration  float64         `yaml:"duration"`
	Buff      world.BuffType  `yaml:"buff"`
	BuffValue float64         `yaml:"buff_value"`
	Rarity    *world.Rarity   `yaml:"rarity"` // nil = any rarity
}

type skillFile struct {
	Skills []SkillTemplate `yaml:"skills"`
}

// SkillTable holds skill book templates.
type SkillTable struct {
	list []SkillTemplate
	byID map[string]*SkillTemplate
}

// Get returns a template by ID, or nil.
func (t *SkillTable) Get(id string) *SkillTemplate { return t.byID[id] }

// ForRarity lists templates that may drop at rarity r.
func (t *SkillTable) ForRarity(r world.Rarity) []SkillTemplate {
	out := make([]SkillTemplate, 0, len(t.list))
	for _, s := range t.list {
		if s.Rarity == nil || *s.Rarity == r {
			out = append(out, s)
		}
	}
	return out
}

func (t *SkillTable) Count() int { return len(t.list) }

// LoadSkillTable loads skills.yaml.
func LoadSkillTable(fsys fs.FS) (*SkillTable, error) {
	var f skillFile
	if err := loadYAML(fsys, "skills.yaml", &f); err != nil {
		return nil, err
	}
	t := &SkillTable{list: f.Skills, byID: make(map[string]*SkillTemplate, len(f.Skills))}
	for i := range t.list {
		s := &t.list[i]
		if s.Cooldown <= 0 {
			return nil, fmt.Errorf("skills.yaml: %s has no cooldown", s.ID)
		}
		t.byID[s.ID] = s
	}
	return t, nil
}

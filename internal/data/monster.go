package data

import (
	"fmt"
	"io/fs"
)

// Monster is an enemy archetype.
type Monster struct {
	Name     string `yaml:"name"`
	Icon     string `yaml:"icon"`
	BaseHP   int    `yaml:"base_hp"`
	BaseExp  int    `yaml:"base_exp"`
	BaseGold int    `yaml:"base_gold"`
}

type monsterFile struct {
	Monsters []Monster `yaml:"monsters"`
}

// MonsterTable holds archetypes in floor order.
type MonsterTable struct {
	list []Monster
}

// ForFloor returns the archetype of a floor: one archetype per five floors,
// the last one repeating forever.
func (t *MonsterTable) ForFloor(floor int) Monster {
	i := (floor - 1) / 5
	if i < 0 {
		i = 0
	}
	if i > len(t.list)-1 {
		i = len(t.list) - 1
	}
	return t.list[i]
}

func (t *MonsterTable) Count() int { return len(t.list) }

// LoadMonsterTable loads monsters.yaml.
func LoadMonsterTable(fsys fs.FS) (*MonsterTable, error) {
	var f monsterFile
	if err := loadYAML(fsys, "monsters.yaml", &f); err != nil {
		return nil, err
	}
	if len(f.Monsters) == 0 {
		return nil, fmt.Errorf("monsters.yaml: no monsters")
	}
	return &MonsterTable{list: f.Monsters}, nil
}

package data

import (
	"fmt"
	"io/fs"

	"github.com/inkblade/hackslash/internal/world"
)

// StoneModRange is the value range of a magic-stone modifier.
type StoneModRange struct {
	Mod world.StoneMod `yaml:"mod"`
	Min int            `yaml:"min"`
	Max int            `yaml:"max"`
}

type stoneFile struct {
	Mods       []StoneModRange                     `yaml:"mods"`
	RiskReward map[world.StoneMod][]world.StoneMod `yaml:"risk_reward"`
}

// StoneTable holds magic-stone modifier ranges and the risk→reward pairing.
type StoneTable struct {
	ranges     map[world.StoneMod]StoneModRange
	risks      []world.StoneMod
	riskReward map[world.StoneMod][]world.StoneMod
}

// Range returns the value range of m.
func (t *StoneTable) Range(m world.StoneMod) StoneModRange { return t.ranges[m] }

// Risks lists risk modifiers in table order.
func (t *StoneTable) Risks() []world.StoneMod { return t.risks }

// RewardsFor lists the rewards a risk may be paired with.
func (t *StoneTable) RewardsFor(risk world.StoneMod) []world.StoneMod { return t.riskReward[risk] }

func (t *StoneTable) Count() int { return len(t.ranges) }

// LoadStoneTable loads stones.yaml. Every risk must map to at least one
// reward with a known range.
func LoadStoneTable(fsys fs.FS) (*StoneTable, error) {
	var f stoneFile
	if err := loadYAML(fsys, "stones.yaml", &f); err != nil {
		return nil, err
	}
	t := &StoneTable{
		ranges:     make(map[world.StoneMod]StoneModRange, len(f.Mods)),
		riskReward: f.RiskReward,
	}
	for _, r := range f.Mods {
		if r.Min > r.Max {
			return nil, fmt.Errorf("stones.yaml: %s has min > max", r.Mod)
		}
		t.ranges[r.Mod] = r
		if r.Mod.IsRisk() {
			t.risks = append(t.risks, r.Mod)
		}
	}
	for _, risk := range t.risks {
		rewards := t.riskReward[risk]
		if len(rewards) == 0 {
			return nil, fmt.Errorf("stones.yaml: risk %s has no reward", risk)
		}
		for _, rw := range rewards {
			if rw.IsRisk() {
				return nil, fmt.Errorf("stones.yaml: %s paired with risk %s", risk, rw)
			}
			if _, ok := t.ranges[rw]; !ok {
				return nil, fmt.Errorf("stones.yaml: reward %s has no range", rw)
			}
		}
	}
	return t, nil
}

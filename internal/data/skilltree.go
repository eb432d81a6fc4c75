package data

import (
	"fmt"
	"io/fs"

	"github.com/inkblade/hackslash/internal/world"
)

// TreeEffect is one skill-tree effect.
type TreeEffect struct {
	Kind  world.EffectKind `yaml:"kind"`
	Value float64          `yaml:"val"`
}

// TreeNode is one learnable skill-tree node.
type TreeNode struct {
	ID       string
	Name     string
	Requires []string
	Effect   TreeEffect
	Bonus    *TreeEffect
	Penalty  *TreeEffect
}

type treeChain struct {
	ID       string      `yaml:"id"`
	Name     string      `yaml:"name"`
	Levels   int         `yaml:"levels"`
	Requires []string    `yaml:"requires"`
	Effect   TreeEffect  `yaml:"effect"`
	Bonus    *TreeEffect `yaml:"bonus"`
	Penalty  *TreeEffect `yaml:"penalty"`
}

type treeFile struct {
	Chains []treeChain `yaml:"chains"`
}

// SkillTreeTable holds the expanded nodes in application order.
type SkillTreeTable struct {
	nodes []TreeNode
	byID  map[string]int
}

// Get returns a node by ID.
func (t *SkillTreeTable) Get(id string) (TreeNode, bool) {
	i, ok := t.byID[id]
	if !ok {
		return TreeNode{}, false
	}
	return t.nodes[i], true
}

// Nodes returns all nodes in tree order.
func (t *SkillTreeTable) Nodes() []TreeNode { return t.nodes }

func (t *SkillTreeTable) Count() int { return len(t.nodes) }

// LoadSkillTreeTable loads skill_tree.yaml and expands level chains into
// nodes <id>_1..<id>_N. Single-level chains keep the bare id.
func LoadSkillTreeTable(fsys fs.FS) (*SkillTreeTable, error) {
	var f treeFile
	if err := loadYAML(fsys, "skill_tree.yaml", &f); err != nil {
		return nil, err
	}
	t := &SkillTreeTable{byID: make(map[string]int)}
	for _, c := range f.Chains {
		if c.Levels <= 1 {
			t.add(TreeNode{ID: c.ID, Name: c.Name, Requires: c.Requires, Effect: c.Effect, Bonus: c.Bonus, Penalty: c.Penalty})
			continue
		}
		for lv := 1; lv <= c.Levels; lv++ {
			req := c.Requires
			if lv > 1 {
				req = []string{fmt.Sprintf("%s_%d", c.ID, lv-1)}
			}
			t.add(TreeNode{
				ID:       fmt.Sprintf("%s_%d", c.ID, lv),
				Name:     fmt.Sprintf("%s Lv.%d", c.Name, lv),
				Requires: req,
				Effect:   c.Effect,
				Bonus:    c.Bonus,
				Penalty:  c.Penalty,
			})
		}
	}
	for _, n := range t.nodes {
		for _, r := range n.Requires {
			if _, ok := t.byID[r]; !ok {
				return nil, fmt.Errorf("skill_tree.yaml: %s requires unknown node %s", n.ID, r)
			}
		}
	}
	return t, nil
}

func (t *SkillTreeTable) add(n TreeNode) {
	t.byID[n.ID] = len(t.nodes)
	t.nodes = append(t.nodes, n)
}

package data

import (
	"embed"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed yaml/*.yaml
var embedded embed.FS

// Tables bundles every content table the simulation reads.
type Tables struct {
	Rarities    *RarityTable
	Monsters    *MonsterTable
	Names       *NameTable
	Skills      *SkillTable
	Inks        *InkTable
	Options     *OptionTable
	Stones      *StoneTable
	Consumables *ConsumableTable
	SkillTree   *SkillTreeTable
}

// Default loads the tables compiled into the binary.
func Default() (*Tables, error) {
	sub, err := fs.Sub(embedded, "yaml")
	if err != nil {
		return nil, err
	}
	return LoadTables(sub)
}

// MustDefault is Default for tests and init paths where the embedded files
// are known good.
func MustDefault() *Tables {
	t, err := Default()
	if err != nil {
		panic(err)
	}
	return t
}

// LoadDir loads tables from a directory on disk, falling back to the embedded
// copy for any file the directory lacks.
func LoadDir(dir string) (*Tables, error) {
	if dir == "" {
		return Default()
	}
	sub, err := fs.Sub(embedded, "yaml")
	if err != nil {
		return nil, err
	}
	return LoadTables(overlayFS{primary: os.DirFS(dir), fallback: sub})
}

// LoadTables loads every table from fsys.
func LoadTables(fsys fs.FS) (*Tables, error) {
	var t Tables
	var err error
	if t.Rarities, err = LoadRarityTable(fsys); err != nil {
		return nil, err
	}
	if t.Monsters, err = LoadMonsterTable(fsys); err != nil {
		return nil, err
	}
	if t.Names, err = LoadNameTable(fsys); err != nil {
		return nil, err
	}
	if t.Skills, err = LoadSkillTable(fsys); err != nil {
		return nil, err
	}
	if t.Inks, err = LoadInkTable(fsys); err != nil {
		return nil, err
	}
	if t.Options, err = LoadOptionTable(fsys); err != nil {
		return nil, err
	}
	if t.Stones, err = LoadStoneTable(fsys); err != nil {
		return nil, err
	}
	if t.Consumables, err = LoadConsumableTable(fsys); err != nil {
		return nil, err
	}
	if t.SkillTree, err = LoadSkillTreeTable(fsys); err != nil {
		return nil, err
	}
	return &t, nil
}

func loadYAML(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// overlayFS serves files from primary when present, else from fallback.
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		return f, nil
	}
	return o.fallback.Open(name)
}

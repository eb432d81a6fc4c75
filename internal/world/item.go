package world

import "github.com/google/uuid"

// NewItemID returns a fresh unique item ID.
func NewItemID() string { return uuid.NewString() }

// Attrs holds the three base attributes. Also used for required-stat gates.
type Attrs struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Int int `json:"int"`
}

// Meets reports whether a satisfies every minimum in req.
func (a Attrs) Meets(req Attrs) bool {
	return a.Str >= req.Str && a.Dex >= req.Dex && a.Int >= req.Int
}

// BaseStats are the flat bonuses rolled onto a piece of equipment.
type BaseStats struct {
	Atk int `json:"atk,omitempty"`
	Def int `json:"def,omitempty"`
	HP  int `json:"hp,omitempty"`
	Str int `json:"str,omitempty"`
	Dex int `json:"dex,omitempty"`
	Int int `json:"int,omitempty"`
}

// Scale multiplies every non-zero stat by f, flooring each.
func (b BaseStats) Scale(f float64) BaseStats {
	sc := func(v int) int { return int(float64(v) * f) }
	return BaseStats{Atk: sc(b.Atk), Def: sc(b.Def), HP: sc(b.HP), Str: sc(b.Str), Dex: sc(b.Dex), Int: sc(b.Int)}
}

// SkillData describes what a skill book does when cast.
type SkillData struct {
	Template  string    `json:"template"`
	Kind      SkillKind `json:"kind"`
	Element   Element   `json:"element"`
	Power     float64   `json:"power"`
	Cooldown  float64   `json:"cooldown"`
	MPCost    int       `json:"mpCost,omitempty"`
	Duration  float64   `json:"duration,omitempty"`
	Buff      BuffType  `json:"buffType,omitempty"`
	BuffValue float64   `json:"buffValue,omitempty"`
	Level     int       `json:"level"`
}

// InkEffect is one modifier carried by an ink.
type InkEffect struct {
	Kind  InkKind `json:"kind" yaml:"kind"`
	Value float64 `json:"val" yaml:"val"`
}

// Ink is a skill modifier. Inks attached to a skill live inside the skill
// item; loose inks live in an InkPot item.
type Ink struct {
	Name    string      `json:"name"`
	Rarity  Rarity      `json:"rarity"`
	Effects []InkEffect `json:"effects"`
}

// Has reports whether the ink carries an effect of kind k.
func (i Ink) Has(k InkKind) bool {
	for _, e := range i.Effects {
		if e.Kind == k {
			return true
		}
	}
	return false
}

// StoneRoll is one rolled magic-stone modifier.
type StoneRoll struct {
	Mod   StoneMod `json:"type"`
	Value int      `json:"val"`
}

// StoneData configures a dungeon run.
type StoneData struct {
	Tier     int         `json:"tier"`
	MaxFloor int         `json:"maxFloor"`
	Mods     []StoneRoll `json:"mods"`
}

// Item is the single item record for every item type. Which fields are
// meaningful depends on Type.
type Item struct {
	ID     string   `json:"id"`
	Type   ItemType `json:"type"`
	Name   string   `json:"name"`
	Rarity Rarity   `json:"rarity"`
	Power  int      `json:"power"`
	Count  int      `json:"count,omitempty"`

	// equipment
	Base     BaseStats `json:"baseStats"`
	Options  Options   `json:"options,omitempty"`
	Required Attrs     `json:"requiredStats"`

	// skill
	Skill    *SkillData `json:"skillData,omitempty"`
	InkSlots int        `json:"inkSlots,omitempty"`
	Inks     []Ink      `json:"inks,omitempty"`

	// ink
	Ink *Ink `json:"ink,omitempty"`

	// magic stone
	Stone *StoneData `json:"stone,omitempty"`

	// equipment consumables
	Mult      float64 `json:"mult,omitempty"`      // enhancement_stone
	PowerMult float64 `json:"powerMult,omitempty"` // enchant_scroll, reroll_scroll
	Element   Element `json:"element,omitempty"`   // element_stone
	Special   Stat    `json:"special,omitempty"`   // special_stone
	Value     int     `json:"value,omitempty"`     // element_stone, special_stone
	Slots     int     `json:"slots,omitempty"`     // option_slot_stone
	Upgrades  int     `json:"upgrades,omitempty"`  // rarity_upgrade_stone
}

// Clone returns a deep copy.
func (it *Item) Clone() *Item {
	if it == nil {
		return nil
	}
	c := *it
	c.Options = it.Options.Clone()
	if it.Skill != nil {
		sd := *it.Skill
		c.Skill = &sd
	}
	if it.Inks != nil {
		c.Inks = make([]Ink, len(it.Inks))
		for i, ink := range it.Inks {
			c.Inks[i] = ink.clone()
		}
	}
	if it.Ink != nil {
		ink := it.Ink.clone()
		c.Ink = &ink
	}
	if it.Stone != nil {
		st := *it.Stone
		st.Mods = append([]StoneRoll(nil), it.Stone.Mods...)
		c.Stone = &st
	}
	return &c
}

func (i Ink) clone() Ink {
	i.Effects = append([]InkEffect(nil), i.Effects...)
	return i
}

// Stackable reports whether identical units of this item merge into one
// inventory entry.
func (it *Item) Stackable() bool { return it.Type.IsConsumable() }

// StacksWith reports whether other may merge into its stack: same type,
// rarity and distinguishing value.
func (it *Item) StacksWith(other *Item) bool {
	if !it.Stackable() || it.Type != other.Type || it.Rarity != other.Rarity {
		return false
	}
	switch it.Type {
	case EnhancementStone:
		return it.Mult == other.Mult
	case EnchantScroll, RerollScroll:
		return it.PowerMult == other.PowerMult
	case ElementStone:
		return it.Element == other.Element && it.Value == other.Value
	case SpecialStone:
		return it.Special == other.Special && it.Value == other.Value
	case OptionSlotStone:
		return it.Slots == other.Slots
	case RarityUpgradeStone:
		return it.Upgrades == other.Upgrades
	}
	return false
}

// Units returns how many units the entry represents.
func (it *Item) Units() int {
	if it.Stackable() && it.Count > 0 {
		return it.Count
	}
	return 1
}

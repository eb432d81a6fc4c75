package world

import "fmt"

// Closed enums. Each carries its wire name table so YAML tables, JSON
// snapshots and log lines all share one spelling.

func parseEnum[T ~uint8](kind string, names []string, s string) (T, error) {
	for i, n := range names {
		if n == s {
			return T(i), nil
		}
	}
	return 0, fmt.Errorf("unknown %s %q", kind, s)
}

func enumName(names []string, i int) string {
	if i < 0 || i >= len(names) {
		return fmt.Sprintf("invalid(%d)", i)
	}
	return names[i]
}

// ==================== Rarity ====================

type Rarity uint8

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
	RarityCount
)

var rarityNames = []string{"common", "uncommon", "rare", "epic", "legendary"}

func (r Rarity) String() string                { return enumName(rarityNames, int(r)) }
func (r Rarity) MarshalText() ([]byte, error)  { return []byte(r.String()), nil }
func (r *Rarity) UnmarshalText(b []byte) error { return unmarshalEnum(r, "rarity", rarityNames, b) }

// ==================== Element ====================

type Element uint8

const (
	ElementNone Element = iota
	Fire
	Ice
	Thunder
	Light
	Dark
	ElementCount
)

var elementNames = []string{"none", "fire", "ice", "thunder", "light", "dark"}

// Elements lists the five real elements in table order.
var Elements = []Element{Fire, Ice, Thunder, Light, Dark}

func (e Element) String() string                { return enumName(elementNames, int(e)) }
func (e Element) MarshalText() ([]byte, error)  { return []byte(e.String()), nil }
func (e *Element) UnmarshalText(b []byte) error { return unmarshalEnum(e, "element", elementNames, b) }

// ==================== Stat (option types) ====================

// Stat is the type key of an item option.
type Stat uint8

const (
	StatStr Stat = iota
	StatDex
	StatInt
	StatAtk
	StatDef
	StatMaxHP
	StatMaxMP
	StatResFire
	StatResIce
	StatResThunder
	StatResLight
	StatResDark
	StatEvade
	StatCrit
	StatCritMult
	StatCritDmg
	StatCritDmgMult
	StatDmgMult
	StatVamp
	StatGold
	StatExp
	StatHPRegen
	StatAtkMult
	StatDefMult
	StatHPMult
	StatGlobalHPMult
	StatGlobalMPMult
	StatSkillFire
	StatSkillIce
	StatSkillThunder
	StatSkillLight
	StatSkillDark
	StatCount
)

var statNames = []string{
	"str", "dex", "int", "atk", "def", "maxHp", "maxMp",
	"res_fire", "res_ice", "res_thunder", "res_light", "res_dark",
	"evade", "crit", "crit_mult", "critDmg", "critDmg_mult", "dmg_mult",
	"vamp", "gold", "exp", "hp_regen",
	"atk_mult", "def_mult", "hp_mult", "global_hp_mult", "global_maxMp_mult",
	"skillLevel_fire", "skillLevel_ice", "skillLevel_thunder", "skillLevel_light", "skillLevel_dark",
}

func (s Stat) String() string                { return enumName(statNames, int(s)) }
func (s Stat) MarshalText() ([]byte, error)  { return []byte(s.String()), nil }
func (s *Stat) UnmarshalText(b []byte) error { return unmarshalEnum(s, "stat", statNames, b) }

// ResStat returns the resistance option type for an element.
func ResStat(e Element) Stat { return StatResFire + Stat(e-Fire) }

// SkillLevelStat returns the skill-level option type for an element.
func SkillLevelStat(e Element) Stat { return StatSkillFire + Stat(e-Fire) }

// IsRes reports whether s is an elemental resistance.
func (s Stat) IsRes() bool { return s >= StatResFire && s <= StatResDark }

// IsSkillLevel reports whether s is an elemental skill-level bonus.
func (s Stat) IsSkillLevel() bool { return s >= StatSkillFire && s <= StatSkillDark }

// Element returns the element of a resistance or skill-level stat.
func (s Stat) Element() Element {
	switch {
	case s.IsRes():
		return Fire + Element(s-StatResFire)
	case s.IsSkillLevel():
		return Fire + Element(s-StatSkillFire)
	}
	return ElementNone
}

// IsPercent reports whether the option value is a 1-10 percentage roll.
func (s Stat) IsPercent() bool {
	switch s {
	case StatCritMult, StatCritDmgMult, StatDmgMult, StatAtkMult, StatDefMult,
		StatHPMult, StatGlobalHPMult, StatGlobalMPMult, StatEvade, StatCrit:
		return true
	}
	return false
}

// IsAttribute reports whether s is one of the three base attributes.
func (s Stat) IsAttribute() bool { return s == StatStr || s == StatDex || s == StatInt }

// ==================== Skill tree effects ====================

// EffectKind is the key of a skill-tree node effect.
type EffectKind uint8

const (
	EffStr EffectKind = iota
	EffDex
	EffInt
	EffAtkMult
	EffDefMult
	EffHPMult
	EffCrit
	EffVamp
	EffCdSpeed
	EffGoldMult
	EffExpMult
	EffCritDmg
	EffResFire
	EffResIce
	EffResThunder
	EffResLight
	EffResDark
	EffResAll
	EffAllStats
	EffMaxMPMult
	EffFireDmg
	EffIceDmg
	EffThunderDmg
	EffLightDmg
	EffDarkDmg
	EffAllElementDmg
	EffectKindCount
)

var effectNames = []string{
	"str", "dex", "int", "atk_mult", "def_mult", "hp_mult", "crit", "vamp",
	"cdSpeed", "goldMult", "expMult", "critDmg",
	"res_fire", "res_ice", "res_thunder", "res_light", "res_dark", "res_all",
	"all_stats", "maxMp_mult",
	"fire_dmg", "ice_dmg", "thunder_dmg", "light_dmg", "dark_dmg", "all_element_dmg",
}

func (k EffectKind) String() string                { return enumName(effectNames, int(k)) }
func (k EffectKind) MarshalText() ([]byte, error)  { return []byte(k.String()), nil }
func (k *EffectKind) UnmarshalText(b []byte) error { return unmarshalEnum(k, "effect", effectNames, b) }

// ==================== Item type ====================

type ItemType uint8

const (
	Weapon ItemType = iota
	Armor
	Amulet
	Ring
	Belt
	Feet
	SkillBook
	InkPot
	MagicStone
	EnhancementStone
	EnchantScroll
	ElementStone
	SpecialStone
	RerollScroll
	OptionSlotStone
	RarityUpgradeStone
	ItemTypeCount
)

var itemTypeNames = []string{
	"weapon", "armor", "amulet", "ring", "belt", "feet", "skill", "ink", "stone",
	"enhancement_stone", "enchant_scroll", "element_stone", "special_stone",
	"reroll_scroll", "option_slot_stone", "rarity_upgrade_stone",
}

// EquipmentTypes lists the gear types in loot-table order.
var EquipmentTypes = []ItemType{Weapon, Armor, Amulet, Ring, Belt, Feet}

func (t ItemType) String() string                { return enumName(itemTypeNames, int(t)) }
func (t ItemType) MarshalText() ([]byte, error)  { return []byte(t.String()), nil }
func (t *ItemType) UnmarshalText(b []byte) error { return unmarshalEnum(t, "item type", itemTypeNames, b) }

// IsEquipment reports whether items of this type go into a gear slot and
// carry options.
func (t ItemType) IsEquipment() bool { return t <= Feet }

// IsConsumable reports whether items of this type mutate equipment.
func (t ItemType) IsConsumable() bool { return t >= EnhancementStone && t < ItemTypeCount }

// ==================== Skills / buffs / inks ====================

type SkillKind uint8

const (
	SkillAttack SkillKind = iota
	SkillHeal
	SkillBuff
)

var skillKindNames = []string{"attack", "heal", "buff"}

func (k SkillKind) String() string                { return enumName(skillKindNames, int(k)) }
func (k SkillKind) MarshalText() ([]byte, error)  { return []byte(k.String()), nil }
func (k *SkillKind) UnmarshalText(b []byte) error { return unmarshalEnum(k, "skill kind", skillKindNames, b) }

type BuffType uint8

const (
	BuffAtk BuffType = iota
	BuffDef
	BuffCdSpeed
	BuffCrit
	BuffHPRegen
	BuffTypeCount
)

var buffTypeNames = []string{"atk", "def", "cdSpeed", "crit", "hpRegen"}

func (b BuffType) String() string                { return enumName(buffTypeNames, int(b)) }
func (b BuffType) MarshalText() ([]byte, error)  { return []byte(b.String()), nil }
func (b *BuffType) UnmarshalText(t []byte) error { return unmarshalEnum(b, "buff type", buffTypeNames, t) }

// InkKind is what an ink effect changes on a skill.
type InkKind uint8

const (
	InkPower InkKind = iota
	InkCooldown
	InkDuration
	InkMultiCast
	InkAutoCast
)

var inkKindNames = []string{"power", "cd", "duration", "multi_cast", "auto_cast"}

func (k InkKind) String() string                { return enumName(inkKindNames, int(k)) }
func (k InkKind) MarshalText() ([]byte, error)  { return []byte(k.String()), nil }
func (k *InkKind) UnmarshalText(b []byte) error { return unmarshalEnum(k, "ink kind", inkKindNames, b) }

// ==================== Magic stone modifiers ====================

type StoneMod uint8

const (
	RiskHP StoneMod = iota
	RiskAtk
	RiskDmg
	ModFloorAdd
	RewardExp
	RewardGold
	RewardDrop
	QualRarity
	ModFloorSub
	StoneModCount
)

var stoneModNames = []string{
	"risk_hp", "risk_atk", "risk_dmg", "mod_floor_add",
	"reward_exp", "reward_gold", "reward_drop", "qual_rarity", "mod_floor_sub",
}

func (m StoneMod) String() string                { return enumName(stoneModNames, int(m)) }
func (m StoneMod) MarshalText() ([]byte, error)  { return []byte(m.String()), nil }
func (m *StoneMod) UnmarshalText(b []byte) error { return unmarshalEnum(m, "stone mod", stoneModNames, b) }

// IsRisk reports whether the modifier makes the dungeon harder.
func (m StoneMod) IsRisk() bool { return m <= ModFloorAdd }

// ==================== Phase ====================

type Phase uint8

const (
	PhaseTown Phase = iota
	PhaseDungeon
)

var phaseNames = []string{"town", "dungeon"}

func (p Phase) String() string { return enumName(phaseNames, int(p)) }

// BattleState is the dungeon session's combat state machine.
type BattleState uint8

const (
	InCombat BattleState = iota
	Victory
	Cleared
	Defeated
)

var battleStateNames = []string{"in_combat", "victory", "cleared", "defeated"}

func (s BattleState) String() string { return enumName(battleStateNames, int(s)) }

func unmarshalEnum[T ~uint8](dst *T, kind string, names []string, b []byte) error {
	v, err := parseEnum[T](kind, names, string(b))
	if err != nil {
		return err
	}
	*dst = v
	return nil
}

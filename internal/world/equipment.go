package world

import "encoding/json"

// Slot identifies an equipment slot.
type Slot uint8

const (
	SlotWeapon Slot = iota
	SlotArmor
	SlotAmulet
	SlotRing1
	SlotRing2
	SlotBelt
	SlotFeet
	SlotSkill1
	SlotSkill2
	SlotSkill3
	SlotCount
)

// SkillSlots is the number of skill slots (skill1..skill3).
const SkillSlots = 3

var slotNames = []string{"weapon", "armor", "amulet", "ring1", "ring2", "belt", "feet", "skill1", "skill2", "skill3"}

func (s Slot) String() string                { return enumName(slotNames, int(s)) }
func (s Slot) MarshalText() ([]byte, error)  { return []byte(s.String()), nil }
func (s *Slot) UnmarshalText(b []byte) error { return unmarshalEnum(s, "slot", slotNames, b) }

// ParseSlot resolves a slot name such as "ring2".
func ParseSlot(name string) (Slot, error) { return parseEnum[Slot]("slot", slotNames, name) }

// SkillSlot returns the slot for skill index 0..2.
func SkillSlot(i int) Slot { return SlotSkill1 + Slot(i) }

// IsSkill reports whether s is one of skill1..skill3.
func (s Slot) IsSkill() bool { return s >= SlotSkill1 && s <= SlotSkill3 }

// SkillIndex returns 0..2 for a skill slot.
func (s Slot) SkillIndex() int { return int(s - SlotSkill1) }

// Accepts reports whether an item of type t may occupy the slot.
func (s Slot) Accepts(t ItemType) bool {
	switch s {
	case SlotWeapon:
		return t == Weapon
	case SlotArmor:
		return t == Armor
	case SlotAmulet:
		return t == Amulet
	case SlotRing1, SlotRing2:
		return t == Ring
	case SlotBelt:
		return t == Belt
	case SlotFeet:
		return t == Feet
	case SlotSkill1, SlotSkill2, SlotSkill3:
		return t == SkillBook
	}
	return false
}

// SlotsFor lists the slots an item type can go into, in preference order.
func SlotsFor(t ItemType) []Slot {
	var out []Slot
	for s := Slot(0); s < SlotCount; s++ {
		if s.Accepts(t) {
			out = append(out, s)
		}
	}
	return out
}

// Equipment tracks what a player currently has equipped.
// Each slot holds a pointer to an Item (nil = empty).
type Equipment struct {
	Slots [SlotCount]*Item
}

// Get returns the item in a slot, or nil.
func (e *Equipment) Get(slot Slot) *Item {
	if slot >= SlotCount {
		return nil
	}
	return e.Slots[slot]
}

// Set places an item in a slot (or nil to clear) and returns the previous
// occupant.
func (e *Equipment) Set(slot Slot, item *Item) *Item {
	if slot >= SlotCount {
		return nil
	}
	prev := e.Slots[slot]
	e.Slots[slot] = item
	return prev
}

// Weapon returns the currently equipped weapon, or nil.
func (e *Equipment) Weapon() *Item {
	return e.Slots[SlotWeapon]
}

// Find returns the slot holding the item with the given ID.
func (e *Equipment) Find(id string) (Slot, *Item) {
	for s, it := range e.Slots {
		if it != nil && it.ID == id {
			return Slot(s), it
		}
	}
	return SlotCount, nil
}

// Gear returns the equipped non-skill items in slot order.
func (e *Equipment) Gear() []*Item {
	out := make([]*Item, 0, SlotSkill1)
	for s := SlotWeapon; s < SlotSkill1; s++ {
		if it := e.Slots[s]; it != nil {
			out = append(out, it)
		}
	}
	return out
}

// FirstFreeSkillSlot returns the first empty skill slot, or skill1 when all
// are taken.
func (e *Equipment) FirstFreeSkillSlot() Slot {
	for i := 0; i < SkillSlots; i++ {
		if e.Slots[SkillSlot(i)] == nil {
			return SkillSlot(i)
		}
	}
	return SlotSkill1
}

// MarshalJSON writes every slot, empty ones as null, so a restore can tell
// "unequipped" apart from "missing".
func (e Equipment) MarshalJSON() ([]byte, error) {
	m := make(map[Slot]*Item, SlotCount)
	for s, it := range e.Slots {
		m[Slot(s)] = it
	}
	return json.Marshal(m)
}

// UnmarshalJSON overlays the slots present in b. Absent slots keep their
// current item; items that do not fit their slot are dropped.
func (e *Equipment) UnmarshalJSON(b []byte) error {
	var m map[Slot]*Item
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	for s, it := range m {
		if s >= SlotCount {
			continue
		}
		if it != nil && !s.Accepts(it.Type) {
			it = nil
		}
		e.Slots[s] = it
	}
	return nil
}

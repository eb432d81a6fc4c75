package system

import "errors"

// Rule violations surfaced to the player as warnings. State is unchanged
// whenever one of these is returned.
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrNotEquipment     = errors.New("target is not equipment")
	ErrNotConsumable    = errors.New("item is not an equipment consumable")
	ErrNotEquippable    = errors.New("item cannot be equipped")
	ErrWrongSlot        = errors.New("item does not fit that slot")
	ErrRequirements     = errors.New("stat requirements not met")
	ErrSlotEmpty        = errors.New("slot is empty")
	ErrInventoryFull    = errors.New("inventory is full")
	ErrWarehouseFull    = errors.New("warehouse is full")
	ErrNotInk           = errors.New("item is not an ink")
	ErrNotSkill         = errors.New("target is not a skill")
	ErrInkSlotsFull     = errors.New("no free ink slot")
	ErrSlotsFull        = errors.New("no free option slot")
	ErrNoEligibleOption = errors.New("no eligible option left")
	ErrOptionPresent    = errors.New("option already present")
	ErrNoOptions        = errors.New("item has no options")
	ErrMaxRarity        = errors.New("already at maximum rarity")
	ErrSlotCap          = errors.New("option slots already at maximum")
	ErrRarityTooLow     = errors.New("stone rarity too low for this item")
	ErrEmptySkillSlot   = errors.New("no skill in that slot")
	ErrOnCooldown       = errors.New("skill is on cooldown")
	ErrNotEnoughMP      = errors.New("not enough MP")
	ErrNotEnoughGold    = errors.New("not enough gold")
	ErrFullHealth       = errors.New("already at full health")
	ErrNoStatPoints     = errors.New("no stat points")
	ErrNotAttribute     = errors.New("only str, dex and int can be raised")
	ErrNoSkillPoints    = errors.New("no skill points")
	ErrUnknownNode      = errors.New("unknown skill node")
	ErrAlreadyLearned   = errors.New("skill node already learned")
	ErrPrerequisite     = errors.New("prerequisite not learned")
	ErrAlreadyInDungeon = errors.New("already in a dungeon")
	ErrNotAStone        = errors.New("item is not a magic stone")
)

package world

// Buff is a timed stat boost created by a buff skill.
type Buff struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Type      BuffType `json:"buffType"`
	Value     float64  `json:"val"`
	Remaining float64  `json:"duration"` // seconds
}

// Player is the persistent character.
type Player struct {
	Level         int            `json:"level"`
	Exp           int            `json:"exp"`
	ExpToNext     int            `json:"expToNext"`
	Gold          int            `json:"gold"`
	HP            int            `json:"hp"`
	MaxHP         int            `json:"maxHp"`
	MP            int            `json:"mp"`
	MaxMP         int            `json:"maxMp"`
	Attrs         Attrs          `json:"stats"`
	StatPoints    int            `json:"statPoints"`
	SkillPoints   int            `json:"skillPoints"`
	LearnedSkills map[string]int `json:"learnedSkills"`
	Buffs         []Buff         `json:"buffs"`
}

// NewPlayer returns a fresh level-1 character. HP/MP maxima are filled in by
// the first stat recompute.
func NewPlayer() *Player {
	return &Player{
		Level:         1,
		ExpToNext:     50,
		HP:            150,
		MaxHP:         150,
		MP:            65,
		MaxMP:         65,
		Attrs:         Attrs{Str: 5, Dex: 5, Int: 5},
		LearnedSkills: make(map[string]int),
	}
}

// Learned reports whether a skill-tree node is learned.
func (p *Player) Learned(id string) bool { return p.LearnedSkills[id] > 0 }

// Stats is the derived combat profile produced by the stat aggregator.
type Stats struct {
	Str int `json:"str"`
	Dex int `json:"dex"`
	Int int `json:"int"`

	Atk      int     `json:"atk"`
	Def      int     `json:"def"`
	MaxHP    int     `json:"maxHp"`
	MaxMP    int     `json:"maxMp"`
	Crit     int     `json:"crit"`
	CritDmg  int     `json:"critDmg"` // percent added on top of the base 150%
	Vamp     int     `json:"vamp"`
	GoldMult int     `json:"goldMult"` // percent
	ExpMult  int     `json:"expMult"`  // percent
	CdSpeed  float64 `json:"cdSpeed"`
	Evade    int     `json:"evade"`
	DmgMult  int     `json:"dmgMult"` // percent
	HPRegen  int     `json:"hpRegen"` // per second

	Res        [ElementCount]int     `json:"res"`
	SkillLevel [ElementCount]int     `json:"skillLevel"`
	ElementDmg [ElementCount]float64 `json:"elementDmg"`
}

// Attrs returns the effective attributes.
func (s Stats) Attrs() Attrs { return Attrs{Str: s.Str, Dex: s.Dex, Int: s.Int} }

// Enemy is the monster currently being fought. Never persisted.
type Enemy struct {
	Name    string
	Icon    string
	MaxHP   int
	HP      int
	Atk     int
	Element Element
	Exp     int
	Gold    int
	Boss    bool
	Wait    int
	MaxWait int
}

// Alive reports whether the enemy can still fight.
func (e *Enemy) Alive() bool { return e != nil && e.HP > 0 }

// Mods is the summed risk/reward modifier set of a dungeon run.
type Mods map[StoneMod]int

// Get returns the summed value of m (0 when absent or nil map).
func (m Mods) Get(k StoneMod) int { return m[k] }

// Session is one dungeon run.
type Session struct {
	ID         uint64
	Floor      int
	StartFloor int
	MaxFloor   int
	Mods       Mods
	StoneTier  int
	State      BattleState
}

// Relative returns the 1-based floor index within the run.
func (s *Session) Relative() int { return s.Floor - s.StartFloor + 1 }

// FinalFloor reports whether the current floor is the run's last.
func (s *Session) FinalFloor() bool { return s.Relative() >= s.MaxFloor }

// Limits are the collection capacities.
type Limits struct {
	Inventory int
	Warehouse int
	Stones    int
}

// State is the whole game. Accessed only from the game loop goroutine.
type State struct {
	Player    *Player
	Equip     Equipment
	Inv       *Inventory
	Warehouse *Inventory
	Stones    *Inventory

	Phase     Phase
	Session   *Session
	Enemy     *Enemy
	Cooldowns [SkillSlots]float64

	// Stats caches the last aggregator result. Recomputed, never patched.
	Stats Stats

	Dirty bool

	sessionSeq uint64
}

// NewState creates the default starting game: a fresh player holding a
// wooden stick and ragged clothes.
func NewState(lim Limits) *State {
	s := &State{
		Player:    NewPlayer(),
		Inv:       NewInventory(lim.Inventory),
		Warehouse: NewInventory(lim.Warehouse),
		Stones:    NewInventory(lim.Stones),
	}
	s.Equip.Set(SlotWeapon, &Item{ID: NewItemID(), Type: Weapon, Name: "Wooden Stick", Rarity: Common, Power: 1, Base: BaseStats{Atk: 2}})
	s.Equip.Set(SlotArmor, &Item{ID: NewItemID(), Type: Armor, Name: "Ragged Clothes", Rarity: Common, Power: 1, Base: BaseStats{Def: 1}})
	return s
}

// NewSession opens a dungeon run with a fresh identity.
func (s *State) NewSession(floor, maxFloor, tier int, mods Mods) *Session {
	s.sessionSeq++
	s.Session = &Session{
		ID:         s.sessionSeq,
		Floor:      floor,
		StartFloor: floor,
		MaxFloor:   maxFloor,
		Mods:       mods,
		StoneTier:  tier,
		State:      InCombat,
	}
	return s.Session
}

// SameSession reports whether id is still the live run. Delayed
// continuations call it before touching session state.
func (s *State) SameSession(id uint64) bool {
	return s.Phase == PhaseDungeon && s.Session != nil && s.Session.ID == id
}

// FindItem looks an item up in equipment, then inventory.
func (s *State) FindItem(id string) *Item {
	if _, it := s.Equip.Find(id); it != nil {
		return it
	}
	return s.Inv.Find(id)
}

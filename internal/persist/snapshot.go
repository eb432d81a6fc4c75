package persist

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inkblade/hackslash/internal/world"
	"golang.org/x/crypto/blake2b"
)

// snapshotVersion is written into every envelope.
const snapshotVersion = 1

// ErrCorrupted is returned when a saved blob does not parse or its checksum
// does not match.
var ErrCorrupted = errors.New("snapshot corrupted")

// snapshot is the persisted subset of the game state. Combat state (phase,
// session, enemy, cooldowns) is never saved.
type snapshot struct {
	Player    *world.Player    `json:"player"`
	Equipment *world.Equipment `json:"equipment"`
	Inventory *world.Inventory `json:"inventory"`
	Warehouse *world.Inventory `json:"warehouse"`
	Stones    *world.Inventory `json:"stones"`
}

// envelope wraps the state bytes with their blake2b-256 digest.
type envelope struct {
	Version  int             `json:"version"`
	Checksum string          `json:"checksum"`
	State    json.RawMessage `json:"state"`
}

func checksum(b []byte) string {
	sum := blake2b.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// Encode serializes the persistent part of st.
func Encode(st *world.State) ([]byte, error) {
	state, err := json.Marshal(snapshot{
		Player:    st.Player,
		Equipment: &st.Equip,
		Inventory: st.Inv,
		Warehouse: st.Warehouse,
		Stones:    st.Stones,
	})
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return json.Marshal(envelope{Version: snapshotVersion, Checksum: checksum(state), State: state})
}

// Decode restores a state from an encoded snapshot. Fields missing from the
// blob keep the defaults of a new game; collections are trimmed to lim.
// The returned state is in town with no derived stats computed yet.
func Decode(b []byte, lim world.Limits) (*world.State, error) {
	var env envelope
	if err := json.Unmarshal(b, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if len(env.State) == 0 || env.Checksum != checksum(env.State) {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupted)
	}

	st := world.NewState(lim)
	snap := snapshot{
		Player:    st.Player,
		Equipment: &st.Equip,
		Inventory: st.Inv,
		Warehouse: st.Warehouse,
		Stones:    st.Stones,
	}
	// 解碼到預設值之上：缺少的欄位保留新遊戲的預設
	if err := json.Unmarshal(env.State, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
	}
	if snap.Player == nil {
		snap.Player = world.NewPlayer()
	}
	st.Player = snap.Player
	st.Inv = orEmpty(snap.Inventory, lim.Inventory)
	st.Warehouse = orEmpty(snap.Warehouse, lim.Warehouse)
	st.Stones = orEmpty(snap.Stones, lim.Stones)

	p := st.Player
	if p.LearnedSkills == nil {
		p.LearnedSkills = make(map[string]int)
	}
	if p.Level < 1 {
		p.Level = 1
	}
	p.HP = max(0, p.HP)
	p.MP = max(0, p.MP)
	return st, nil
}

func orEmpty(inv *world.Inventory, limit int) *world.Inventory {
	if inv == nil {
		return world.NewInventory(limit)
	}
	inv.Limit = limit
	return inv
}

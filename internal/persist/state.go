package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

// LoadState reads and decodes a slot. A missing slot starts a new game; a
// corrupted one is logged and also starts a new game. Only store I/O errors
// are returned.
func LoadState(ctx context.Context, store Store, slot string, lim world.Limits, log *zap.Logger) (*world.State, error) {
	b, err := store.Load(ctx, slot)
	if errors.Is(err, ErrNotFound) {
		log.Info("沒有存檔，建立新角色", zap.String("slot", slot))
		return world.NewState(lim), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	st, err := Decode(b, lim)
	if err != nil {
		log.Warn("存檔損壞，改用預設角色", zap.String("slot", slot), zap.Error(err))
		return world.NewState(lim), nil
	}
	return st, nil
}

// SaveState encodes st and writes it to slot. Clears st.Dirty on success.
func SaveState(ctx context.Context, store Store, slot string, st *world.State) error {
	b, err := Encode(st)
	if err != nil {
		return err
	}
	if err := store.Save(ctx, slot, b); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	st.Dirty = false
	return nil
}

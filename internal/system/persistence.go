package system

import (
	"context"
	"time"

	coresys "github.com/inkblade/hackslash/internal/core/system"
	"github.com/inkblade/hackslash/internal/persist"
	"github.com/inkblade/hackslash/internal/world"
	"go.uber.org/zap"
)

const saveTimeout = 5 * time.Second

// PersistenceSystem 定期自動存檔（只在狀態有變動時）。Phase 4 (Persist)。
type PersistenceSystem struct {
	world     *world.State
	store     persist.Store
	slot      string
	log       *zap.Logger
	tickCount int
	interval  int // auto-save every N ticks
}

func NewPersistenceSystem(ws *world.State, store persist.Store, slot string, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	return &PersistenceSystem{
		world:    ws,
		store:    store,
		slot:     slot,
		log:      log,
		interval: max(1, intervalTicks),
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	if !s.world.Dirty {
		return // 沒有變動就不存
	}
	if err := s.save(); err != nil {
		s.log.Error("自動存檔失敗", zap.String("slot", s.slot), zap.Error(err))
		return
	}
	s.log.Debug("自動存檔完成", zap.String("slot", s.slot))
}

// SaveNow 立即存檔，忽略 dirty 旗標。關機時呼叫。
func (s *PersistenceSystem) SaveNow() error {
	if err := s.save(); err != nil {
		return err
	}
	s.log.Info("存檔完成", zap.String("slot", s.slot), zap.Int("level", s.world.Player.Level))
	return nil
}

func (s *PersistenceSystem) save() error {
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	return persist.SaveState(ctx, s.store, s.slot, s.world)
}

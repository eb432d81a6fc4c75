package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/inkblade/hackslash/internal/config"
	"github.com/inkblade/hackslash/internal/core/event"
	coresys "github.com/inkblade/hackslash/internal/core/system"
	"github.com/inkblade/hackslash/internal/data"
	"github.com/inkblade/hackslash/internal/gen"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/persist"
	"github.com/inkblade/hackslash/internal/scripting"
	"github.com/inkblade/hackslash/internal/system"
	"github.com/inkblade/hackslash/internal/world"
)

var errQuit = errors.New("quit requested")

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config
	cfg := config.Default()
	cfgPath := "config/hackslash.toml"
	if p := os.Getenv("HACKSLASH_CONFIG"); p != "" {
		cfgPath = p
	}
	if _, err := os.Stat(cfgPath); err == nil {
		if cfg, err = config.Load(cfgPath); err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Storage.Slot)

	// 3. Content tables and formulas
	printSection("資料載入")
	tables, err := data.LoadDir(cfg.Data.Dir)
	if err != nil {
		return fmt.Errorf("load tables: %w", err)
	}
	printStat("怪物", tables.Monsters.Count())
	printStat("技能", tables.Skills.Count())
	printStat("墨水", tables.Inks.Count())
	printStat("裝備選項", tables.Options.Count())
	printStat("強化道具", tables.Consumables.Count())
	printStat("技能樹節點", tables.SkillTree.Count())

	lua, err := scripting.NewEngine(cfg.Scripting.Dir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer lua.Close()
	printOK("Lua 公式載入完成")
	fmt.Println()

	// 4. Storage
	printSection("存檔")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	lim := world.Limits{
		Inventory: cfg.Game.MaxInventory,
		Warehouse: cfg.Game.MaxWarehouse,
		Stones:    cfg.Game.MaxStones,
	}
	ws, err := persist.LoadState(ctx, store, cfg.Storage.Slot, lim, log)
	if err != nil {
		return fmt.Errorf("load save: %w", err)
	}
	printStat("角色等級", ws.Player.Level)
	printStat("金幣", ws.Player.Gold)
	fmt.Println()

	// 5. Wire systems
	seed := cfg.Game.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	bus := event.NewBus()
	deps := &handler.Deps{
		Config:    cfg,
		Log:       log,
		World:     ws,
		Tables:    tables,
		Gen:       gen.New(rand.New(rand.NewPCG(seed, seed>>1|1)), tables),
		Scripting: lua,
		Bus:       bus,
		Scheduler: coresys.NewScheduler(),
	}
	runner := coresys.NewRunner()
	system.Install(runner, deps)
	saver := system.NewPersistenceSystem(ws, store, cfg.Storage.Slot, log, cfg.Storage.AutosaveTicks)
	runner.Register(saver)

	reg := handler.NewRegistry(log)
	handler.RegisterAll(reg, deps)
	pilot := newAutopilot(ws, tables.SkillTree, reg, log)
	subscribeLog(bus, os.Stdout)

	// 6. Game loop
	sigCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(sigCtx)

	printSection("遊戲就緒")
	printStat("系統", runner.Len())
	printReady(fmt.Sprintf("遊戲迴圈啟動 (tick: %s)", cfg.Game.TickRate))
	printReady("輸入 status / auto off / quit")
	fmt.Println()

	g.Go(func() error {
		lines := readLines(os.Stdin)
		ticker := time.NewTicker(cfg.Game.TickRate)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case line, ok := <-lines:
				if !ok {
					lines = nil // stdin closed: keep running on autopilot
					continue
				}
				if err := console(line, ws, reg, pilot); err != nil {
					return err
				}
			case <-ticker.C:
				pilot.Step()
				runner.Tick(cfg.Game.TickRate)
				bus.Flush()
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		if sigCtx.Err() != nil {
			log.Info("收到關閉信號")
		}
		return nil
	})

	err = g.Wait()
	if errors.Is(err, errQuit) {
		err = nil
	}

	// 7. Final save; the loop goroutine has exited so the state is ours
	if serr := saver.SaveNow(); serr != nil {
		log.Error("關閉前存檔失敗", zap.Error(serr))
	}
	log.Info("遊戲已停止", zap.Uint64("ticks", runner.Ticks()))
	return err
}

// console handles one stdin line on the game loop goroutine.
func console(line string, ws *world.State, reg *handler.Registry, pilot *autopilot) error {
	cmd, ctl, err := parseLine(line)
	if err != nil {
		fmt.Printf("  \033[91m%v\033[0m\n", err)
		return nil
	}
	switch ctl {
	case ctlQuit:
		return errQuit
	case ctlStatus:
		printStatus(os.Stdout, ws)
		return nil
	case ctlAutoOn:
		pilot.enabled = true
		return nil
	case ctlAutoOff:
		pilot.enabled = false
		return nil
	}
	if cmd.Op != 0 {
		// rejections already reach the battle log as warnings
		_ = reg.Dispatch(ws.Phase, cmd)
	}
	return nil
}

// openStore builds the configured persistence backend. The returned close
// func is always safe to call.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (persist.Store, func(), error) {
	switch cfg.Storage.Driver {
	case "memory":
		printOK("記憶體存檔（不保存到磁碟）")
		return persist.NewMemoryStore(), func() {}, nil

	case "postgres":
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		printOK("PostgreSQL 連線成功")
		version, err := persist.RunMigrations(ctx, db.Pool, log)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		printOK(fmt.Sprintf("資料庫遷移完成 (版本 %d)", version))
		return persist.NewPGStore(db), db.Close, nil

	default:
		fs, err := persist.NewFileStore(cfg.Storage.Dir)
		if err != nil {
			return nil, nil, fmt.Errorf("file store: %w", err)
		}
		printOK(fmt.Sprintf("檔案存檔目錄 %s", cfg.Storage.Dir))
		return fs, func() {}, nil
	}
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/width"

	"github.com/inkblade/hackslash/internal/core/event"
	"github.com/inkblade/hackslash/internal/handler"
	"github.com/inkblade/hackslash/internal/world"
)

var printer = message.NewPrinter(language.English)

// ── Startup display helpers ────────────────────────────────────────

func printBanner(slot string) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m              Hackslash  v0.1.0            \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m        放置型砍殺 RPG · 戰鬥模擬核心       \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1m存檔:\033[0m %s\n\n", slot)
}

// displayWidth counts terminal columns: East Asian wide runes take two.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func printSection(title string) {
	lineLen := max(3, 46-displayWidth(title)-1)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := printer.Sprintf("%d", count)
	dotsLen := max(3, 42-displayWidth(label)-len(numStr))
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Battle log output ─────────────────────────────────────────────

var logColors = map[string]string{
	event.ColorInfo:    "0",
	event.ColorDamage:  "31",
	event.ColorHeal:    "32",
	event.ColorGold:    "33",
	event.ColorLoot:    "35",
	event.ColorWarning: "91",
	event.ColorLevel:   "36;1",
	event.ColorCrit:    "31;1",
}

// subscribeLog prints every battle-log line as it is flushed.
func subscribeLog(bus *event.Bus, out io.Writer) {
	event.Subscribe(bus, func(e event.LogEntry) {
		code, ok := logColors[e.Color]
		if !ok {
			code = "0"
		}
		fmt.Fprintf(out, "  \033[%sm%s\033[0m\n", code, e.Message)
	})
}

func printStatus(out io.Writer, ws *world.State) {
	p := ws.Player
	printer.Fprintf(out, "  Lv %d  HP %d/%d  MP %d/%d  Gold %d  EXP %d/%d\n",
		p.Level, p.HP, p.MaxHP, p.MP, p.MaxMP, p.Gold, p.Exp, p.ExpToNext)
	if ws.Session != nil && ws.Enemy != nil {
		printer.Fprintf(out, "  F%d  %s  HP %d/%d\n", ws.Session.Floor, ws.Enemy.Name, ws.Enemy.HP, ws.Enemy.MaxHP)
	}
}

// ── Console input ─────────────────────────────────────────────────

// readLines forwards stdin lines until EOF. The goroutine is not joined:
// a blocked read ends with the process.
func readLines(in io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			ch <- sc.Text()
		}
	}()
	return ch
}

// control is a console request that is not a game command.
type control uint8

const (
	ctlNone control = iota
	ctlStatus
	ctlAutoOn
	ctlAutoOff
	ctlQuit
)

// parseLine turns one console line into a game command or a control.
//
//	attack | skill <1-3> | enter [stoneID] | town | heal | sell <id>
//	equip <id> | unequip <slot> | use <consumableID> <targetID> | ink <inkID> <skillID>
//	deposit <id> | withdraw <id> | str | dex | int | learn <node>
//	status | auto on|off | quit
func parseLine(line string) (handler.Command, control, error) {
	f := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(f) == 0 {
		return handler.Command{}, ctlNone, nil
	}
	arg := func(i int) string {
		if i < len(f) {
			return f[i]
		}
		return ""
	}
	need := func(n int) error {
		if len(f) < n+1 {
			return fmt.Errorf("%s: expected %d argument(s)", f[0], n)
		}
		return nil
	}

	switch f[0] {
	case "status":
		return handler.Command{}, ctlStatus, nil
	case "auto":
		if arg(1) == "off" {
			return handler.Command{}, ctlAutoOff, nil
		}
		return handler.Command{}, ctlAutoOn, nil
	case "quit", "exit":
		return handler.Command{}, ctlQuit, nil
	case "attack", "a":
		return handler.Command{Op: handler.OpAttack}, ctlNone, nil
	case "skill", "s":
		if err := need(1); err != nil {
			return handler.Command{}, ctlNone, err
		}
		n, err := strconv.Atoi(f[1])
		if err != nil {
			return handler.Command{}, ctlNone, fmt.Errorf("skill: %w", err)
		}
		return handler.Command{Op: handler.OpUseSkill, Index: n - 1}, ctlNone, nil
	case "enter":
		return handler.Command{Op: handler.OpEnterDungeon, ItemID: arg(1)}, ctlNone, nil
	case "town":
		return handler.Command{Op: handler.OpReturnToTown}, ctlNone, nil
	case "heal":
		return handler.Command{Op: handler.OpHeal}, ctlNone, nil
	case "str", "dex", "int":
		var st world.Stat
		if err := st.UnmarshalText([]byte(f[0])); err != nil {
			return handler.Command{}, ctlNone, err
		}
		return handler.Command{Op: handler.OpAllocateStat, Stat: st}, ctlNone, nil
	case "learn":
		if err := need(1); err != nil {
			return handler.Command{}, ctlNone, err
		}
		return handler.Command{Op: handler.OpLearnNode, NodeID: f[1]}, ctlNone, nil
	case "unequip":
		if err := need(1); err != nil {
			return handler.Command{}, ctlNone, err
		}
		sl, err := world.ParseSlot(f[1])
		if err != nil {
			return handler.Command{}, ctlNone, err
		}
		return handler.Command{Op: handler.OpUnequip, Slot: sl}, ctlNone, nil
	}

	// item commands keep the ID's original case
	raw := strings.Fields(strings.TrimSpace(line))
	byID := map[string]handler.Op{
		"equip":    handler.OpEquip,
		"sell":     handler.OpSell,
		"deposit":  handler.OpDeposit,
		"withdraw": handler.OpWithdraw,
	}
	if op, ok := byID[f[0]]; ok {
		if err := need(1); err != nil {
			return handler.Command{}, ctlNone, err
		}
		return handler.Command{Op: op, ItemID: raw[1], Slot: world.SlotCount}, ctlNone, nil
	}
	switch f[0] {
	case "use", "ink":
		if err := need(2); err != nil {
			return handler.Command{}, ctlNone, err
		}
		op := handler.OpUseItem
		if f[0] == "ink" {
			op = handler.OpAttachInk
		}
		return handler.Command{Op: op, ItemID: raw[1], Target: raw[2]}, ctlNone, nil
	}
	return handler.Command{}, ctlNone, fmt.Errorf("unknown command %q", f[0])
}

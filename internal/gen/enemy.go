package gen

import (
	"math"

	"github.com/inkblade/hackslash/internal/world"
)

const (
	enemyGrowth     = 1.15
	bossScaling     = 3.0
	bossAtkMult     = 1.5
	elementalChance = 0.4
	minEnemyWait    = 20
	bossIcon        = "👑"
)

// IsBossFloor reports whether floor spawns a boss: the run's final floor or
// every tenth floor.
func IsBossFloor(floor int, final bool) bool {
	return final || floor%10 == 0
}

// Enemy creates the monster for a floor.
func (g *Generator) Enemy(floor int, mods world.Mods, finalBoss bool) *world.Enemy {
	scaling := math.Pow(enemyGrowth, float64(floor-1))
	arch := g.tables.Monsters.ForFloor(floor)

	boss := IsBossFloor(floor, finalBoss)
	hpScaling := scaling
	atkScaling := 1.0
	if boss {
		hpScaling *= bossScaling
		atkScaling = bossAtkMult
	}
	hpMod := 1 + float64(mods.Get(world.RiskHP))/100
	atkMod := 1 + float64(mods.Get(world.RiskAtk))/100

	element := world.ElementNone
	if boss || g.rng.Float64() < elementalChance {
		element = world.Elements[g.pick(len(world.Elements))]
	}

	hp := int(math.Floor(float64(arch.BaseHP) * hpScaling * hpMod))
	e := &world.Enemy{
		Name:    arch.Name,
		Icon:    arch.Icon,
		MaxHP:   hp,
		HP:      hp,
		Atk:     int(math.Floor(float64(floor*2+5) * atkScaling * atkMod)),
		Element: element,
		Exp:     int(math.Floor(float64(arch.BaseExp) * scaling)),
		Gold:    int(math.Floor(float64(arch.BaseGold) * scaling)),
		Boss:    boss,
		MaxWait: max(minEnemyWait, 100-floor),
	}
	if boss {
		e.Name = "BOSS: " + arch.Name + " Lord"
		e.Icon = bossIcon
	}
	return e
}

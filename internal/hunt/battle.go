package hunt

import (
	"context"
	"math"
	"math/big"
	"sync"
	"time"
)

// PlayerMaxHP is the player's health at the start of every battle.
const PlayerMaxHP = 100

// The player hits for 5..14 and the monster for 3..10.
const (
	playerMinHit    = 5
	playerHitRange  = 10
	monsterMinHit   = 3
	monsterHitRange = 8
)

// Rand is the randomness a battle draws damage from. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// lockedRand serializes draws so concurrent battles can share one source.
type lockedRand struct {
	mu  sync.Mutex
	rng Rand
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(n)
}

// Round is one exchange of blows. MonsterDamage is zero when the player's hit was fatal.
type Round struct {
	Number        int    `json:"number"`
	PlayerDamage  uint64 `json:"player_damage"`
	MonsterDamage uint64 `json:"monster_damage"`
	PlayerHP      uint64 `json:"player_hp"`
	MonsterHP     uint64 `json:"monster_hp"`
}

// BattleResult summarizes a finished battle.
type BattleResult struct {
	Victory     bool    `json:"victory"`
	Rounds      []Round `json:"rounds"`
	DamageDealt uint64  `json:"damage_dealt"`
	DamageTaken uint64  `json:"damage_taken"`
}

// Battle simulates the client-side fight between the player and one monster.
type Battle struct {
	rng     Rand
	pace    time.Duration
	onRound func(Round)
}

// NewBattle builds a Battle. pace is the pause after each round; zero disables it.
// onRound, when set, observes every round as it happens.
func NewBattle(rng Rand, pace time.Duration, onRound func(Round)) *Battle {
	return &Battle{rng: rng, pace: pace, onRound: onRound}
}

// Run fights a monster with monsterHP hit points. The player strikes first and
// the monster answers only while alive. Rounds continue until one side drops to zero.
func (b *Battle) Run(ctx context.Context, monsterHP uint64) (BattleResult, error) {
	playerHP := uint64(PlayerMaxHP)
	var result BattleResult

	for round := 1; monsterHP > 0 && playerHP > 0; round++ {
		r := Round{Number: round}

		r.PlayerDamage = uint64(b.rng.Intn(playerHitRange) + playerMinHit)
		monsterHP = subFloor(monsterHP, r.PlayerDamage)
		result.DamageDealt += r.PlayerDamage

		if monsterHP > 0 {
			r.MonsterDamage = uint64(b.rng.Intn(monsterHitRange) + monsterMinHit)
			playerHP = subFloor(playerHP, r.MonsterDamage)
			result.DamageTaken += r.MonsterDamage
		}

		r.PlayerHP = playerHP
		r.MonsterHP = monsterHP
		result.Rounds = append(result.Rounds, r)
		if b.onRound != nil {
			b.onRound(r)
		}

		if b.pace > 0 {
			timer := time.NewTimer(b.pace)
			select {
			case <-ctx.Done():
				timer.Stop()
				return BattleResult{}, ctx.Err()
			case <-timer.C:
			}
		} else if err := ctx.Err(); err != nil {
			return BattleResult{}, err
		}
	}

	result.Victory = monsterHP == 0
	return result, nil
}

func subFloor(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// hpOf saturates a contract HP value into uint64. The player always falls long
// before a saturated monster would.
func hpOf(v *big.Int) uint64 {
	switch {
	case v == nil || v.Sign() <= 0:
		return 0
	case !v.IsUint64():
		return math.MaxUint64
	default:
		return v.Uint64()
	}
}

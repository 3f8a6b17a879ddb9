package leaderboard

import (
	"math/big"
	"sort"
	"strconv"

	"monadArcade/internal/model"
)

func formatTokenAmount(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0"
	}
	if decimals == 0 {
		return value.String()
	}
	sign := value.Sign()
	abs := new(big.Int).Abs(value)
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	rat := new(big.Rat).SetFrac(abs, denom)
	text := rat.FloatString(int(decimals))
	if sign < 0 {
		return "-" + text
	}
	return text
}

// ScoreValue parses an ether-denominated score for JSON output.
func ScoreValue(score string) float64 {
	val, err := strconv.ParseFloat(score, 64)
	if err != nil {
		return 0
	}
	return val
}

// SortEntries orders entries by score descending, then address.
func SortEntries(entries []model.LeaderboardEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		si, _ := new(big.Rat).SetString(entries[i].Score)
		sj, _ := new(big.Rat).SetString(entries[j].Score)
		if si == nil {
			si = new(big.Rat)
		}
		if sj == nil {
			sj = new(big.Rat)
		}
		if cmp := si.Cmp(sj); cmp != 0 {
			return cmp > 0
		}
		return entries[i].Address < entries[j].Address
	})
}

package chain

import (
	"fmt"
	"math/big"
	"strings"
)

// EtherDecimals is the decimals of the native token and the arcade's ERC20s.
const EtherDecimals = 18

// ParseUnits converts a decimal string such as "1.5" into base units.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, fmt.Errorf("empty amount")
	}
	negative := strings.HasPrefix(value, "-")
	if negative {
		value = value[1:]
	}

	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" && frac == "" {
		return nil, fmt.Errorf("invalid amount: %q", value)
	}
	if whole == "" {
		whole = "0"
	}
	if !isDigits(whole) || (frac != "" && !isDigits(frac)) {
		return nil, fmt.Errorf("invalid amount: %q", value)
	}
	if len(frac) > int(decimals) {
		return nil, fmt.Errorf("amount %q has more than %d decimals", value, decimals)
	}
	frac += strings.Repeat("0", int(decimals)-len(frac))

	out, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount: %q", value)
	}
	if negative {
		out.Neg(out)
	}
	return out, nil
}

// ParseEther converts an ether string into wei.
func ParseEther(value string) (*big.Int, error) {
	return ParseUnits(value, EtherDecimals)
}

// FormatUnits renders base units as a decimal string, keeping at least one fractional digit.
func FormatUnits(value *big.Int, decimals uint8) string {
	if value == nil {
		return "0.0"
	}
	if decimals == 0 {
		return value.String()
	}
	sign := ""
	abs := new(big.Int).Abs(value)
	if value.Sign() < 0 {
		sign = "-"
	}
	denom := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil)
	whole, rem := new(big.Int).QuoRem(abs, denom, new(big.Int))

	frac := rem.String()
	frac = strings.Repeat("0", int(decimals)-len(frac)) + frac
	frac = strings.TrimRight(frac, "0")
	if frac == "" {
		frac = "0"
	}
	return sign + whole.String() + "." + frac
}

// FormatEther renders wei as ether.
func FormatEther(value *big.Int) string {
	return FormatUnits(value, EtherDecimals)
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

package common

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	ArkDecimals = 8 // ARK has 8 decimals (arktoshi)
	SOLDecimals = 9 // SOL has 9 decimals (lamports)
)

// ArktoshiToARK converts arktoshi to an ARK string without float precision loss
func ArktoshiToARK(arktoshi uint64) string {
	return FormatWithDecimals(arktoshi, ArkDecimals)
}

// ARKToArktoshi converts an ARK string to arktoshi without float precision loss
func ARKToArktoshi(ark string) (uint64, error) {
	return ParseWithDecimals(ark, ArkDecimals)
}

// LamportsToSOL converts lamports to SOL string without float precision loss
func LamportsToSOL(lamports uint64) string {
	return FormatWithDecimals(lamports, SOLDecimals)
}

// SOLToLamports converts SOL string to lamports without float precision loss
func SOLToLamports(sol string) (uint64, error) {
	return ParseWithDecimals(sol, SOLDecimals)
}

// FormatWithDecimals converts integer to decimal string by inserting decimal point.
// Trailing fractional zeros are dropped, so whole amounts have no point at all.
// Example: FormatWithDecimals(24981836, 9) = "0.024981836", FormatWithDecimals(500000000, 8) = "5"
func FormatWithDecimals(value uint64, decimals int) string {
	s := strconv.FormatUint(value, 10)
	if decimals <= 0 {
		return s
	}

	// Pad with leading zeros if needed
	if len(s) <= decimals {
		s = strings.Repeat("0", decimals-len(s)+1) + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	whole, frac := s[:pos], strings.TrimRight(s[pos:], "0")
	if frac == "" {
		return whole
	}
	return whole + "." + frac
}

// ParseWithDecimals converts decimal string to integer by removing decimal point.
// Fractional digits beyond the unit precision are rejected rather than truncated.
// Example: ParseWithDecimals("0.024981836", 9) = 24981836
func ParseWithDecimals(s string, decimals int) (uint64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty string")
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("negative amount")
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, fmt.Errorf("invalid decimal format")
	}

	whole := parts[0]
	if whole == "" {
		whole = "0"
	}
	frac := ""
	if len(parts) == 2 {
		frac = parts[1]
	}

	if len(frac) > decimals {
		if strings.Trim(frac[decimals:], "0") != "" {
			return 0, fmt.Errorf("too many decimal places: max %d", decimals)
		}
		frac = frac[:decimals]
	}

	// Pad fractional part to exact decimals, combine and parse
	frac += strings.Repeat("0", decimals-len(frac))
	n, err := strconv.ParseUint(whole+frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return n, nil
}

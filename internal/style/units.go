package style

import (
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"

	"github.com/xsllayout/xsl-layout/internal/fo"
)

// Unit conversion factors to points (spec §4.A "Unit resolution").
const (
	ptPerMM = 72.0 / 25.4
	ptPerCM = 28.3465
	ptPerIn = 72.0
	ptPerPx = 0.75
)

// parseDimension splits a numeric-prefixed CSS-like length token such as
// "12pt", "1.5em" or "40%" into its numeric value and unit suffix, using
// tdewolff/parse/v2's byte-level number scanner instead of a hand-rolled
// suffix chain. It returns (number, unit, ok).
func parseDimension(raw string) (float64, string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, "", false
	}
	b := []byte(raw)
	numLen, totalLen := parse.Dimension(b)
	if numLen == 0 {
		return 0, "", false
	}
	num, err := strconv.ParseFloat(string(b[:numLen]), 64)
	if err != nil {
		return 0, "", false
	}
	unit := strings.ToLower(strings.TrimSpace(string(b[numLen:totalLen])))
	return num, unit, true
}

// resolveLength converts a raw property string into a points length or a
// symbolic percentage, per spec §4.A. fontSize is the font-size that
// em/ex are resolved against; a percentage is returned unresolved for
// the consumer to pass to ResolvePercentage.
func resolveLength(raw string, fontSize float64) (fo.Value, bool) {
	num, unit, ok := parseDimension(raw)
	if !ok {
		return fo.Value{}, false
	}
	switch unit {
	case "pt", "":
		return fo.Value{Kind: fo.KindLength, Length: num}, true
	case "mm":
		return fo.Value{Kind: fo.KindLength, Length: num * ptPerMM}, true
	case "cm":
		return fo.Value{Kind: fo.KindLength, Length: num * ptPerCM}, true
	case "in":
		return fo.Value{Kind: fo.KindLength, Length: num * ptPerIn}, true
	case "px":
		return fo.Value{Kind: fo.KindLength, Length: num * ptPerPx}, true
	case "em":
		return fo.Value{Kind: fo.KindLength, Length: num * fontSize}, true
	case "ex":
		return fo.Value{Kind: fo.KindLength, Length: num * (0.5 * fontSize)}, true
	case "%":
		return fo.Value{Kind: fo.KindPercentage, Percent: num}, true
	default:
		return fo.Value{}, false
	}
}

// ResolvePercentage resolves a symbolic percentage value against a base
// dimension, called by consumers once the containing dimension is known
// (spec §4.A).
func ResolvePercentage(v fo.Value, base float64) float64 {
	if v.Kind == fo.KindPercentage {
		return base * v.Percent / 100
	}
	return v.Length
}

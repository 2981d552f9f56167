package style

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xsllayout/xsl-layout/internal/fo"
)

var namedColors = map[string]fo.Color{
	"black":       {0, 0, 0, 255},
	"white":       {255, 255, 255, 255},
	"red":         {255, 0, 0, 255},
	"green":       {0, 128, 0, 255},
	"blue":        {0, 0, 255, 255},
	"gray":        {128, 128, 128, 255},
	"grey":        {128, 128, 128, 255},
	"transparent": {0, 0, 0, 0},
}

// parseColor parses #rgb, #rrggbb, rgb(...) and a small set of named
// colors into an fo.Color. It returns ok=false (rather than silently
// defaulting) so the caller can emit a diagnostic per spec §4.A.
func parseColor(raw string) (fo.Color, bool) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if v == "" {
		return fo.Color{}, false
	}
	if c, ok := namedColors[v]; ok {
		return c, true
	}
	if strings.HasPrefix(v, "#") {
		return parseHexColor(v)
	}
	if strings.HasPrefix(v, "rgb(") || strings.HasPrefix(v, "rgba(") {
		inner := strings.TrimSuffix(strings.TrimPrefix(strings.TrimPrefix(v, "rgba("), "rgb("), ")")
		parts := strings.Split(inner, ",")
		if len(parts) < 3 {
			return fo.Color{}, false
		}
		r, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		g, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		b, err3 := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err1 != nil || err2 != nil || err3 != nil {
			return fo.Color{}, false
		}
		return fo.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, true
	}
	return fo.Color{}, false
}

func parseHexColor(s string) (fo.Color, bool) {
	s = strings.TrimPrefix(s, "#")
	expand := func(c byte) string { return fmt.Sprintf("%c%c", c, c) }
	var rs, gs, bs string
	switch len(s) {
	case 3:
		rs, gs, bs = expand(s[0]), expand(s[1]), expand(s[2])
	case 6:
		rs, gs, bs = s[0:2], s[2:4], s[4:6]
	default:
		return fo.Color{}, false
	}
	r, err1 := strconv.ParseUint(rs, 16, 8)
	g, err2 := strconv.ParseUint(gs, 16, 8)
	b, err3 := strconv.ParseUint(bs, 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return fo.Color{}, false
	}
	return fo.Color{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, true
}

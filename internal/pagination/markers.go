package pagination

import "github.com/xsllayout/xsl-layout/internal/fo"

// markerEntry is one fo:marker instance recorded during page placement,
// tagged with the page it landed on so retrieve-marker can apply the
// first/last-starting/ending-within-page rules (spec §4.D.5).
type markerEntry struct {
	page int
	node *fo.Node
}

// markerRegistry indexes every placed marker by its marker-class-name,
// in placement order, across the whole document (not just one page),
// since retrieve-position=last-ending-within-page may need to carry
// over content from an earlier page per XSL 1.1 §6.11.4 (see
// DESIGN.md's Open Question decision).
type markerRegistry struct {
	byClass map[string][]markerEntry
}

func newMarkerRegistry() *markerRegistry {
	return &markerRegistry{byClass: map[string][]markerEntry{}}
}

func (r *markerRegistry) record(page int, className string, node *fo.Node) {
	if className == "" {
		return
	}
	r.byClass[className] = append(r.byClass[className], markerEntry{page: page, node: node})
}

// Retrieve implements spec §4.D.5's four retrieve-position values for
// the given page. It returns nil if no marker of this class has been
// placed anywhere at or before this page.
func (r *markerRegistry) Retrieve(className, position string, page int) *fo.Node {
	entries := r.byClass[className]
	if len(entries) == 0 {
		return nil
	}
	switch position {
	case "first-starting-within-page":
		for _, e := range entries {
			if e.page == page {
				return e.node
			}
		}
		return nil
	case "last-starting-within-page":
		var last *markerEntry
		for i := range entries {
			if entries[i].page == page {
				last = &entries[i]
			}
		}
		if last != nil {
			return last.node
		}
		return nil
	case "first-including-carryover":
		for _, e := range entries {
			if e.page == page {
				return e.node
			}
		}
		// no marker starts on this page: carry over the nearest preceding one
		return nearestBefore(entries, page)
	case "last-ending-within-page":
		var last *markerEntry
		for i := range entries {
			if entries[i].page <= page {
				last = &entries[i]
			}
		}
		if last != nil {
			return last.node
		}
		return nil
	default:
		return nearestBefore(entries, page)
	}
}

func nearestBefore(entries []markerEntry, page int) *fo.Node {
	var best *markerEntry
	for i := range entries {
		if entries[i].page <= page {
			best = &entries[i]
		}
	}
	if best != nil {
		return best.node
	}
	return nil
}

package linebreak

import "math"

// Fitness classes per Knuth & Plass 1981 §argue: tight, loose, very
// loose and decent lines are penalized for sitting next to each other
// (a "decent" line followed by a "very loose" one looks uneven).
const (
	fitnessTight = iota
	fitnessDecent
	fitnessLoose
	fitnessVeryLoose
)

type breakpoint struct {
	index    int
	line     int
	fitness  int
	flagged  bool // break item at this point was a flagged penalty (e.g. a hyphen)
	demerits float64
	ratio    float64
	prev     *breakpoint
}

// KnuthPlassOptions configures the optimum-fit search (spec §4.C
// "Knuth-Plass"): tolerance bounds the worst adjustment ratio accepted
// before the line is considered infeasible; the demerit weights
// penalize consecutive flagged (hyphenated) breaks and fitness-class
// jumps. There is no looseness option: the minimum-demerit path is
// always chosen.
type KnuthPlassOptions struct {
	Tolerance        float64
	FlaggedDemerit   float64
	FitnessDemerit   float64
	MaxToleranceTry  int // widen tolerance this many times before falling back to Greedy
}

func DefaultKnuthPlassOptions() KnuthPlassOptions {
	return KnuthPlassOptions{Tolerance: 2.0, FlaggedDemerit: 100, FitnessDemerit: 100, MaxToleranceTry: 3}
}

// KnuthPlass implements the optimum-fit dynamic program (spec §4.C): at
// every legal breakpoint, every currently active candidate line is
// extended; candidates whose adjustment ratio exceeds tolerance become
// infeasible and are deactivated; the minimum-total-demerit path is
// retained per (breakpoint, fitness class) per Knuth & Plass §859. If no
// feasible solution exists even after widening tolerance
// MaxToleranceTry times, it falls back to Greedy so the paragraph is
// never left unbroken (this fallback has no analog in Knuth & Plass's
// original TeX algorithm — TeX instead reports "Overfull \hbox"; the
// spec requires layout to always complete, so degrading to first-fit
// here plays the role of the teacher's sole greedy strategy).
func KnuthPlass(items []Item, lineWidth func(lineIndex int) float64, opt KnuthPlassOptions) []Line {
	tol := opt.Tolerance
	for attempt := 0; attempt <= opt.MaxToleranceTry; attempt++ {
		if lines, ok := tryBreak(items, lineWidth, tol, opt); ok {
			return lines
		}
		tol *= 1.5
	}
	return Greedy(items, lineWidth)
}

func tryBreak(items []Item, lineWidth func(int) float64, tolerance float64, opt KnuthPlassOptions) ([]Line, bool) {
	start := &breakpoint{index: -1, line: 0, fitness: fitnessDecent}
	active := []*breakpoint{start}

	cumWidth := make([]float64, len(items)+1)
	cumStr := make([]float64, len(items)+1)
	cumShr := make([]float64, len(items)+1)
	for i, it := range items {
		cumWidth[i+1] = cumWidth[i]
		cumStr[i+1] = cumStr[i]
		cumShr[i+1] = cumShr[i]
		switch it.Kind {
		case Box:
			cumWidth[i+1] += it.Width
		case Glue:
			cumWidth[i+1] += it.Width
			cumStr[i+1] += it.Stretch
			cumShr[i+1] += it.Shrink
		}
	}

	for i, it := range items {
		legal := it.IsLegalBreak() || (it.Kind == Glue && i > 0 && items[i-1].Kind == Box)
		if !legal {
			continue
		}
		var stillOpen []*breakpoint
		var newCandidates []*breakpoint
		for _, bp := range active {
			w := cumWidth[i] - cumWidth[bp.index+1]
			st := cumStr[i] - cumStr[bp.index+1]
			sh := cumShr[i] - cumShr[bp.index+1]
			// include the breaking item's own width if it's a box-adjacent penalty
			if it.Kind == Penalty {
				w += it.Width
			}
			target := lineWidth(bp.line)
			ratio := adjustmentRatio(w, st, sh, target)

			if ratio < -1 || (it.Kind == Penalty && it.PenaltyCost >= PenaltyInfinite) {
				// overfull or a forbidden break here: bp cannot extend past
				// this point at all, drop it from future consideration
				continue
			}
			// bp remains feasible to break at a later point too, unless this
			// is the forced final break (nothing comes after it)
			if !it.IsForcedBreak() {
				stillOpen = append(stillOpen, bp)
			}

			if math.Abs(ratio) > tolerance && !it.IsForcedBreak() {
				continue
			}
			fitness := fitnessOf(ratio)
			pc := 0.0
			if it.Kind == Penalty {
				pc = it.PenaltyCost
			}
			dem := demerits(ratio, pc)
			flagged := it.Kind == Penalty && it.Flagged
			dem += flaggedDemeritFor(flagged, bp.flagged, opt)
			if abs(fitness-bp.fitness) > 1 {
				dem += opt.FitnessDemerit
			}
			total := bp.demerits + dem
			candidate := &breakpoint{
				index: i, line: bp.line + 1, fitness: fitness, flagged: flagged,
				demerits: total, ratio: ratio, prev: bp,
			}
			best := findBest(newCandidates, candidate)
			if best == candidate {
				newCandidates = replaceOrAppend(newCandidates, candidate)
			}
		}
		if len(newCandidates) == 0 && !it.IsForcedBreak() {
			active = dedupeActive(stillOpen)
			continue
		}
		active = dedupeActive(append(stillOpen, newCandidates...))
		if it.IsForcedBreak() {
			break
		}
	}

	if len(active) == 0 {
		return nil, false
	}
	best := active[0]
	for _, bp := range active[1:] {
		if bp.demerits < best.demerits {
			best = bp
		}
	}
	return reconstruct(items, best), true
}

func adjustmentRatio(width, stretch, shrink, target float64) float64 {
	diff := target - width
	if diff > 0 {
		if stretch <= 0 {
			return 1e6
		}
		return diff / stretch
	}
	if diff < 0 {
		if shrink <= 0 {
			return -1e6
		}
		return diff / shrink
	}
	return 0
}

func fitnessOf(ratio float64) int {
	switch {
	case ratio < -0.5:
		return fitnessTight
	case ratio <= 0.5:
		return fitnessDecent
	case ratio <= 1.0:
		return fitnessLoose
	default:
		return fitnessVeryLoose
	}
}

func demerits(ratio, penaltyCost float64) float64 {
	badness := 100 * math.Pow(math.Abs(ratio), 3)
	base := math.Pow(10+badness, 2)
	if penaltyCost >= 0 {
		base += penaltyCost * penaltyCost
	} else if penaltyCost > -10000 {
		base -= penaltyCost * penaltyCost
	}
	return base
}

// flaggedDemeritFor implements Knuth & Plass §859's rule that two
// consecutive flagged (hyphenated) breaks are penalized: the penalty
// only applies when both the candidate break and the breakpoint it
// extends are themselves flagged, not merely when the candidate is.
func flaggedDemeritFor(flagged, prevFlagged bool, opt KnuthPlassOptions) float64 {
	if flagged && prevFlagged {
		return opt.FlaggedDemerit
	}
	return 0
}

func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// findBest returns whichever of the existing best-for-this-fitness
// candidate in next or the new candidate has lower demerits; a nil
// existing entry means candidate wins by default.
func findBest(next []*breakpoint, candidate *breakpoint) *breakpoint {
	for _, bp := range next {
		if bp.line == candidate.line && bp.fitness == candidate.fitness && bp.index == candidate.index {
			if bp.demerits <= candidate.demerits {
				return bp
			}
			return candidate
		}
	}
	return candidate
}

func replaceOrAppend(next []*breakpoint, candidate *breakpoint) []*breakpoint {
	for i, bp := range next {
		if bp.line == candidate.line && bp.fitness == candidate.fitness && bp.index == candidate.index {
			next[i] = candidate
			return next
		}
	}
	return append(next, candidate)
}

func dedupeActive(in []*breakpoint) []*breakpoint {
	seen := map[[2]int]*breakpoint{}
	for _, bp := range in {
		key := [2]int{bp.line, bp.fitness}
		if cur, ok := seen[key]; !ok || bp.demerits < cur.demerits {
			seen[key] = bp
		}
	}
	out := make([]*breakpoint, 0, len(seen))
	for _, bp := range seen {
		out = append(out, bp)
	}
	return out
}

func reconstruct(items []Item, last *breakpoint) []Line {
	var chain []*breakpoint
	for bp := last; bp != nil && bp.prev != nil; bp = bp.prev {
		chain = append(chain, bp)
	}
	// chain is end-to-start; reverse
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	var lines []Line
	start := 0
	for _, bp := range chain {
		end := bp.index + 1
		if end <= start {
			end = start + 1
		}
		lines = append(lines, Line{Items: items[start:end], StartIndex: start, EndIndex: end, Ratio: bp.ratio})
		start = end
	}
	return lines
}

package linebreak

import "testing"

func TestFlaggedDemeritOnlyAppliesWhenBothBreaksAreFlagged(t *testing.T) {
	opt := DefaultKnuthPlassOptions()

	if got := flaggedDemeritFor(true, true, opt); got != opt.FlaggedDemerit {
		t.Fatalf("flaggedDemeritFor(true, true) = %v, want %v (two consecutive flagged breaks)", got, opt.FlaggedDemerit)
	}
	if got := flaggedDemeritFor(true, false, opt); got != 0 {
		t.Fatalf("flaggedDemeritFor(true, false) = %v, want 0 (current break flagged but the previous one wasn't)", got)
	}
	if got := flaggedDemeritFor(false, true, opt); got != 0 {
		t.Fatalf("flaggedDemeritFor(false, true) = %v, want 0 (previous break flagged but the current one isn't)", got)
	}
	if got := flaggedDemeritFor(false, false, opt); got != 0 {
		t.Fatalf("flaggedDemeritFor(false, false) = %v, want 0 (neither break flagged)", got)
	}
}

func TestKnuthPlassCarriesFlaggedStateAcrossBreakpoints(t *testing.T) {
	// Three hyphenation points in a row, each a legal (but not forced)
	// flagged break; with a generous line width every break is feasible,
	// so the cheapest path is the one with the fewest lines, whatever its
	// flagged history. This just confirms KnuthPlass still accounts for
	// every item when breakpoint.flagged is threaded through the search,
	// rather than the search losing items or panicking on a flagged
	// candidate.
	items := []Item{
		NewBox(4, "aaaa", 0),
		NewPenalty(1, 50, true),
		NewBox(4, "bbbb", 0),
		NewPenalty(1, 50, true),
		NewBox(4, "cccc", 0),
		NewPenalty(1, 50, true),
		NewBox(4, "dddd", 0),
		NewGlue(0, 1e4, 0),
		NewPenalty(0, PenaltyForced, false),
	}

	lines := KnuthPlass(items, func(int) float64 { return 1000 }, DefaultKnuthPlassOptions())
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1 (line width is generous enough for everything to fit)", len(lines))
	}

	var rebuilt []Item
	for _, l := range lines {
		rebuilt = append(rebuilt, l.Items...)
	}
	if len(rebuilt) != len(items) {
		t.Fatalf("reconstructed %d items, want %d (every item accounted for)", len(rebuilt), len(items))
	}
}

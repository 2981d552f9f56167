package bidi

import (
	"testing"

	"github.com/xsllayout/xsl-layout/internal/fo"
)

func TestDirectionOfDefaultsToLeftToRight(t *testing.T) {
	if got := DirectionOf(nil); got != LeftToRight {
		t.Fatalf("DirectionOf(nil) = %v, want LeftToRight", got)
	}

	empty := fo.NewResolvedStyle()
	if got := DirectionOf(empty); got != LeftToRight {
		t.Fatalf("DirectionOf(no direction property) = %v, want LeftToRight (spec initial value)", got)
	}
}

func TestDirectionOfReadsExplicitRTL(t *testing.T) {
	st := fo.NewResolvedStyle()
	st.Values[fo.PropDirection] = fo.Value{Kind: fo.KindKeyword, Keyword: "rtl"}
	if got := DirectionOf(st); got != RightToLeft {
		t.Fatalf("DirectionOf(direction=rtl) = %v, want RightToLeft", got)
	}
}

func TestResolvePureLTRTextIsASingleRun(t *testing.T) {
	runs := New().Resolve("hello world", LeftToRight)
	if len(runs) != 1 {
		t.Fatalf("got %d runs for plain ASCII text, want 1", len(runs))
	}
	if runs[0].Direction != LeftToRight {
		t.Fatalf("run direction = %v, want LeftToRight", runs[0].Direction)
	}
}

func TestResolveEmptyTextReturnsNoRuns(t *testing.T) {
	if runs := New().Resolve("", LeftToRight); runs != nil {
		t.Fatalf("got %v, want nil for empty text", runs)
	}
}

func TestResolveMixedDirectionTextProducesMultipleRuns(t *testing.T) {
	// A Hebrew run embedded in an English sentence forces at least one
	// embedding-level boundary, which is what this resolver exists to
	// find (the teacher's own BidiProcessor never splits anything).
	runs := New().Resolve("hello שלום world", LeftToRight)
	if len(runs) < 2 {
		t.Fatalf("got %d runs for mixed LTR/RTL text, want at least 2", len(runs))
	}
	var sawRTL bool
	for _, r := range runs {
		if r.Direction == RightToLeft {
			sawRTL = true
		}
	}
	if !sawRTL {
		t.Fatalf("no run was tagged RightToLeft despite Hebrew text in the input")
	}
}

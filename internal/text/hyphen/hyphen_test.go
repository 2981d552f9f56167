package hyphen

import (
	"reflect"
	"testing"
)

func TestHyphenateFindsPatternBreak(t *testing.T) {
	e := New([]string{"hy3phen"}, 2, 3, nil)

	got := e.Hyphenate("hyphen")
	want := []int{2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Hyphenate(%q) = %v, want %v", "hyphen", got, want)
	}
}

func TestHyphenateRespectsMinLeftMinRight(t *testing.T) {
	// With a wide margin, no position satisfies minLeft/minRight so no
	// break point can be reported even though the pattern matches.
	e := New([]string{"hy3phen"}, 4, 4, nil)

	got := e.Hyphenate("hyphen")
	if len(got) != 0 {
		t.Fatalf("Hyphenate(%q) = %v, want no breaks (word shorter than minLeft+minRight)", "hyphen", got)
	}
}

func TestHyphenateShortWordReturnsNoBreaks(t *testing.T) {
	e := New([]string{"hy3phen"}, 2, 3, nil)

	if got := e.Hyphenate("hi"); len(got) != 0 {
		t.Fatalf("Hyphenate(%q) = %v, want no breaks (word too short)", "hi", got)
	}
}

func TestHyphenateUnmatchedWordReturnsNoBreaks(t *testing.T) {
	e := New([]string{"hy3phen"}, 2, 3, nil)

	if got := e.Hyphenate("elephant"); len(got) != 0 {
		t.Fatalf("Hyphenate(%q) = %v, want no breaks (no pattern matches)", "elephant", got)
	}
}

func TestNewSkipsUnparseablePatternsWithoutPanicking(t *testing.T) {
	e := New([]string{"", "hy3phen"}, 2, 3, nil)

	got := e.Hyphenate("hyphen")
	want := []int{2}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Hyphenate(%q) = %v, want %v (empty pattern should be skipped, not break matching)", "hyphen", got, want)
	}
}

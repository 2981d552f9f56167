package fontmetrics

import "testing"

func TestMeasureWidthEmptyTextIsZero(t *testing.T) {
	m := New()
	if got := m.MeasureWidth("", "Helvetica", 12, false, false); got != 0 {
		t.Fatalf("MeasureWidth(\"\") = %v, want 0", got)
	}
}

func TestMeasureWidthNonPositiveFontSizeIsZero(t *testing.T) {
	m := New()
	if got := m.MeasureWidth("hello", "Helvetica", 0, false, false); got != 0 {
		t.Fatalf("MeasureWidth at font-size 0 = %v, want 0", got)
	}
	if got := m.MeasureWidth("hello", "Helvetica", -5, false, false); got != 0 {
		t.Fatalf("MeasureWidth at negative font-size = %v, want 0", got)
	}
}

// TestMeasureWidthScalesLinearlyWithFontSize checks the Core 14 AFM
// glyph widths are applied as a fixed per-size scale factor (spec §3.2
// text width is proportional to font-size for a fixed font/weight/style).
func TestMeasureWidthScalesLinearlyWithFontSize(t *testing.T) {
	m := New()
	const text = "The quick brown fox"

	w10 := m.MeasureWidth(text, "Helvetica", 10, false, false)
	w20 := m.MeasureWidth(text, "Helvetica", 20, false, false)

	if w10 <= 0 {
		t.Fatalf("MeasureWidth at size 10 = %v, want > 0", w10)
	}
	const tolerance = 0.01
	if diff := w20 - 2*w10; diff < -tolerance || diff > tolerance {
		t.Fatalf("width at size 20 = %v, want ~%v (2x width at size 10)", w20, 2*w10)
	}
}

func TestMeasureWidthMonospaceFontIsUniformPerCharacter(t *testing.T) {
	m := New()
	single := m.MeasureWidth("C", "Courier", 12, false, false)
	quad := m.MeasureWidth("CCCC", "Courier", 12, false, false)

	const tolerance = 0.01
	if diff := quad - 4*single; diff < -tolerance || diff > tolerance {
		t.Fatalf("Courier width of \"CCCC\" = %v, want ~%v (4x width of \"C\")", quad, 4*single)
	}
}

func TestMeasureWidthBoldIsAtLeastAsWideAsRegular(t *testing.T) {
	m := New()
	regular := m.MeasureWidth("Layout", "Helvetica", 12, false, false)
	bold := m.MeasureWidth("Layout", "Helvetica", 12, true, false)

	if bold < regular {
		t.Fatalf("bold width %v is narrower than regular width %v, want bold >= regular", bold, regular)
	}
}

func TestResolveCoreFontMapsKnownFamilyAliases(t *testing.T) {
	cases := []struct {
		family string
		want   string
	}{
		{"Arial", "Helvetica"},
		{"sans-serif", "Helvetica"},
		{"Times New Roman", "Times"},
		{"serif", "Times"},
		{"Courier New", "Courier"},
		{"monospace", "Courier"},
		{"Symbol", "Symbol"},
		{"ZapfDingbats", "ZapfDingbats"},
		{"", "Helvetica"},
		{"Some Unknown Family", "Helvetica"},
	}
	for _, c := range cases {
		got, _ := resolveCoreFont(c.family, false, false)
		if got != c.want {
			t.Errorf("resolveCoreFont(%q) family = %q, want %q", c.family, got, c.want)
		}
	}
}

func TestResolveCoreFontStyleFlags(t *testing.T) {
	cases := []struct {
		bold, italic bool
		want         string
	}{
		{false, false, ""},
		{true, false, "B"},
		{false, true, "I"},
		{true, true, "BI"},
	}
	for _, c := range cases {
		_, style := resolveCoreFont("Helvetica", c.bold, c.italic)
		if style != c.want {
			t.Errorf("resolveCoreFont style (bold=%v, italic=%v) = %q, want %q", c.bold, c.italic, style, c.want)
		}
	}
}

// TestMeasureWidthConcurrentInstancesAreIndependent checks two Metrics
// instances don't share the mutable *fpdf.Fpdf the teacher's singleton
// did (spec §5, no process-wide mutable state): setting a font on one
// must not affect the other's next measurement.
func TestMeasureWidthConcurrentInstancesAreIndependent(t *testing.T) {
	a := New()
	b := New()

	a.MeasureWidth("x", "Courier", 40, true, true)
	got := b.MeasureWidth("M", "Helvetica", 12, false, false)
	want := New().MeasureWidth("M", "Helvetica", 12, false, false)

	const tolerance = 0.001
	if diff := got - want; diff < -tolerance || diff > tolerance {
		t.Fatalf("MeasureWidth on instance b = %v after unrelated use of instance a, want %v (unaffected)", got, want)
	}
}

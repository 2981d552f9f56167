package hyphen

// DefaultEnglishPatterns is a small built-in starter set of English
// hyphenation patterns in Liang's notation, covering common suffixes
// and prefixes. It is not the full TeX hyph-en-us.tex pattern file —
// a deployment that needs production-grade coverage should load the
// complete pattern file and pass it to New instead.
var DefaultEnglishPatterns = []string{
	"1tion", "1sion", "1ation", "a1ble", "i1ble",
	"1ing", "1ment", "1ness", "1less", "1ful",
	"1ship", "1hood", "1ity", "1ize", "1ous",
	"2ed1", "1er", "1est", "1ly",
	"con1", "pre1", "pro1", "re1", "un1", "dis1", "in1ter",
}

package model

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// tokenPattern matches runs of two or more word characters
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

var whitespaceRun = regexp.MustCompile(`\s\s+`)

// feature is one non-zero column of a document vector
type feature struct {
	index int
	value float64
}

// vectorizer turns raw text into a sparse TF-IDF row
type vectorizer struct {
	analyzer     string
	minN, maxN   int
	lowercase    bool
	stripAccents string
	sublinearTF  bool
	norm         string
	vocabulary   map[string]int
	idf          []float64
}

func newVectorizer(a VectorizerArtifact) *vectorizer {
	analyzer := a.Analyzer
	if analyzer == "" {
		analyzer = AnalyzerWord
	}

	minN, maxN := a.NgramRange[0], a.NgramRange[1]
	if minN == 0 && maxN == 0 {
		minN, maxN = 1, 1
	}
	if minN == 0 {
		minN = 1
	}

	lowercase := true
	if a.Lowercase != nil {
		lowercase = *a.Lowercase
	}

	n := a.Norm
	if n == "" {
		n = "l2"
	}

	return &vectorizer{
		analyzer:     analyzer,
		minN:         minN,
		maxN:         maxN,
		lowercase:    lowercase,
		stripAccents: a.StripAccents,
		sublinearTF:  a.SublinearTF,
		norm:         n,
		vocabulary:   a.Vocabulary,
		idf:          a.IDF,
	}
}

// transform returns the non-zero features of text ordered by column index
func (v *vectorizer) transform(text string) []feature {
	counts := make(map[int]float64)
	for _, term := range v.analyze(text) {
		if idx, ok := v.vocabulary[term]; ok {
			counts[idx]++
		}
	}

	row := make([]feature, 0, len(counts))
	for idx, tf := range counts {
		if v.sublinearTF {
			tf = 1 + math.Log(tf)
		}
		if len(v.idf) > 0 {
			tf *= v.idf[idx]
		}
		row = append(row, feature{index: idx, value: tf})
	}
	sort.Slice(row, func(i, j int) bool { return row[i].index < row[j].index })

	v.normalize(row)
	return row
}

func (v *vectorizer) normalize(row []feature) {
	var total float64
	switch v.norm {
	case "l2":
		for _, f := range row {
			total += f.value * f.value
		}
		total = math.Sqrt(total)
	case "l1":
		for _, f := range row {
			total += math.Abs(f.value)
		}
	default:
		return
	}
	if total == 0 {
		return
	}
	for i := range row {
		row[i].value /= total
	}
}

// analyze produces the terms looked up in the vocabulary
func (v *vectorizer) analyze(text string) []string {
	text = v.preprocess(text)
	switch v.analyzer {
	case AnalyzerChar:
		return v.charNgrams(text)
	case AnalyzerCharWB:
		return v.charWBNgrams(text)
	default:
		return v.wordNgrams(tokenPattern.FindAllString(text, -1))
	}
}

func (v *vectorizer) preprocess(text string) string {
	if v.lowercase {
		text = strings.ToLower(text)
	}
	switch v.stripAccents {
	case "unicode":
		text = stripAccentsUnicode(text)
	case "ascii":
		text = stripAccentsASCII(text)
	}
	return text
}

func (v *vectorizer) wordNgrams(tokens []string) []string {
	if v.maxN == 1 && v.minN == 1 {
		return tokens
	}

	var terms []string
	if v.minN == 1 {
		terms = append(terms, tokens...)
	}
	for n := max(v.minN, 2); n <= v.maxN; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

func (v *vectorizer) charNgrams(text string) []string {
	runes := []rune(whitespaceRun.ReplaceAllString(text, " "))

	var terms []string
	for n := v.minN; n <= v.maxN && n <= len(runes); n++ {
		for i := 0; i+n <= len(runes); i++ {
			terms = append(terms, string(runes[i:i+n]))
		}
	}
	return terms
}

// charWBNgrams builds character n-grams only inside word boundaries,
// padding each word with a single space on both sides.
func (v *vectorizer) charWBNgrams(text string) []string {
	var terms []string
	for _, word := range strings.Fields(text) {
		w := []rune(" " + word + " ")
		for n := v.minN; n <= v.maxN; n++ {
			offset := 0
			terms = append(terms, string(w[offset:min(offset+n, len(w))]))
			for offset+n < len(w) {
				offset++
				terms = append(terms, string(w[offset:offset+n]))
			}
			// a word shorter than n is counted once
			if offset == 0 {
				break
			}
		}
	}
	return terms
}

// stripAccentsUnicode drops every combining mark from the NFKD form.
// Only pure ASCII input is returned untouched.
func stripAccentsUnicode(s string) string {
	if isASCII(s) {
		return s
	}

	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if norm.NFKD.PropertiesString(string(r)).CCC() != 0 {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

func stripAccentsASCII(s string) string {
	var b strings.Builder
	for _, r := range norm.NFKD.String(s) {
		if r <= unicode.MaxASCII {
			b.WriteRune(r)
		}
	}
	return b.String()
}

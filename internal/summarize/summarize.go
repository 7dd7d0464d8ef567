// Package summarize produces extractive summaries and frequency-ranked
// keyword lists from extracted document text.
package summarize

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	// defaultMaxKeywords is the keyword list cap.
	defaultMaxKeywords = 10

	// defaultSummarySentences is the extractive summary budget.
	defaultSummarySentences = 3

	// minSummaryInput is the minimum text length worth summarizing.
	minSummaryInput = 20

	// truncationLimit caps the verbatim fallback for short texts.
	truncationLimit = 500
)

// wordPattern matches letter runs across latin scripts.
var wordPattern = regexp.MustCompile(`\pL+`)

// sentenceEnd splits on terminal punctuation followed by whitespace.
var sentenceEnd = regexp.MustCompile(`[.!?]+(\s+|$)`)

// Miner turns raw text into a summary and a ranked keyword set.
type Miner struct {
	maxKeywords      int
	summarySentences int
	stopWords        map[string]struct{}
}

// Config holds miner configuration
type Config struct {
	Language         string   // stop word language, default "english"
	ExtraStopWords   []string // merged into the built-in set
	MaxKeywords      int
	SummarySentences int
}

// New creates a Miner
func New(cfg *Config) *Miner {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.MaxKeywords <= 0 {
		cfg.MaxKeywords = defaultMaxKeywords
	}
	if cfg.SummarySentences <= 0 {
		cfg.SummarySentences = defaultSummarySentences
	}

	stop := buildStopWordMap(stopWordsFor(strings.ToLower(cfg.Language)))
	for _, w := range cfg.ExtraStopWords {
		stop[strings.ToLower(w)] = struct{}{}
	}

	return &Miner{
		maxKeywords:      cfg.MaxKeywords,
		summarySentences: cfg.SummarySentences,
		stopWords:        stop,
	}
}

// Keywords returns the top-ranked terms of text in descending
// frequency order. Ties keep first-occurrence order. Degenerate
// input yields an empty (non-nil) slice.
func (m *Miner) Keywords(text string) []string {
	tokens := m.tokenize(text)

	freq := make(map[string]int, len(tokens))
	firstSeen := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		if _, ok := freq[tok]; !ok {
			firstSeen[tok] = i
		}
		freq[tok]++
	}

	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})

	if len(terms) > m.maxKeywords {
		terms = terms[:m.maxKeywords]
	}
	return terms
}

// Summary returns an extractive summary of text: the highest-scoring
// sentences by aggregate term frequency, emitted in document order.
// Texts shorter than the sentence budget are returned verbatim,
// capped at a fixed character limit.
func (m *Miner) Summary(text string) string {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < minSummaryInput {
		return ""
	}

	sentences := splitSentences(trimmed)
	if len(sentences) <= m.summarySentences {
		return truncate(strings.Join(sentences, " "), truncationLimit)
	}

	// Score each sentence by the summed corpus frequency of its
	// non-stopword terms, normalized by sentence length so long
	// sentences don't win on bulk alone.
	freq := make(map[string]int)
	for _, tok := range m.tokenize(trimmed) {
		freq[tok]++
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, 0, len(sentences))
	for i, s := range sentences {
		tokens := m.tokenize(s)
		if len(tokens) == 0 {
			continue
		}
		sum := 0
		for _, tok := range tokens {
			sum += freq[tok]
		}
		ranked = append(ranked, scored{i, float64(sum) / float64(len(tokens))})
	}
	if len(ranked) == 0 {
		return ""
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	if len(ranked) > m.summarySentences {
		ranked = ranked[:m.summarySentences]
	}
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].index < ranked[j].index
	})

	parts := make([]string, len(ranked))
	for i, r := range ranked {
		parts[i] = sentences[r.index]
	}
	return strings.Join(parts, " ")
}

// tokenize lowercases and splits text into keyword candidates:
// letter runs longer than two characters that are not stop words.
func (m *Miner) tokenize(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(words))
	for _, w := range words {
		if utf8.RuneCountInString(w) <= 2 {
			continue
		}
		if _, stop := m.stopWords[w]; stop {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// splitSentences breaks text at terminal punctuation and newlines.
func splitSentences(text string) []string {
	// Treat hard line breaks as sentence boundaries too; extracted
	// spreadsheet and slide text rarely carries punctuation.
	normalized := strings.ReplaceAll(text, "\n", ". ")

	var sentences []string
	last := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(normalized, -1) {
		s := strings.TrimSpace(normalized[last:loc[1]])
		if s != "" && s != "." {
			sentences = append(sentences, s)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(normalized[last:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit]) + "..."
}

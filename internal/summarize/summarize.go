// Package summarize implements extractive summarization for Russian news
// text: TF-IDF sentence scoring with length normalization, plus a greedy
// selection step that skips near-duplicate sentences.
package summarize

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Sentences shorter than this many runes are treated as noise and dropped.
const minSentenceRunes = 30

// Similarity above this threshold marks a candidate as a near-duplicate of
// an already selected sentence.
const duplicateSimilarity = 0.7

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	wordPattern    = regexp.MustCompile(`[A-Za-zА-Яа-яЁё0-9]+`)
)

// SplitSentences splits text into candidate sentences: a split happens after
// [.!?] when followed by a capital letter, and additionally after [;:].
// Fragments shorter than 30 runes are discarded.
func SplitSentences(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.TrimSpace(whitespaceRuns.ReplaceAllString(text, " "))

	var sentences []string
	for _, part := range splitAfterTerminators(text) {
		for _, sub := range splitAfterClauseMarks(part) {
			sub = strings.TrimSpace(sub)
			if utf8.RuneCountInString(sub) >= minSentenceRunes {
				sentences = append(sentences, sub)
			}
		}
	}
	return sentences
}

// splitAfterTerminators splits after sentence-ending punctuation when the
// next non-space rune is an uppercase Cyrillic or Latin letter.
func splitAfterTerminators(text string) []string {
	runes := []rune(text)
	var parts []string
	start := 0
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '.', '!', '?':
			j := i + 1
			for j < len(runes) && runes[j] == ' ' {
				j++
			}
			if j > i+1 && j < len(runes) && isSentenceStart(runes[j]) {
				parts = append(parts, string(runes[start:i+1]))
				start = j
				i = j - 1
			}
		}
	}
	parts = append(parts, string(runes[start:]))
	return parts
}

// splitAfterClauseMarks splits after semicolons and colons followed by space.
func splitAfterClauseMarks(text string) []string {
	runes := []rune(text)
	var parts []string
	start := 0
	for i := 0; i < len(runes)-1; i++ {
		if (runes[i] == ';' || runes[i] == ':') && runes[i+1] == ' ' {
			parts = append(parts, string(runes[start:i+1]))
			start = i + 2
			i++
		}
	}
	parts = append(parts, string(runes[start:]))
	return parts
}

func isSentenceStart(r rune) bool {
	return (r >= 'А' && r <= 'Я') || (r >= 'A' && r <= 'Z') || r == 'Ё'
}

// Tokenize lowercases text and returns word tokens longer than two runes
// that are not Russian stopwords.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}
	raw := wordPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, stop := russianStopwords[t]; stop {
			continue
		}
		if utf8.RuneCountInString(t) > 2 {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// sentenceScores computes a TF-IDF score per sentence with smoothing and a
// length normalization factor that damps very long sentences.
func sentenceScores(sentences []string) []float64 {
	sentenceTokens := make([][]string, len(sentences))
	for i, s := range sentences {
		sentenceTokens[i] = Tokenize(s)
	}

	df := make(map[string]int)
	for _, tokens := range sentenceTokens {
		seen := make(map[string]bool, len(tokens))
		for _, t := range tokens {
			if !seen[t] {
				seen[t] = true
				df[t]++
			}
		}
	}

	numDocs := len(sentences)
	if numDocs < 1 {
		numDocs = 1
	}
	idf := make(map[string]float64, len(df))
	for term, count := range df {
		idf[term] = math.Log(float64(numDocs+1)/float64(count+1)) + 1
	}

	scores := make([]float64, len(sentences))
	for i, tokens := range sentenceTokens {
		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		denom := len(tokens)
		if denom < 1 {
			denom = 1
		}
		var score float64
		for term, freq := range tf {
			score += float64(freq) / float64(denom) * idf[term]
		}
		scores[i] = score / math.Log(float64(8+len(tokens)))
	}
	return scores
}

// jaccard measures token-set overlap between two sentences.
func jaccard(a, b string) float64 {
	ta := tokenSet(a)
	tb := tokenSet(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	inter := 0
	for t := range ta {
		if tb[t] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	return float64(inter) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, t := range Tokenize(s) {
		set[t] = true
	}
	return set
}

// SelectTop picks up to topK sentences by score, skipping near-duplicates,
// and returns them in source order.
func SelectTop(sentences []string, topK int) []string {
	if len(sentences) == 0 || topK <= 0 {
		return nil
	}
	scores := sentenceScores(sentences)

	ranked := make([]int, len(sentences))
	for i := range ranked {
		ranked[i] = i
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return scores[ranked[a]] > scores[ranked[b]]
	})

	var selected []int
	seen := make(map[string]bool)
	for _, idx := range ranked {
		candidate := sentences[idx]
		if seen[candidate] {
			continue
		}
		similar := false
		for _, s := range selected {
			if jaccard(candidate, sentences[s]) > duplicateSimilarity {
				similar = true
				break
			}
		}
		if similar {
			continue
		}
		selected = append(selected, idx)
		seen[candidate] = true
		if len(selected) >= topK {
			break
		}
	}

	sort.Ints(selected)
	out := make([]string, len(selected))
	for i, idx := range selected {
		out[i] = sentences[idx]
	}
	return out
}

// Summarize extracts up to maxSentences representative sentences from text.
// Returns an empty string when the text yields no usable sentences; the
// caller decides the fallback (typically joining the source titles).
func Summarize(text string, maxSentences int) string {
	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	return strings.Join(SelectTop(sentences, maxSentences), " ")
}

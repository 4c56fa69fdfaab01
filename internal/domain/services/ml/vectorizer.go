package ml

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"regexp"
	"strings"
)

// tokenPattern mirrors the tokenizer the vectorizer was fitted with:
// lowercased runs of two or more word characters.
var tokenPattern = regexp.MustCompile(`\b\w\w+\b`)

// Vectorizer is a fitted TF-IDF vectorizer over unigrams and bigrams.
// The vocabulary, idf weights and stopword list are fixed at training time;
// a Vectorizer is read-only after load and safe for concurrent use.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	StopWords  []string       `json:"stop_words"`

	stopSet map[string]struct{}
}

// LoadVectorizer reads a fitted vectorizer artifact from disk.
func LoadVectorizer(path string) (*Vectorizer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vectorizer artifact: %w", err)
	}

	var v Vectorizer
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse vectorizer artifact: %w", err)
	}

	if len(v.Vocabulary) == 0 {
		return nil, fmt.Errorf("vectorizer artifact %s has an empty vocabulary", path)
	}
	if len(v.IDF) != len(v.Vocabulary) {
		return nil, fmt.Errorf("vectorizer artifact %s: idf length %d does not match vocabulary size %d",
			path, len(v.IDF), len(v.Vocabulary))
	}
	for term, idx := range v.Vocabulary {
		if idx < 0 || idx >= len(v.IDF) {
			return nil, fmt.Errorf("vectorizer artifact %s: term %q has out-of-range index %d", path, term, idx)
		}
	}

	v.buildStopSet()
	return &v, nil
}

func (v *Vectorizer) buildStopSet() {
	v.stopSet = make(map[string]struct{}, len(v.StopWords))
	for _, w := range v.StopWords {
		v.stopSet[w] = struct{}{}
	}
}

// tokenize lowercases text, splits it into word tokens and drops stopwords.
func (v *Vectorizer) tokenize(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	tokens := make([]string, 0, len(raw))
	for _, t := range raw {
		if _, stop := v.stopSet[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// Transform maps text to a sparse L2-normalized TF-IDF feature vector,
// keyed by vocabulary index. Out-of-vocabulary terms contribute nothing, so
// an empty or unseen text degrades to the zero vector rather than an error.
func (v *Vectorizer) Transform(text string) map[int]float64 {
	tokens := v.tokenize(text)

	counts := make(map[int]int)
	for i, tok := range tokens {
		if idx, ok := v.Vocabulary[tok]; ok {
			counts[idx]++
		}
		if i+1 < len(tokens) {
			bigram := tok + " " + tokens[i+1]
			if idx, ok := v.Vocabulary[bigram]; ok {
				counts[idx]++
			}
		}
	}

	vec := make(map[int]float64, len(counts))
	var sumSq float64
	for idx, tf := range counts {
		w := float64(tf) * v.IDF[idx]
		vec[idx] = w
		sumSq += w * w
	}

	if sumSq > 0 {
		norm := math.Sqrt(sumSq)
		for idx := range vec {
			vec[idx] /= norm
		}
	}

	return vec
}

// Size returns the dimensionality of the feature space.
func (v *Vectorizer) Size() int {
	return len(v.IDF)
}

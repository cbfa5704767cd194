package fuzzy

import "strings"

// Scorer computes a symmetric string-similarity score on a 0-100 scale.
// Both key normalization and text-value validation accept any conforming
// implementation.
type Scorer interface {
	Score(a, b string) int
}

// Ratio scores strings by normalized Levenshtein edit distance
type Ratio struct{}

// NewRatio creates the default similarity scorer
func NewRatio() *Ratio {
	return &Ratio{}
}

// Score returns 100 for equal strings, 0 for completely dissimilar ones
func (r *Ratio) Score(a, b string) int {
	if a == b {
		return 100
	}
	if a == "" || b == "" {
		return 0
	}
	ar := []rune(a)
	br := []rune(b)
	denom := len(ar)
	if len(br) > denom {
		denom = len(br)
	}
	dist := levenshtein(ar, br)
	score := 100 - (100*dist+denom/2)/denom // rounded
	if score < 0 {
		score = 0
	}
	return score
}

// FoldRatio scores case-insensitively by lowering both inputs first
type FoldRatio struct {
	inner Ratio
}

// NewFoldRatio creates a case-insensitive similarity scorer
func NewFoldRatio() *FoldRatio {
	return &FoldRatio{}
}

// Score lowercases both strings before scoring
func (r *FoldRatio) Score(a, b string) int {
	return r.inner.Score(strings.ToLower(a), strings.ToLower(b))
}

// levenshtein computes edit distance with a two-row dynamic program
func levenshtein(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i, ca := range a {
		curr[0] = i + 1
		for j, cb := range b {
			ins := curr[j] + 1
			del := prev[j+1] + 1
			sub := prev[j]
			if ca != cb {
				sub++
			}
			curr[j+1] = min3(ins, del, sub)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}

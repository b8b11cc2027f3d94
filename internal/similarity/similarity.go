// Package similarity scores free-text relevance between a query and a
// candidate name using Jaro-Winkler similarity.
package similarity

import "strings"

// defaultPrefixWeight is the Winkler scaling factor applied per character of
// common prefix.
const defaultPrefixWeight = 0.1

// maxPrefixLength caps the common prefix considered by the Winkler bonus.
const maxPrefixLength = 4

// Score returns the Jaro-Winkler similarity of a and b in [0,1]. The
// comparison is case-insensitive. Identical non-empty strings score 1;
// if either string is empty the score is 0.
func Score(a, b string) float64 {
	return score(strings.ToLower(a), strings.ToLower(b), defaultPrefixWeight)
}

func score(s1, s2 string, prefixWeight float64) float64 {
	len1, len2 := len(s1), len(s2)
	if len1 == 0 || len2 == 0 {
		return 0
	}

	// Characters match when equal and within half the longer string's
	// length of each other.
	maxDistance := max(len1, len2)/2 - 1

	matched1 := make([]bool, len1)
	matched2 := make([]bool, len2)

	matches := 0
	for i := 0; i < len1; i++ {
		start := max(0, i-maxDistance)
		end := min(i+maxDistance+1, len2)
		for j := start; j < end; j++ {
			if s2[j] != s1[i] || matched2[j] {
				continue
			}
			matched1[i] = true
			matched2[j] = true
			matches++
			break
		}
	}

	if matches == 0 {
		return 0
	}

	// Walk the matched characters of both strings in order; each
	// disagreement is a half transposition.
	transpositions := 0
	k := 0
	for i := 0; i < len1; i++ {
		if !matched1[i] {
			continue
		}
		for !matched2[k] {
			k++
		}
		if s1[i] != s2[k] {
			transpositions++
		}
		k++
	}

	m := float64(matches)
	jaro := (m/float64(len1) + m/float64(len2) + (m-float64(transpositions)/2)/m) / 3

	prefix := 0
	for i := 0; i < min(len1, len2) && i < maxPrefixLength; i++ {
		if s1[i] != s2[i] {
			break
		}
		prefix++
	}

	return jaro + float64(prefix)*prefixWeight*(1-jaro)
}

package swarm

import "strings"

// SimilarityFunc scores how similar two responses are, in [0,1]. It is a
// seam for replacing token-set similarity with an embedding-based measure
// without touching the synthesizer's control flow.
type SimilarityFunc func(a, b string) float64

// JaccardSimilarity is token-set intersection over union, lower-cased and
// whitespace-split.
func JaccardSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)
	if len(setA) == 0 && len(setB) == 0 {
		return 1
	}
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}

	intersection := 0
	for tok := range setA {
		if setB[tok] {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(strings.ToLower(s)) {
		set[tok] = true
	}
	return set
}

// meanPairwiseAgreement averages the similarity of every pair of responses.
func meanPairwiseAgreement(responses []string, sim SimilarityFunc) float64 {
	if len(responses) < 2 {
		return 0
	}
	var total float64
	pairs := 0
	for i := 0; i < len(responses); i++ {
		for j := i + 1; j < len(responses); j++ {
			total += sim(responses[i], responses[j])
			pairs++
		}
	}
	return total / float64(pairs)
}

package search

import "strings"

// queryPunctuation is trimmed from both ends of each query term.
const queryPunctuation = ".,!?;:'\"-()[]{}、。！？「」『』（）・"

func queryTerms(query string) []string {
	words := strings.Fields(query)
	terms := make([]string, 0, len(words))
	for _, word := range words {
		cleaned := strings.ToLower(strings.Trim(word, queryPunctuation))
		if cleaned != "" {
			terms = append(terms, cleaned)
		}
	}
	return terms
}

// containsAllQueryTerms reports whether every query term occurs in document.
// Terms are matched as substrings since Japanese text has no word separators.
func containsAllQueryTerms(document string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	doc := strings.ToLower(document)
	for _, term := range terms {
		if !strings.Contains(doc, term) {
			return false
		}
	}
	return true
}

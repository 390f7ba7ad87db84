package prompt

import "strings"

// Score counts case-insensitive, non-overlapping occurrences of the whole
// topic inside entry.
func Score(entry, topic string) int {
	needle := strings.ToLower(strings.TrimSpace(topic))
	if needle == "" {
		return 0
	}
	return strings.Count(strings.ToLower(entry), needle)
}

// SelectReference returns the corpus entry with the highest Score. Ties,
// including all-zero scores, go to the earliest entry. It reports false only
// for an empty corpus.
func SelectReference(corpus []string, topic string) (string, bool) {
	if len(corpus) == 0 {
		return "", false
	}
	best, bestScore := 0, Score(corpus[0], topic)
	for i := 1; i < len(corpus); i++ {
		if s := Score(corpus[i], topic); s > bestScore {
			best, bestScore = i, s
		}
	}
	return corpus[best], true
}

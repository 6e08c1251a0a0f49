package bot

// Similarity computes a normalized edit-distance ratio between two strings
// in [0, 1]: 1.0 for identical sequences, 0.0 for nothing in common. The
// measure is symmetric and reflexive. It is the indel variant of edit
// distance (insertions and deletions only, substitution counts as both),
// scored as (lenA + lenB - distance) / (lenA + lenB). Equivalently, twice
// the length of the longest common subsequence over the combined length.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}

	ra := []rune(a)
	rb := []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1.0
	}
	if len(ra) == 0 || len(rb) == 0 {
		return 0.0
	}

	dist := indelDistance(ra, rb)
	return float64(total-dist) / float64(total)
}

// indelDistance is the edit distance between two rune sequences when only
// insertions and deletions are allowed. Two-row dynamic programming keeps
// the allocation bounded by the shorter input.
func indelDistance(a, b []rune) int {
	if len(a) < len(b) {
		a, b = b, a
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1]
			} else {
				del := prev[j] + 1
				ins := curr[j-1] + 1
				if del < ins {
					curr[j] = del
				} else {
					curr[j] = ins
				}
			}
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

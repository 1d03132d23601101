package bwtc

import "github.com/gopherbwt/bwtc/bwtc/suffixtree"

// forwardBWT computes the Burrows-Wheeler transform of s using the suffix
// array extracted from an Ukkonen suffix tree built over s. s must be
// non-empty, contain only characters in [MinChar, MaxChar], and end with
// exactly one Sentinel.
func forwardBWT(s string) string {
	checkAlphabet(s)
	validateSentinel(s)

	n := len(s)
	mapped := make([]byte, n)
	for i := 0; i < n; i++ {
		mapped[i] = byte(indexOf(s[i]))
	}
	sa := suffixtree.Build(mapped, AlphabetSize)

	out := make([]byte, n)
	for k, p := range sa {
		out[k] = s[(p-1+n)%n]
	}
	return string(out)
}

// validateSentinel panics with MissingSentinel unless s is non-empty and
// ends with exactly one Sentinel character.
func validateSentinel(s string) {
	if len(s) == 0 {
		panicf(MissingSentinel, "input must be non-empty and end with %q", rune(Sentinel))
	}
	if s[len(s)-1] != Sentinel {
		panicf(MissingSentinel, "input must end with the sentinel %q", rune(Sentinel))
	}
	for i := 0; i < len(s)-1; i++ {
		if s[i] == Sentinel {
			panicf(MissingSentinel, "sentinel %q must appear exactly once, at the final position", rune(Sentinel))
		}
	}
}

// inverseBWT reconstructs the original string from its Burrows-Wheeler
// transform, which must contain Sentinel exactly once. Reconstruction uses
// the LF-mapping identity: the k-th occurrence of a symbol in the last
// column (bwt itself) corresponds to the k-th row starting with that
// symbol in the sorted first column. Because Sentinel sorts lowest and
// occurs once, row 0 of the sorted first column -- and so bwt[0] itself --
// is always where the backward walk starts; no separate origin pointer
// needs to travel with the stream.
func inverseBWT(bwt string) string {
	n := len(bwt)
	if n == 0 {
		return ""
	}

	var freq [AlphabetSize]int
	for i := 0; i < n; i++ {
		freq[indexOf(bwt[i])]++
	}

	// rank[c] = number of bwt characters lexicographically less than c,
	// i.e. the row at which c's block starts in the sorted first column.
	var rank [AlphabetSize]int
	sum := 0
	for c := 0; c < AlphabetSize; c++ {
		rank[c] = sum
		sum += freq[c]
	}

	// occ[c][i] = number of occurrences of c in bwt[0..i], inclusive,
	// materialized only for characters that actually occur.
	occ := make([][]int, AlphabetSize)
	for c := 0; c < AlphabetSize; c++ {
		if freq[c] == 0 {
			continue
		}
		col := make([]int, n)
		running := 0
		for i := 0; i < n; i++ {
			if indexOf(bwt[i]) == c {
				running++
			}
			col[i] = running
		}
		occ[c] = col
	}

	out := make([]byte, n)
	i := n - 1
	out[i] = Sentinel
	i--

	pos := 0
	c := bwt[0]
	for c != Sentinel {
		out[i] = c
		i--
		ci := indexOf(c)
		pos = rank[ci] + occ[ci][pos] - 1
		c = bwt[pos]
	}
	return string(out)
}

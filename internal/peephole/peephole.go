// Package peephole implements component C8, the optional post-pass that
// collapses redundant head motion and zeroing sequences in an emitted
// fragment without changing its observable behaviour (spec.md §4.8, §6
// "Peephole is observable only through length").
//
// Grounded on pyfck/pyfck/bfalParser/parser.py's postProcess, which
// re-scans after each rewrite rather than doing a single regex pass; this
// package does the same with hand-written scans instead of regexes, since
// the rewrites are simple enough that importing a regex engine (the
// original's own `re` module has no equivalent dependency elsewhere in the
// pack) would add a dependency for something a 20-line scan already does.
package peephole

import "strings"

// Run applies both rewrites to fixed point: first collapsing runs of one
// or more "[-]" sequences (with only whitespace between them) to a single
// "[-]" followed by that whitespace, then collapsing runs of '<'/'>' to
// their net motion. Each rewrite re-scans its own output until no further
// match is found, and the pair of rewrites repeats until a round changes
// nothing (collapsing a motion run can bring two "[-]" together), matching
// the original's fixed-point behaviour rather than a single pass over the
// whole fragment.
func Run(s string) string {
	for {
		next := collapseMotionRuns(collapseZeroRuns(s))
		if next == s {
			return s
		}
		s = next
	}
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// collapseZeroRuns rewrites any run of "[-]", possibly interleaved only
// with whitespace, into a single "[-]" followed by the whitespace that was
// between the occurrences it swallowed.
func collapseZeroRuns(s string) string {
	for {
		start, end, ws, ok := findZeroRun(s)
		if !ok {
			return s
		}
		s = s[:start] + "[-]" + ws + s[end:]
	}
}

// findZeroRun finds the first maximal run of two or more "[-]" tokens
// separated only by whitespace, and reports the text between the end of
// the first token and the start of the last. For a run of two that is just
// the whitespace between them; for a longer run it still holds the middle
// "[-]" tokens, which collapseZeroRuns removes on its following scans.
func findZeroRun(s string) (start, end int, ws string, ok bool) {
	i := 0
	for i+3 <= len(s) {
		if s[i:i+3] != "[-]" {
			i++
			continue
		}
		runStart := i
		j := i + 3
		lastTokenEnd := j
		count := 1
		for {
			k := j
			for k < len(s) && isSpace(s[k]) {
				k++
			}
			if k+3 <= len(s) && s[k:k+3] == "[-]" {
				j = k + 3
				lastTokenEnd = j
				count++
				continue
			}
			break
		}
		if count >= 2 {
			return runStart, lastTokenEnd, s[runStart+3 : lastTokenEnd-3], true
		}
		i = runStart + 3
	}
	return 0, 0, "", false
}

// collapseMotionRuns rewrites any run of '<'/'>' characters to the net
// motion: equal counts cancel to nothing, otherwise it becomes that many
// of whichever character is in the majority.
func collapseMotionRuns(s string) string {
	var b strings.Builder
	n := len(s)
	for i := 0; i < n; {
		c := s[i]
		if c != '<' && c != '>' {
			b.WriteByte(c)
			i++
			continue
		}
		j := i
		nl, nr := 0, 0
		for j < n && (s[j] == '<' || s[j] == '>') {
			if s[j] == '<' {
				nl++
			} else {
				nr++
			}
			j++
		}
		diff := nr - nl
		if diff > 0 {
			b.WriteString(strings.Repeat(">", diff))
		} else if diff < 0 {
			b.WriteString(strings.Repeat("<", -diff))
		}
		i = j
	}
	return b.String()
}

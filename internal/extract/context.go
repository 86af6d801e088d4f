package extract

import "strings"

// contextWindow returns bounded surrounding text for a match at
// [start, end) in text. It takes window bytes each side, clips to text
// boundaries, collapses whitespace runs to single spaces, and marks
// boundary truncation with ellipses. Offsets are byte offsets into the
// original, non-normalized text.
func contextWindow(text string, start, end, window int) string {
	ctxStart := max(0, start-window)
	ctxEnd := min(len(text), end+window)

	ctx := strings.Join(strings.Fields(text[ctxStart:ctxEnd]), " ")

	if ctxStart > 0 {
		ctx = "..." + ctx
	}
	if ctxEnd < len(text) {
		ctx = ctx + "..."
	}
	return ctx
}

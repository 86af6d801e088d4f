// Package pages reconstructs a page-indexed view of a document from text
// sources whose page boundaries may be unreliable or absent. Every page
// citation downstream depends on this reconstruction.
package pages

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Page is one parsed page of a source document.
type Page struct {
	Number int    `json:"number"`
	Text   string `json:"text"`
}

// Options holds the synthetic pagination budgets.
type Options struct {
	// StructuredBudget applies when the blob is known to have come from a
	// page-structured source that was flattened.
	StructuredBudget int `yaml:"structured_budget" mapstructure:"structured_budget"`
	// UnstructuredBudget applies to fully unstructured blobs.
	UnstructuredBudget int `yaml:"unstructured_budget" mapstructure:"unstructured_budget"`
}

// DefaultOptions returns the standard pagination budgets.
func DefaultOptions() Options {
	return Options{
		StructuredBudget:   2000,
		UnstructuredBudget: 500,
	}
}

// pageMarker matches inline "--- Page N ---" style delimiters.
var pageMarker = regexp.MustCompile(`(?mi)(?:^|\n)---\s*page\s*(\d+)\s*---[ \t]*\n?`)

// Resolve builds the page map for a flattened blob. Decision order, first
// matching rule wins:
//
//  1. Inline "--- Page N ---" markers: split on them; leading unmarked
//     content is attributed to page 1.
//  2. A preserved (page, text) list from the upstream source: reused
//     verbatim, keeping true page numbers the flattened text lost.
//  3. Synthetic pagination on blank-line paragraph boundaries, with a
//     larger budget when the blob originated from a page-structured
//     source; a paragraph is never split across pages.
//  4. Empty blob: a single empty page 1.
func Resolve(blob string, preserved []Page, structuredOrigin bool, opts Options) map[int]string {
	if locs := pageMarker.FindAllStringSubmatchIndex(blob, -1); len(locs) > 0 {
		return splitOnMarkers(blob, locs)
	}

	if len(preserved) > 0 {
		return FromPages(preserved)
	}

	if strings.TrimSpace(blob) == "" {
		return map[int]string{1: ""}
	}

	budget := opts.UnstructuredBudget
	if structuredOrigin {
		budget = opts.StructuredBudget
	}
	if budget <= 0 {
		budget = DefaultOptions().UnstructuredBudget
	}

	byPage := synthetic(blob, budget)
	zap.L().Debug("pages: synthetic pagination",
		zap.Int("pages", len(byPage)),
		zap.Int("budget", budget),
	)
	return byPage
}

// FromPages builds the page map from an ordered (page, text) list.
func FromPages(preserved []Page) map[int]string {
	byPage := make(map[int]string, len(preserved))
	for i, p := range preserved {
		n := p.Number
		if n <= 0 {
			n = i + 1
		}
		byPage[n] = p.Text
	}
	return byPage
}

// splitOnMarkers slices the blob at each marker; the captured number keys
// the following segment.
func splitOnMarkers(blob string, locs [][]int) map[int]string {
	byPage := make(map[int]string, len(locs)+1)

	if lead := strings.TrimSpace(blob[:locs[0][0]]); lead != "" {
		byPage[1] = lead
	}

	for i, loc := range locs {
		n, err := strconv.Atoi(blob[loc[2]:loc[3]])
		if err != nil {
			continue
		}
		segEnd := len(blob)
		if i+1 < len(locs) {
			segEnd = locs[i+1][0]
		}
		byPage[n] = strings.TrimSpace(blob[loc[1]:segEnd])
	}

	return byPage
}

// synthetic paginates on blank-line paragraph boundaries, starting a new
// page once the accumulated size exceeds the budget.
func synthetic(blob string, budget int) map[int]string {
	byPage := make(map[int]string)

	page := 1
	var current []string
	var size int

	flush := func() {
		if len(current) == 0 {
			return
		}
		byPage[page] = strings.Join(current, "\n\n")
		page++
		current = current[:0]
		size = 0
	}

	for _, para := range strings.Split(blob, "\n\n") {
		if size+len(para) > budget && len(current) > 0 {
			flush()
		}
		current = append(current, para)
		size += len(para)
	}
	flush()

	return byPage
}

// FullText reassembles a readable single text from the page map, with page
// markers re-inserted, pages in ascending order.
func FullText(byPage map[int]string) string {
	nums := make([]int, 0, len(byPage))
	for n := range byPage {
		nums = append(nums, n)
	}
	sort.Ints(nums)

	parts := make([]string, 0, len(nums))
	for _, n := range nums {
		parts = append(parts, fmt.Sprintf("--- PAGE %d ---\n%s", n, byPage[n]))
	}
	return strings.Join(parts, "\n\n")
}

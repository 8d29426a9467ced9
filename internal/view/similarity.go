package view

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jask/labdesk/internal/client"
)

// Theme selects the verdict colors.
type Theme int

const (
	ThemeSuccess Theme = iota
	ThemeError
)

// Circumference is the length of the score ring; the dash array draws
// Percentage units of it.
const Circumference = 100

// Similarity is the rendered result card.
type Similarity struct {
	Verdict      string
	Score        float64
	Percentage   int
	Label        string
	Theme        Theme
	DashArray    string
	EditDistance int
}

// ProjectSimilarity builds the result card. s1 and s2 are the submitted
// sentences, used for the client-side edit distance.
func ProjectSimilarity(r client.SimilarityResponse, s1, s2 string) Similarity {
	score := min(max(r.SimilarityScore, 0), 1)
	pct := roundHalfUp(score * 100)
	theme := ThemeError
	if r.IsParaphrase {
		theme = ThemeSuccess
	}
	return Similarity{
		Verdict:      r.Verdict,
		Score:        score,
		Percentage:   pct,
		Label:        fmt.Sprintf("%d%%", pct),
		Theme:        theme,
		DashArray:    fmt.Sprintf("%d, %d", pct, Circumference),
		EditDistance: levenshtein.ComputeDistance(strings.TrimSpace(s1), strings.TrimSpace(s2)),
	}
}

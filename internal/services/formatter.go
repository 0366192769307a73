package services

import (
	"fmt"
	"strconv"
	"strings"

	"alfredoptarigan/story-bias/internal/models"
)

const (
	maleBiasLine     = "Heavily biased toward male representation."
	femaleBiasLine   = "Heavily biased toward female representation."
	balancedBiasLine = "Relatively balanced gender representation."

	wideRolesLine    = "Roles are well distributed across characters."
	boxedRolesLine   = "Characters tend to be boxed into one or two common roles."
	limitedRolesLine = "Highly stereotypical and limited roles."

	minimalStereotypeLine  = "Minimal use of stereotypes."
	someStereotypeLine     = "Some stereotypical language is used, but not excessively."
	frequentStereotypeLine = "Frequent stereotypical or biased language detected."

	// skewRatio is how far one gender must outnumber the other to count as biased.
	skewRatio = 1.5

	upperBand = 7
	lowerBand = 4

	separatorWidth = 50
)

// BiasLine picks the gender representation verdict. Both guards need a
// positive count on the smaller side, so 0/0 always reads as balanced.
func BiasLine(mentions models.GenderMentions) string {
	male := mentions.Male
	female := mentions.Female

	switch {
	case female > 0 && male > female*skewRatio:
		return maleBiasLine
	case male > 0 && female > male*skewRatio:
		return femaleBiasLine
	default:
		return balancedBiasLine
	}
}

func RoleLine(score float64) string {
	switch {
	case score > upperBand:
		return wideRolesLine
	case score >= lowerBand:
		return boxedRolesLine
	default:
		return limitedRolesLine
	}
}

func StereotypeLine(penalty float64) string {
	switch {
	case penalty > upperBand:
		return minimalStereotypeLine
	case penalty >= lowerBand:
		return someStereotypeLine
	default:
		return frequentStereotypeLine
	}
}

// FormatReport renders an analysis result as the plain-text bias report
// shown on the home page. It never fails; absent fields are already zero.
func FormatReport(result models.AnalysisResult) string {
	var b strings.Builder

	b.WriteString("Scale (1–10): 1 = Low, 10 = High\n\n")

	b.WriteString("👥 Gender Bias:\n")
	fmt.Fprintf(&b, "- Gender Balance Score: %s\n", formatScore(result.GenderBalanceScore))
	fmt.Fprintf(&b, "- Gender Mentions: Male = %s, Female = %s\n",
		formatScore(result.GenderMentions.Male), formatScore(result.GenderMentions.Female))
	fmt.Fprintf(&b, "  → %s\n\n", BiasLine(result.GenderMentions))

	b.WriteString("🎭 Role Diversity:\n")
	fmt.Fprintf(&b, "- Role Diversity Score: %s\n", formatScore(result.RoleDiversityScore))
	fmt.Fprintf(&b, "  → %s\n\n", RoleLine(result.RoleDiversityScore))

	b.WriteString("🧠 Stereotype Bias:\n")
	fmt.Fprintf(&b, "- Stereotype Penalty: %s\n", formatScore(result.StereotypePenalty))
	fmt.Fprintf(&b, "  → %s\n", StereotypeLine(result.StereotypePenalty))

	b.WriteString(strings.Repeat("-", separatorWidth))

	return b.String()
}

// formatScore prints the shortest exact decimal: 9, 7.5, 3.25.
// Mention counts go through it too.
func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package services

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"

	"alfredoptarigan/story-bias/internal/models"
)

// WriteMarkdownReport writes the same verdicts as FormatReport as a
// Markdown document, for sharing outside the web page.
func WriteMarkdownReport(w io.Writer, source string, result models.AnalysisResult) error {
	md := markdown.NewMarkdown(w)

	md.H1("Story Bias Report")
	md.LF()
	if source != "" {
		md.PlainTextf("Source: %s", markdown.Code(source))
		md.LF()
	}
	md.PlainText(markdown.Italic("Scale (1–10): 1 = Low, 10 = High"))
	md.LF()

	md.H2("Gender Bias")
	md.BulletList(
		fmt.Sprintf("Gender Balance Score: %s", markdown.Bold(formatScore(result.GenderBalanceScore))),
		fmt.Sprintf("Gender Mentions: Male = %s, Female = %s",
			formatScore(result.GenderMentions.Male), formatScore(result.GenderMentions.Female)),
	)
	md.LF()
	md.Blockquote(BiasLine(result.GenderMentions))
	md.LF()

	md.H2("Role Diversity")
	md.BulletList(fmt.Sprintf("Role Diversity Score: %s", markdown.Bold(formatScore(result.RoleDiversityScore))))
	md.LF()
	md.Blockquote(RoleLine(result.RoleDiversityScore))
	md.LF()

	md.H2("Stereotype Bias")
	md.BulletList(fmt.Sprintf("Stereotype Penalty: %s", markdown.Bold(formatScore(result.StereotypePenalty))))
	md.LF()
	md.Blockquote(StereotypeLine(result.StereotypePenalty))

	if err := md.Build(); err != nil {
		return fmt.Errorf("failed to write markdown report: %w", err)
	}
	return nil
}

package api

import (
	"fmt"
	"strings"

	"github.com/xyproto/wordwrap"

	"kgeyst.com/symptomchecker/pkg/common"
	"kgeyst.com/symptomchecker/pkg/symptomchecker/domain"
)

// ReportOptions how an assessment is printed.
type ReportOptions struct {
	// Width the column at which answers are wrapped
	Width int
	// SnippetCount how many snippets are printed
	SnippetCount int
	// SnippetSize how many characters of each snippet are printed
	SnippetSize int
}

func NewReportOptions(config *common.Config) ReportOptions {
	return ReportOptions{
		Width:        config.GetIntOrDefault(domain.ConfigKeyOutputWidth, 100),
		SnippetCount: config.GetIntOrDefault(domain.ConfigKeyDisplayedSnippetCount, 3),
		SnippetSize:  config.GetIntOrDefault(domain.ConfigKeyDisplayedSnippetSize, 500),
	}
}

// FormatAssessment renders the model's answer, the verifier's answer, the snippets, the failed sources and the
// medical disclaimer.
func FormatAssessment(assessment *domain.Assessment, options ReportOptions) string {
	var buf strings.Builder
	buf.WriteString("\n<== Model Output ==>\n")
	buf.WriteString(wrap(assessment.Answer, options.Width))
	buf.WriteString("\n")
	if assessment.VerifierAnswer != "" {
		buf.WriteString("\n<== Verifier Output ==>\n")
		buf.WriteString(wrap(assessment.VerifierAnswer, options.Width))
		buf.WriteString("\n")
	} else if assessment.VerifierErr != nil {
		buf.WriteString(fmt.Sprintf("\n(verification failed: %v)\n", assessment.VerifierErr))
	}
	if retrieval := assessment.Retrieval; retrieval != nil {
		snippets := retrieval.Snippets
		if options.SnippetCount >= 0 && len(snippets) > options.SnippetCount {
			snippets = snippets[:options.SnippetCount]
		}
		for _, snippet := range snippets {
			buf.WriteString(fmt.Sprintf("\n-- Source: %s --\n%s\n", snippet.Source, common.TruncateRunes(snippet.Text, options.SnippetSize)))
		}
		if len(retrieval.Failures) > 0 {
			buf.WriteString(fmt.Sprintf("\n(%d source(s) could not be fetched: %s)\n",
				len(retrieval.Failures), strings.Join(retrieval.FailedSources(), ", ")))
		}
	}
	buf.WriteString("\n")
	buf.WriteString(domain.MedicalDisclaimer)
	buf.WriteString("\n")
	return buf.String()
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines, err := wordwrap.WordWrap(text, width)
	if err != nil {
		return text
	}
	return strings.Join(lines, "\n")
}

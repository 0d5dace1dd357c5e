// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"bytes"
	"text/template"
)

// systemPrompt frames every request regardless of backend.
const systemPrompt = "You are a careful research assistant who summarizes academic papers for literature screening. You never invent facts that are not in the paper text."

// summaryPromptTmpl asks for the labeled sections that Parse scans for.
var summaryPromptTmpl = template.Must(template.New("summary").Parse(`Summarize the academic paper below. Respond using exactly these labeled sections, each label at the start of its own line followed by a colon:

TITLE: the paper title
AUTHORS: the author names, separated by commas
ABSTRACT: two or three sentences summarizing the abstract
METHODOLOGY: the study design, data, and analysis methods
KEY FINDINGS: 3-5 findings, one per line, each starting with "- "
CONCLUSION: the authors' main conclusion
STATISTICS: every p-value, sample size, percentage, and confidence interval the paper reports, one per line, written as in the paper (for example "p = 0.003", "n = 500", "95% CI [1.2, 3.4]")

Leave a section empty if the paper does not state it. Do not write anything before TITLE.

Paper text:
{{.Text}}
`))

// renderPrompt executes the summary prompt template with the document text.
func renderPrompt(text string) (string, error) {
	var buf bytes.Buffer
	if err := summaryPromptTmpl.Execute(&buf, struct{ Text string }{Text: text}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

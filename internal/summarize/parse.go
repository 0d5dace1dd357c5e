// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"regexp"
	"strings"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Label names one section of the model response.
type Label string

const (
	LabelTitle       Label = "TITLE"
	LabelAuthors     Label = "AUTHORS"
	LabelAbstract    Label = "ABSTRACT"
	LabelMethodology Label = "METHODOLOGY"
	LabelFindings    Label = "KEY FINDINGS"
	LabelConclusion  Label = "CONCLUSION"
	LabelStatistics  Label = "STATISTICS"
)

// Labels lists every section the parser recognizes, in prompt order.
var Labels = []Label{
	LabelTitle, LabelAuthors, LabelAbstract, LabelMethodology,
	LabelFindings, LabelConclusion, LabelStatistics,
}

// labelRe matches a label at the start of a line, tolerating markdown
// decoration such as "**Title:**" or "## Key Findings:".
var labelRe = regexp.MustCompile(`(?im)^[ \t>#*_-]*(title|authors?|abstract|methodology|methods?|key\s+findings|findings|conclusions?|statistics)[ \t*_]*:[ \t*_]*`)

var bulletRe = regexp.MustCompile(`^(?:[-*•]|\d+[.)])\s+`)

// initialsRe matches a fragment made only of initials, such as "J." or "A.-M.".
var initialsRe = regexp.MustCompile(`^(?:\p{Lu}\.[\s-]*)+$`)

// Sections scans resp for labels and returns a map holding every known label.
// Each value is the text after the label up to the next label or the end of
// the response; labels that do not appear map to "". The second result is
// the number of distinct labels found. When a label repeats, the first
// occurrence wins.
func Sections(resp string) (map[Label]string, int) {
	sections := make(map[Label]string, len(Labels))
	for _, l := range Labels {
		sections[l] = ""
	}

	locs := labelRe.FindAllStringSubmatchIndex(resp, -1)
	seen := make(map[Label]bool, len(locs))
	for i, loc := range locs {
		label := canonicalLabel(resp[loc[2]:loc[3]])
		if seen[label] {
			continue
		}
		seen[label] = true

		end := len(resp)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		sections[label] = strings.TrimSpace(resp[loc[1]:end])
	}
	return sections, len(seen)
}

// Parse converts a labeled model response into a Summary. Missing labels
// leave fields empty; a response with no labels at all is a
// *SummaryParseError.
func Parse(resp string) (types.Summary, error) {
	sections, found := Sections(resp)
	if found == 0 {
		return types.Summary{}, &SummaryParseError{Response: resp}
	}

	return types.Summary{
		Title:              cleanInline(sections[LabelTitle]),
		Authors:            splitAuthors(sections[LabelAuthors]),
		Abstract:           sections[LabelAbstract],
		Methodology:        sections[LabelMethodology],
		KeyFindings:        splitItems(sections[LabelFindings]),
		Conclusion:         sections[LabelConclusion],
		ReportedStatistics: sections[LabelStatistics],
	}, nil
}

func canonicalLabel(raw string) Label {
	switch strings.Join(strings.Fields(strings.ToLower(raw)), " ") {
	case "title":
		return LabelTitle
	case "author", "authors":
		return LabelAuthors
	case "abstract":
		return LabelAbstract
	case "methodology", "method", "methods":
		return LabelMethodology
	case "key findings", "findings":
		return LabelFindings
	case "conclusion", "conclusions":
		return LabelConclusion
	default:
		return LabelStatistics
	}
}

// cleanInline collapses a section to one line and strips wrapping quotes
// and emphasis.
func cleanInline(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.Trim(s, `"'*_ `)
}

// splitAuthors splits an author list on commas, semicolons, newlines, and
// a final "and". Initials that follow a surname stay attached to it.
func splitAuthors(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.NewReplacer("\n", ",", ";", ",", " and ", ",", " & ", ",").Replace(s)

	var authors []string
	for _, part := range strings.Split(s, ",") {
		name := cleanInline(bulletRe.ReplaceAllString(strings.TrimSpace(part), ""))
		switch {
		case name == "":
		case initialsRe.MatchString(name) && len(authors) > 0:
			// "Smith, J." lists put the initials after the surname.
			authors[len(authors)-1] += ", " + name
		default:
			authors = append(authors, name)
		}
	}
	return authors
}

// splitItems turns a bulleted or line-separated section into items. When
// the section uses bullets, unbulleted lines continue the previous item.
func splitItems(s string) []string {
	lines := strings.Split(s, "\n")
	bulleted := false
	for _, line := range lines {
		if bulletRe.MatchString(strings.TrimSpace(line)) {
			bulleted = true
			break
		}
	}

	var items []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if !bulleted {
			items = append(items, line)
			continue
		}
		if bulletRe.MatchString(line) {
			items = append(items, strings.TrimSpace(bulletRe.ReplaceAllString(line, "")))
			continue
		}
		if len(items) == 0 {
			items = append(items, line)
			continue
		}
		items[len(items)-1] += " " + line
	}
	return items
}

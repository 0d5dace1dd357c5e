// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fullResponse = `TITLE: Spaced Repetition Improves Retention in Undergraduate Statistics
AUTHORS: Ana Lima, Ben Okafor and Chen Wei
ABSTRACT: A randomized trial of spaced practice in an introductory course.
Retention improved at the final exam.
METHODOLOGY: Randomized controlled trial with 500 students across two semesters.
KEY FINDINGS:
- Final exam scores rose by 15.5%
- The effect held across sections
  and instructors
- Dropout was unchanged
CONCLUSION: Spaced repetition is an effective, low-cost intervention.
STATISTICS:
n = 500
p = 0.003
15.5%`

func TestParseFullResponse(t *testing.T) {
	s, err := Parse(fullResponse)
	require.NoError(t, err)

	assert.Equal(t, "Spaced Repetition Improves Retention in Undergraduate Statistics", s.Title)
	assert.Equal(t, []string{"Ana Lima", "Ben Okafor", "Chen Wei"}, s.Authors)
	assert.Equal(t, "A randomized trial of spaced practice in an introductory course.\nRetention improved at the final exam.", s.Abstract)
	assert.Equal(t, "Randomized controlled trial with 500 students across two semesters.", s.Methodology)
	assert.Equal(t, []string{
		"Final exam scores rose by 15.5%",
		"The effect held across sections and instructors",
		"Dropout was unchanged",
	}, s.KeyFindings)
	assert.Equal(t, "Spaced repetition is an effective, low-cost intervention.", s.Conclusion)
	assert.Equal(t, "n = 500\np = 0.003\n15.5%", s.ReportedStatistics)
}

func TestParseMissingConclusion(t *testing.T) {
	resp := `TITLE: A Paper
AUTHORS: Jane Roe
ABSTRACT: Short abstract.
METHODOLOGY: Survey.
KEY FINDINGS:
1. First
2. Second
3. Third`

	s, err := Parse(resp)
	require.NoError(t, err)

	assert.Equal(t, "A Paper", s.Title)
	assert.Equal(t, []string{"Jane Roe"}, s.Authors)
	assert.Equal(t, "Short abstract.", s.Abstract)
	assert.Equal(t, "Survey.", s.Methodology)
	assert.Equal(t, []string{"First", "Second", "Third"}, s.KeyFindings)
	assert.Empty(t, s.Conclusion)
}

func TestParseMarkdownDecoratedLabels(t *testing.T) {
	resp := "**Title:** Graph Methods\n\n## Key Findings:\n* one\n* two\n\n**Conclusions**: Works well."

	s, err := Parse(resp)
	require.NoError(t, err)

	assert.Equal(t, "Graph Methods", s.Title)
	assert.Equal(t, []string{"one", "two"}, s.KeyFindings)
	assert.Equal(t, "Works well.", s.Conclusion)
	assert.Empty(t, s.Authors)
}

func TestParseNoLabels(t *testing.T) {
	resp := "I'm sorry, I cannot summarize this document."

	_, err := Parse(resp)

	var parseErr *SummaryParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, resp, parseErr.Response)
}

func TestSectionsAlwaysHoldsEveryLabel(t *testing.T) {
	sections, found := Sections("TITLE: Only a title")

	assert.Equal(t, 1, found)
	require.Len(t, sections, len(Labels))
	for _, l := range Labels {
		_, ok := sections[l]
		assert.True(t, ok, "label %s missing from map", l)
	}
	assert.Equal(t, "Only a title", sections[LabelTitle])
	assert.Equal(t, "", sections[LabelConclusion])
}

func TestSectionsFirstOccurrenceWins(t *testing.T) {
	sections, found := Sections("TITLE: First\nTITLE: Second")

	assert.Equal(t, 1, found)
	assert.Equal(t, "First", sections[LabelTitle])
}

func TestSplitItemsWithoutBullets(t *testing.T) {
	assert.Equal(t, []string{"alpha", "beta"}, splitItems("alpha\n\nbeta\n"))
	assert.Nil(t, splitItems(""))
}

func TestSplitAuthors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"first last with and", "Ana Lima, Ben Okafor and Chen Wei", []string{"Ana Lima", "Ben Okafor", "Chen Wei"}},
		{"surname then initials", "Smith, J., Doe, A.", []string{"Smith, J.", "Doe, A."}},
		{"several initials", "Martin, J. K.; Dubois, A.-M.", []string{"Martin, J. K.", "Dubois, A.-M."}},
		{"semicolons", "Jane Roe; John Poe", []string{"Jane Roe", "John Poe"}},
		{"leading initials kept", "J., Smith", []string{"J.", "Smith"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitAuthors(tt.in))
		})
	}
}

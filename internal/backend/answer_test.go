// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func passage(title, author, content string) Passage {
	return Passage{Content: content, Book: []BookRef{{Title: title, Author: author}}}
}

func TestFormatAnswer(t *testing.T) {
	tests := []struct {
		name     string
		resp     *AskResponse
		max      int
		contains []string
		equals   string
	}{
		{
			name:   "nil response",
			resp:   nil,
			equals: Acknowledgment,
		},
		{
			name:   "empty body",
			resp:   &AskResponse{Question: "hola"},
			equals: Acknowledgment,
		},
		{
			name:   "answer wins over passages",
			resp:   &AskResponse{Answer: "  Cervantes  ", Results: []Passage{passage("Quijote", "", "x")}},
			equals: "Cervantes",
		},
		{
			name:     "passages rendered",
			resp:     &AskResponse{Results: []Passage{passage("Moby Dick", "Herman Melville", "Call me\n\nIshmael.")}},
			contains: []string{"**Moby Dick** · Herman Melville", "> Call me Ishmael."},
		},
		{
			name:     "missing book",
			resp:     &AskResponse{Results: []Passage{{Content: "texto"}}},
			contains: []string{"**Obra desconocida**", "> texto"},
		},
		{
			name:   "blank passages ignored",
			resp:   &AskResponse{Results: []Passage{{Content: "   "}}},
			equals: Acknowledgment,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatAnswer(tc.resp, tc.max)
			if tc.equals != "" {
				assert.Equal(t, tc.equals, got)
			}
			for _, s := range tc.contains {
				assert.Contains(t, got, s)
			}
		})
	}
}

func TestFormatAnswer_CapsPassages(t *testing.T) {
	resp := &AskResponse{Results: []Passage{
		passage("A", "", "uno"),
		passage("B", "", "dos"),
		passage("C", "", "tres"),
	}}

	got := FormatAnswer(resp, 2)
	assert.Contains(t, got, "**A**")
	assert.Contains(t, got, "**B**")
	assert.NotContains(t, got, "**C**")
}

func TestFormatAnswer_TruncatesLongPassage(t *testing.T) {
	resp := &AskResponse{Results: []Passage{passage("Largo", "", strings.Repeat("palabra ", 200))}}

	got := FormatAnswer(resp, 1)
	assert.Contains(t, got, "…")
	assert.Less(t, len(got), 600)
}

// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

// AskResponse is the body returned by GET /ask.
//
// The service currently returns the question echoed back plus the retrieved
// passages. Answer is reserved for a generated reply and takes precedence
// over passages when present.
type AskResponse struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer,omitempty"`
	Results  []Passage `json:"results"`
	Error    string    `json:"error,omitempty"`
}

// Passage is one retrieved book chunk.
type Passage struct {
	Content    string          `json:"content"`
	ChunkIndex int             `json:"chunk_index"`
	Book       []BookRef       `json:"book"`
	Additional *PassageMetrics `json:"_additional,omitempty"`
}

// BookRef identifies the book a passage belongs to.
type BookRef struct {
	Title  string `json:"title"`
	Author string `json:"author"`
}

// PassageMetrics carries vector search metadata.
type PassageMetrics struct {
	// Distance is the vector distance to the query; lower is closer.
	Distance *float64 `json:"distance,omitempty"`
}

// Source returns the first referenced book, or a zero BookRef.
func (p Passage) Source() BookRef {
	if len(p.Book) == 0 {
		return BookRef{}
	}
	return p.Book[0]
}

// errorBody is the JSON shape of a non-2xx response.
type errorBody struct {
	Error string `json:"error"`
}

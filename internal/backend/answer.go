// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package backend

import (
	"fmt"
	"strings"

	"github.com/Davidcm2803/bot-literario/internal/util"
)

// Acknowledgment is shown when the service answered successfully but the
// body carries neither an answer nor passages.
const Acknowledgment = "Recibí tu pregunta, pero todavía no encontré nada para responderla."

// excerptWidth is the display width of a rendered passage excerpt.
const excerptWidth = 280

// FormatAnswer renders an AskResponse as markdown display text.
//
// A non-empty Answer is returned as is. Otherwise up to maxPassages
// passages are listed with their book and an excerpt. With neither, the
// fixed Acknowledgment is returned.
func FormatAnswer(resp *AskResponse, maxPassages int) string {
	if resp == nil {
		return Acknowledgment
	}
	if answer := strings.TrimSpace(resp.Answer); answer != "" {
		return answer
	}

	passages := make([]Passage, 0, len(resp.Results))
	for _, p := range resp.Results {
		if strings.TrimSpace(p.Content) != "" {
			passages = append(passages, p)
		}
	}
	if len(passages) == 0 {
		return Acknowledgment
	}
	if maxPassages > 0 && len(passages) > maxPassages {
		passages = passages[:maxPassages]
	}

	var b strings.Builder
	b.WriteString("Encontré estos fragmentos relacionados:\n")
	for _, p := range passages {
		b.WriteString("\n")
		b.WriteString(sourceLine(p.Source()))
		b.WriteString("\n\n> ")
		b.WriteString(util.Excerpt(p.Content, excerptWidth))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func sourceLine(book BookRef) string {
	title := strings.TrimSpace(book.Title)
	author := strings.TrimSpace(book.Author)
	if title == "" {
		title = "Obra desconocida"
	}
	if author == "" {
		return fmt.Sprintf("**%s**", title)
	}
	return fmt.Sprintf("**%s** · %s", title, author)
}

// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis is appended to text shortened by TruncateWidth.
const Ellipsis = "…"

// TruncateWidth shortens s so that it occupies at most maxWidth terminal
// cells, ending in Ellipsis when anything was cut. Wide runes (CJK, emoji)
// count as two cells.
func TruncateWidth(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	return runewidth.Truncate(s, maxWidth, Ellipsis)
}

// CollapseSpace replaces every run of whitespace, including newlines, with a
// single space and trims the ends.
func CollapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Excerpt flattens s onto one line and truncates it to maxWidth cells.
func Excerpt(s string, maxWidth int) string {
	return TruncateWidth(CollapseSpace(s), maxWidth)
}

// SkipWidth drops the first n terminal cells of s. A wide rune cut in half
// is replaced by a space so the result keeps its alignment.
func SkipWidth(s string, n int) string {
	if n <= 0 {
		return s
	}
	cells := 0
	for i, r := range s {
		if cells >= n {
			return s[i:]
		}
		w := runewidth.RuneWidth(r)
		if cells+w > n {
			return strings.Repeat(" ", cells+w-n) + s[i+len(string(r)):]
		}
		cells += w
	}
	return ""
}

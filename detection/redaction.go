// Copyright (C) 2026 l3montree GmbH
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package detection

import (
	"strings"
	"unicode/utf8"
)

const maskRune = '*'

// runeIndex maps byte offsets of a string to character offsets.
type runeIndex struct {
	runes   []rune
	offsets []int // byte offset -> rune offset, len(text)+1 entries
}

func newRuneIndex(text string) runeIndex {
	idx := runeIndex{
		runes:   make([]rune, 0, utf8.RuneCountInString(text)),
		offsets: make([]int, len(text)+1),
	}
	i := 0
	for pos, r := range text {
		for b := pos; b < pos+utf8.RuneLen(r) && b < len(text); b++ {
			idx.offsets[b] = i
		}
		idx.runes = append(idx.runes, r)
		i++
	}
	idx.offsets[len(text)] = i
	return idx
}

func (idx runeIndex) runeOffset(byteOffset int) int {
	return idx.offsets[byteOffset]
}

// markLiteral masks every occurrence of literal in text.
func (idx runeIndex) markLiteral(mask []bool, text, literal string) {
	if literal == "" {
		return
	}
	from := 0
	for {
		i := strings.Index(text[from:], literal)
		if i < 0 {
			return
		}
		start := from + i
		for r := idx.runeOffset(start); r < idx.runeOffset(start+len(literal)); r++ {
			mask[r] = true
		}
		from = start + len(literal)
	}
}

// matchMask marks every matched substring of every rule. The same literal may appear where a
// pattern did not match it, e.g. next to a word boundary, so every occurrence is masked.
func matchMask(text string, idx runeIndex, locs [][]int) []bool {
	mask := make([]bool, len(idx.runes))
	literals := make(map[string]struct{}, len(locs))
	for _, loc := range locs {
		for i := idx.runeOffset(loc[0]); i < idx.runeOffset(loc[1]); i++ {
			mask[i] = true
		}
		literals[text[loc[0]:loc[1]]] = struct{}{}
	}
	for literal := range literals {
		idx.markLiteral(mask, text, literal)
	}
	return mask
}

// redactedSnippet cuts the window around the match at loc from the shared mask.
func redactedSnippet(idx runeIndex, mask []bool, loc []int) string {
	first := idx.runeOffset(loc[0])
	last := idx.runeOffset(loc[1])
	windowStart := max(first-SnippetRadius, 0)
	windowEnd := min(last+SnippetRadius, len(idx.runes))

	var sb strings.Builder
	for i := windowStart; i < windowEnd; i++ {
		if mask[i] {
			sb.WriteRune(maskRune)
			continue
		}
		sb.WriteRune(idx.runes[i])
	}
	return sb.String()
}

// Redact stars out every literal occurrence of the given matches in text.
func Redact(text string, matches []string) string {
	if len(matches) == 0 {
		return text
	}
	idx := newRuneIndex(text)
	mask := make([]bool, len(idx.runes))
	for _, m := range matches {
		idx.markLiteral(mask, text, m)
	}
	var sb strings.Builder
	for i, r := range idx.runes {
		if mask[i] {
			sb.WriteRune(maskRune)
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

// Package text normalizes post text into the token stream used by the
// term-weight model.
//
// The pipeline is fixed: HTML tags are stripped, the text is lowercased, every
// character outside [a-z0-9] becomes a space, and the remaining tokens are
// filtered by length and against a stop-word list. Changing any step changes
// every similarity score computed downstream.
package text

import (
	"regexp"
	"strings"
)

// MinTokenLength is the shortest token kept by Preprocess.
// Tokens of length 2 or less carry almost no topical signal.
const MinTokenLength = 3

var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// stopWords holds common English function words plus domain terms that occur
// in nearly every post on the site.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {},
	"on": {}, "at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {},
	"from": {}, "is": {}, "are": {}, "was": {}, "were": {}, "be": {},
	"been": {}, "being": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"may": {}, "might": {}, "must": {}, "can": {}, "this": {}, "that": {},
	"these": {}, "those": {}, "you": {}, "he": {}, "she": {}, "it": {},
	"we": {}, "they": {}, "what": {}, "which": {}, "who": {}, "when": {},
	"where": {}, "why": {}, "how": {}, "all": {}, "each": {}, "every": {},
	"both": {}, "few": {}, "more": {}, "most": {}, "other": {}, "some": {},
	"such": {}, "not": {}, "only": {}, "own": {}, "same": {}, "than": {},
	"too": {}, "very": {}, "just": {}, "also": {}, "now": {}, "its": {},
	"our": {}, "your": {}, "their": {}, "his": {}, "her": {}, "into": {},
	"about": {}, "after": {}, "before": {}, "then": {}, "there": {},
	"here": {}, "out": {}, "over": {}, "any": {},
	"anime": {}, "episode": {},
}

// IsStopWord reports whether w is filtered out by Preprocess.
// The comparison is case-sensitive; callers pass lowercased tokens.
func IsStopWord(w string) bool {
	_, ok := stopWords[w]
	return ok
}

// Preprocess normalizes s and returns the surviving tokens joined by single
// spaces. Empty input yields an empty string.
//
//	text.Preprocess("<p>The Naruto episode was GREAT!</p>") // "naruto great"
func Preprocess(s string) string {
	return strings.Join(Tokens(s), " ")
}

// Tokens runs the Preprocess pipeline and returns the token slice.
// The result is nil when nothing survives.
func Tokens(s string) []string {
	if s == "" {
		return nil
	}

	s = htmlTagPattern.ReplaceAllString(s, " ")
	s = strings.ToLower(s)

	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !isASCIIAlnum(r)
	})

	var tokens []string
	for _, f := range fields {
		if len(f) < MinTokenLength || IsStopWord(f) {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

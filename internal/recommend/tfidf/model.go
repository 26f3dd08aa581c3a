// Animenotes - Anime Notes Content and Recommendation API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/animenotes

// Package tfidf builds term frequency-inverse document frequency vectors over
// a small, ordered corpus.
//
// A Model is built from the candidate pool of a single recommendation call and
// discarded afterwards. It holds no references to shared state, so concurrent
// calls with different pools never interfere.
//
// Weights use raw term counts and a smoothed inverse document frequency:
//
//	tf(t, d)  = count of t in d
//	idf(t)    = 1 + ln(N / (1 + df(t)))
//	w(t, d)   = tf(t, d) * idf(t)
//
// The smoothing keeps every weight positive for corpora of one or more
// documents, so cosine similarity between two vectors stays in [0, 1].
package tfidf

import (
	"math"
	"sort"
	"strings"
)

// Vector maps a term to its weight within one document.
type Vector map[string]float64

// Model holds one weighted vector per document, indexed by input position.
type Model struct {
	vectors []Vector
	docFreq map[string]int
	idf     map[string]float64
}

// Build tokenizes each document on whitespace and computes its TF-IDF vector.
// Documents are expected to be preprocessed already. Building the same
// ordered input twice yields identical vectors.
func Build(docs []string) *Model {
	m := &Model{
		vectors: make([]Vector, len(docs)),
		docFreq: make(map[string]int),
	}

	counts := make([]map[string]int, len(docs))
	for i, doc := range docs {
		tc := make(map[string]int)
		for _, term := range strings.Fields(doc) {
			tc[term]++
		}
		counts[i] = tc
		for term := range tc {
			m.docFreq[term]++
		}
	}

	n := float64(len(docs))
	m.idf = make(map[string]float64, len(m.docFreq))
	for term, df := range m.docFreq {
		m.idf[term] = 1 + math.Log(n/float64(1+df))
	}

	for i, tc := range counts {
		vec := make(Vector, len(tc))
		for term, c := range tc {
			vec[term] = float64(c) * m.idf[term]
		}
		m.vectors[i] = vec
	}

	return m
}

// Len returns the number of documents in the model.
func (m *Model) Len() int {
	return len(m.vectors)
}

// VectorOf returns the vector of document i.
// An out-of-range index yields an empty vector.
func (m *Model) VectorOf(i int) Vector {
	if i < 0 || i >= len(m.vectors) {
		return Vector{}
	}
	return m.vectors[i]
}

// IDF returns the inverse document frequency of term, or 0 if the term does
// not occur in the corpus.
func (m *Model) IDF(term string) float64 {
	return m.idf[term]
}

// Terms returns the corpus vocabulary in sorted order.
func (m *Model) Terms() []string {
	terms := make([]string, 0, len(m.docFreq))
	for term := range m.docFreq {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

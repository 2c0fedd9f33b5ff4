// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package vault

import (
	"sort"
	"strconv"
	"strings"

	"github.com/biberhund/scashexplorer/textrecord"
)

// search limits
const (
	MinimumQueryLength = 5
	MaximumMatches     = 50
)

// Note - provenance remarks on a match, relative to the first match
type Note int

// notes
const (
	FirstPublisher Note = 1 << iota
	DifferentAuthor
	DifferentContent
	SameHashDifferentIdentity
)

// Has - true if every bit of n is set
func (note Note) Has(n Note) bool {
	return n == note&n
}

// Match - a found document
type Match struct {
	Document
	Notes Note
}

// Result - outcome of a search
type Result struct {
	Query                  string
	ByHash                 bool
	ByAuthor               bool
	ByName                 bool
	SameHashDifferentNames bool
	Matches                []Match
}

// Find - documents whose author, name or hash starts with the query,
// oldest first
//
// a name search that did not also match an author pulls in every other
// publication of the earliest match's hash, so a copy published under
// another name is always shown beside the original; if that makes a
// differently named publication the earliest one the result is marked
// SameHashDifferentNames
func (v *Vault) Find(query string) Result {
	result := Result{
		Query: query,
	}
	if len(query) < MinimumQueryLength {
		return result
	}
	q := strings.ToLower(query)

	v.RLock()
	defer v.RUnlock()

	included := make(map[string]struct{})
	found := []Document{}

	// oldest first so the cap keeps the earliest publications
	for i := len(v.documents) - 1; i >= 0 && len(found) < MaximumMatches; i -= 1 {
		d := v.documents[i]
		byAuthor := prefixMatch(d.Author, q)
		byName := prefixMatch(d.DocName, q)
		byHash := prefixMatch(d.Hash, q)
		if !byAuthor && !byName && !byHash {
			continue
		}
		result.ByAuthor = result.ByAuthor || byAuthor
		result.ByName = result.ByName || byName
		result.ByHash = result.ByHash || byHash
		included[d.Name] = struct{}{}
		found = append(found, d)
	}

	if result.ByName && !result.ByAuthor && len(found) > 0 {
		sortByTime(found)
		hash := found[0].Hash
		for i := len(v.documents) - 1; i >= 0 && len(found) < MaximumMatches; i -= 1 {
			d := v.documents[i]
			if "" == hash || hash != d.Hash {
				continue
			}
			if _, ok := included[d.Name]; ok {
				continue
			}
			included[d.Name] = struct{}{}
			found = append(found, d)
			result.SameHashDifferentNames = true
		}
	}

	sortByTime(found)

	// only a warning if the earliest publication went by another name
	if result.SameHashDifferentNames && prefixMatch(found[0].DocName, q) {
		result.SameHashDifferentNames = false
	}

	result.Matches = annotate(found, result.ByAuthor)
	return result
}

func annotate(found []Document, byAuthor bool) []Match {
	matches := make([]Match, len(found))
	for i, d := range found {
		matches[i].Document = d
		if 0 == i {
			if !byAuthor {
				matches[i].Notes |= FirstPublisher
			}
			continue
		}
		first := found[0]
		if "" != d.Author && d.Author != first.Author {
			matches[i].Notes |= DifferentAuthor
		}
		if d.Hash != first.Hash {
			matches[i].Notes |= DifferentContent
		} else if d.DocName != first.DocName || d.Author != first.Author {
			matches[i].Notes |= SameHashDifferentIdentity
		}
	}
	return matches
}

func prefixMatch(s string, lowerQuery string) bool {
	return "" != s && strings.HasPrefix(strings.ToLower(s), lowerQuery)
}

// publication time then record name
func sortByTime(documents []Document) {
	sort.SliceStable(documents, func(i, j int) bool {
		if documents[i].Time != documents[j].Time {
			return documents[i].Time < documents[j].Time
		}
		return textrecord.Less(documents[i].Name, documents[j].Name)
	})
}

func formatInt(n int64) string {
	return strconv.FormatInt(n, 10)
}

func parseInt(s string) int64 {
	n, _ := strconv.ParseInt(s, 10, 64)
	return n
}

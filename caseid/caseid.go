// Package caseid finds TestRail case identifiers embedded in test titles.
//
// A case marker is the letter C (in either case) immediately followed by digits, such as
// "C101". A marker only counts when it stands on its own: the characters on either side of
// it must not be letters or digits. Everything else, including underscores, is a separator,
// so "C1, C2 checkout" and "TestCheckout/C1_C2" both yield [1 2].
package caseid

import (
	"regexp"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// ID is a positive integer that refers to a case in TestRail.
type ID int

var markerPattern = regexp.MustCompile(`(?i)c([0-9]+)`)

// Extract returns the case identifiers found in title, in left-to-right order and with
// duplicates removed. It returns nil if there are none.
func Extract(title string) []ID {
	var ids []ID
	for _, m := range markerPattern.FindAllStringSubmatchIndex(title, -1) {
		start, end := m[0], m[1]
		if !isSeparatorBefore(title, start) || !isSeparatorAfter(title, end) {
			continue
		}
		n, err := strconv.Atoi(title[m[2]:m[3]])
		if err != nil || n <= 0 {
			continue // out of range, or C0
		}
		if !containsID(ids, ID(n)) {
			ids = append(ids, ID(n))
		}
	}
	return ids
}

func isSeparatorBefore(s string, pos int) bool {
	if pos == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(s[:pos])
	return !isWordRune(r)
}

func isSeparatorAfter(s string, pos int) bool {
	if pos == len(s) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(s[pos:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func containsID(ids []ID, id ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

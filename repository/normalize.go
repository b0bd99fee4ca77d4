package repository

import (
	"strings"

	"github.com/gosimple/unidecode"
	"golang.org/x/text/unicode/norm"
)

// NormalizeName folds a fighter name for matching: NFC-composed, transliterated
// to ASCII, lowercased, inner whitespace collapsed. "José Aldo " and
// "jose aldo" normalize identically.
func NormalizeName(name string) string {
	s := norm.NFC.String(name)
	s = unidecode.Unidecode(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}

package service

import (
	"strings"

	"github.com/nurse103/QLNS-B11-sub000/internal/model"
)

// SplitNames tokenizes a raw delimited name field: split on comma or
// newline, trim each token, drop empties. No diacritic normalization or
// whitespace collapsing beyond the trim is performed, and duplicates
// within the same text are kept.
func SplitNames(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if name := strings.TrimSpace(f); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ResolvedName is one roster token resolved against the staff directory.
// Staff is nil when no directory entry matched; the raw token is kept so
// mismatches are flagged instead of silently dropped.
type ResolvedName struct {
	Raw   string
	Staff *model.StaffMember
}

// Resolved reports whether the token matched a directory entry.
func (n ResolvedName) Resolved() bool { return n.Staff != nil }

// ResolveNames matches each token against the directory by
// case-insensitive exact equality on the full name. No fuzzy matching.
func ResolveNames(tokens []string, directory []model.StaffMember) []ResolvedName {
	resolved := make([]ResolvedName, 0, len(tokens))
	for _, tok := range tokens {
		entry := ResolvedName{Raw: tok}
		for i := range directory {
			if strings.EqualFold(directory[i].FullName, tok) {
				entry.Staff = &directory[i]
				break
			}
		}
		resolved = append(resolved, entry)
	}
	return resolved
}

// nameSet is a set of exact (case-sensitive) trimmed names.
type nameSet map[string]struct{}

func (s nameSet) add(names ...string) {
	for _, n := range names {
		s[n] = struct{}{}
	}
}

func (s nameSet) addField(raw string) {
	s.add(SplitNames(raw)...)
}

func (s nameSet) contains(name string) bool {
	_, ok := s[name]
	return ok
}

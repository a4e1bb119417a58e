// Package hint decodes the compact suggestion strings rendered by the
// search UI's autocompletion popup.
//
// A raw suggestion is a sequence of '/'-separated segments, each carrying
// a quoted display name and a language tag, with the first segment
// prefixed by a database kind:identifier marker:
//
//	wd:Q42"Douglas Adams"@en/"Douglas Adams"@de
//
// Parsing is strict and all-or-nothing: a record with a corrupt segment
// would silently invalidate downstream comparisons, so it fails as a whole.
package hint

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// markerRe matches the kind:identifier prefix of the first segment,
	// e.g. "wd:Q42".
	markerRe = regexp.MustCompile(`(\w+):([A-Z]\d+)`)

	// subfieldRe splits a segment on runs of quote and '@' characters,
	// isolating the display name and the language tag.
	subfieldRe = regexp.MustCompile(`["@]+`)
)

// NamePair is one display name together with its language tag.
type NamePair struct {
	Name     string
	Language string
}

// Record is a single decoded suggestion. The pair order reflects the
// source's primary-name-first convention and is significant.
type Record struct {
	// FullText is the raw suggestion string, kept for diagnostics.
	FullText     string
	DatabaseKind string
	DatabaseID   string
	Pairs        []NamePair
}

// PrimaryName returns the canonical display name: the name of the first
// '/'-separated segment.
func (r *Record) PrimaryName() string {
	return r.Pairs[0].Name
}

// Names returns all display names in segment order.
func (r *Record) Names() []string {
	names := make([]string, len(r.Pairs))
	for i, p := range r.Pairs {
		names[i] = p.Name
	}
	return names
}

// MalformedHintError reports a suggestion string that could not be decoded.
type MalformedHintError struct {
	Raw    string
	Reason string
}

func (e *MalformedHintError) Error() string {
	return fmt.Sprintf("hint: malformed suggestion %q: %s", e.Raw, e.Reason)
}

// Parse decodes one raw suggestion string. Only the first segment is
// scanned for the kind:identifier marker; every other segment is assumed
// already clean of it.
func Parse(raw string) (*Record, error) {
	rec := &Record{FullText: raw}

	for i, segment := range strings.Split(raw, "/") {
		fields := subfieldRe.Split(strings.TrimSpace(segment), -1)

		if i == 0 {
			m := markerRe.FindStringSubmatch(fields[0])
			if m == nil {
				return nil, &MalformedHintError{Raw: raw, Reason: "first segment has no kind:identifier marker"}
			}
			rec.DatabaseKind, rec.DatabaseID = m[1], m[2]
		}

		if len(fields) < 3 {
			return nil, &MalformedHintError{
				Raw:    raw,
				Reason: fmt.Sprintf("segment %d lacks name and language subfields", i+1),
			}
		}
		rec.Pairs = append(rec.Pairs, NamePair{Name: fields[1], Language: fields[2]})
	}

	return rec, nil
}

// Package awsconfig reads, reconciles, and writes the AWS CLI config file
// dialect: [sso-session NAME] and [profile NAME] sections with key = value
// pairs. The file is shared with the AWS CLI and manual edits, so sections
// not targeted by an operation must survive byte-for-byte.
package awsconfig

import (
	"strings"
)

// Section header prefixes in the AWS config dialect.
const (
	ProfileSectionPrefix    = "profile "
	SSOSessionSectionPrefix = "sso-session "
)

// Keys kolja writes into managed sections.
const (
	KeySSOSession         = "sso_session"
	KeySSOAccountID       = "sso_account_id"
	KeySSORoleName        = "sso_role_name"
	KeySSOStartURL        = "sso_start_url"
	KeySSORegion          = "sso_region"
	KeyRegistrationScopes = "sso_registration_scopes"
	KeyRegion             = "region"
	KeyOutput             = "output"
)

// LineKind classifies one line of a config document.
type LineKind int

const (
	// LineBlank is a line of only whitespace.
	LineBlank LineKind = iota
	// LineComment starts with # or ; after leading whitespace.
	LineComment
	// LineKeyValue is a key = value pair.
	LineKeyValue
	// LineOther is tolerated unparseable content inside a section,
	// preserved verbatim.
	LineOther
)

// Line is one line of a section body or the preamble. Raw holds the original
// bytes without the trailing newline, so untouched content round-trips
// exactly.
type Line struct {
	Kind  LineKind
	Key   string
	Value string
	Raw   string
}

// Section is a named group of lines. headerRaw keeps the original header
// bytes for sections that came from disk; canonical sections render a clean
// [Header] line instead.
type Section struct {
	Header    string
	Lines     []Line
	headerRaw string
	canonical bool
}

// IsProfile reports whether the section is a profile section.
func (s *Section) IsProfile() bool {
	return strings.HasPrefix(s.Header, ProfileSectionPrefix)
}

// IsSSOSession reports whether the section is an sso-session section.
func (s *Section) IsSSOSession() bool {
	return strings.HasPrefix(s.Header, SSOSessionSectionPrefix)
}

// Get returns the value for key. When the section carries duplicate keys the
// last one wins, matching how the AWS CLI resolves duplicates. The second
// return is false when the key is absent.
func (s *Section) Get(key string) (string, bool) {
	value := ""
	found := false
	for _, line := range s.Lines {
		if line.Kind == LineKeyValue && line.Key == key {
			value = line.Value
			found = true
		}
	}
	return value, found
}

// Document is the in-memory form of one config file: an optional preamble
// (comments or blank lines before the first section) and ordered sections.
// Documents are transient; every operation re-reads the file from disk.
type Document struct {
	Preamble []Line
	Sections []Section
}

// SectionIndex returns the index of the first section with the given header,
// or -1.
func (d *Document) SectionIndex(header string) int {
	for i := range d.Sections {
		if d.Sections[i].Header == header {
			return i
		}
	}
	return -1
}

// Section returns the first section with the given header, or nil.
func (d *Document) Section(header string) *Section {
	if i := d.SectionIndex(header); i >= 0 {
		return &d.Sections[i]
	}
	return nil
}

// Headers returns all section headers in document order.
func (d *Document) Headers() []string {
	headers := make([]string, len(d.Sections))
	for i := range d.Sections {
		headers[i] = d.Sections[i].Header
	}
	return headers
}

// SessionNames returns the names of all sso-session sections in document
// order.
func (d *Document) SessionNames() []string {
	var names []string
	for i := range d.Sections {
		if d.Sections[i].IsSSOSession() {
			names = append(names, strings.TrimPrefix(d.Sections[i].Header, SSOSessionSectionPrefix))
		}
	}
	return names
}

// KeyValue is one key = value pair of a DesiredSection.
type KeyValue struct {
	Key   string
	Value string
}

// DesiredSection is caller-supplied target state for one section. The
// reconciler replaces any existing section with the same header in full;
// partial merges cannot express a role that was revoked.
type DesiredSection struct {
	Header string
	Keys   []KeyValue
}

// section converts the desired state into a canonical section.
func (d DesiredSection) section() Section {
	lines := make([]Line, len(d.Keys))
	for i, kv := range d.Keys {
		lines[i] = Line{
			Kind:  LineKeyValue,
			Key:   kv.Key,
			Value: kv.Value,
			Raw:   kv.Key + " = " + kv.Value,
		}
	}
	return Section{
		Header:    d.Header,
		Lines:     lines,
		canonical: true,
	}
}

package resolve

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"

	"github.com/syssam/martgen/schema"
)

// DefaultMaxNameLength is the default length bound for generated names,
// matching the common relational identifier limit.
const DefaultMaxNameLength = 63

// digestLength is the number of hex digest characters appended to
// over-long names.
const digestLength = 8

// Namer produces deterministic, collision-resistant, length-bounded
// display names and identifiers from paths and attributes. Identical
// inputs always yield identical outputs within and across runs.
type Namer struct {
	maxLength int
}

// NamerOption configures a Namer.
type NamerOption func(*Namer)

// MaxNameLength bounds the length of generated names. Defaults to
// DefaultMaxNameLength. The bound must leave room for the 8-character
// digest suffix of truncated names; values of 8 or less are ignored.
func MaxNameLength(n int) NamerOption {
	return func(nm *Namer) {
		if n > digestLength {
			nm.maxLength = n
		}
	}
}

// NewNamer creates a Namer.
func NewNamer(opts ...NamerOption) *Namer {
	n := &Namer{maxLength: DefaultMaxNameLength}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize cleans up a generated name: immediately repeated whole
// words are collapsed ("booking booking" -> "booking"), runs of
// whitespace are collapsed, and the first letter is capitalized. A name
// exceeding the maximum length is truncated at the head (backing up to
// a rune boundary) and suffixed with an 8-character hex digest of the
// full name, so the result stays within the maximum length and
// truncated names remain practically distinguishable.
func (n *Namer) Normalize(name string) string {
	words := strings.Fields(name)
	deduped := make([]string, 0, len(words))
	for i, w := range words {
		if i > 0 && w == words[i-1] {
			continue
		}
		deduped = append(deduped, w)
	}
	name = strings.Join(deduped, " ")
	if name == "" {
		return ""
	}
	name = inflect.Capitalize(name)

	if len(name) > n.maxLength {
		sum := md5.Sum([]byte(name))
		digest := hex.EncodeToString(sum[:])[:digestLength]
		cut := n.maxLength - digestLength
		for cut > 0 && !utf8.RuneStart(name[cut]) {
			cut--
		}
		return name[:cut] + digest
	}
	return name
}

// AttributeName generates the business name of an attribute reached
// through a path: the link prefixes are joined lower-cased, followed by
// the attribute name with its first letter lowered unless it starts
// with two or more consecutive capitals (acronym preservation). The
// empty path yields the normalized attribute name itself.
func (n *Namer) AttributeName(a *schema.Attribute, path schema.Path) string {
	if len(path) == 0 {
		return n.Normalize(a.Name())
	}
	parts := make([]string, 0, len(path)+1)
	for _, link := range path {
		parts = append(parts, strings.ToLower(link.Prefix()))
	}
	parts = append(parts, firstLower(a.Name()))
	return n.Normalize(strings.Join(parts, " "))
}

// TableAlias generates the table alias of the entity at the end of a
// path: the link prefixes joined with the terminal entity name,
// normalized. The empty path has no alias; callers use the root entity
// name directly.
func (n *Namer) TableAlias(path schema.Path) string {
	parts := make([]string, 0, len(path)+1)
	for _, link := range path {
		parts = append(parts, link.Prefix())
	}
	parts = append(parts, path.Target().Name())
	return n.Normalize(strings.Join(parts, " "))
}

// PathJoinKey generates the name of the join foreign-key column that
// stands in for a path in a star-schema table, e.g.
// "First order order_fk": the alias of the path's parent (or the root
// entity name for direct links) followed by the link's foreign-key
// column.
func (n *Namer) PathJoinKey(root *schema.Entity, path schema.Path) string {
	if len(path) == 0 {
		return ""
	}
	parent := root.Name()
	if len(path) > 1 {
		parent = n.TableAlias(path[:len(path)-1])
	}
	return parent + " " + path[len(path)-1].ForeignKeyColumn()
}

// AttributeForeignKey generates the name of the derived foreign-key
// column for a templated (date or duration) attribute, e.g.
// "Order date (FK)".
func (n *Namer) AttributeForeignKey(a *schema.Attribute, path schema.Path) string {
	return n.AttributeName(a, path) + " (FK)"
}

// firstLower lowers the first letter of a name unless it begins with
// two or more consecutive capitals, which preserves acronyms like
// "SKU" or "CLV".
func firstLower(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError {
		return s
	}
	second, _ := utf8.DecodeRuneInString(s[size:])
	if unicode.IsUpper(first) && unicode.IsUpper(second) {
		return s
	}
	return string(unicode.ToLower(first)) + s[size:]
}

package models

import (
	"fmt"
	"strings"
)

// RelationshipID is the canonical key for a two-party pairing. It is normalized
// at construction (lower id first), so RelationshipID(A,B) == RelationshipID(B,A)
// and the struct is usable directly as a map key.
type RelationshipID struct {
	low  string
	high string
}

// NewRelationshipID builds the canonical id for an unordered pair.
func NewRelationshipID(a, b string) RelationshipID {
	if a > b {
		a, b = b, a
	}
	return RelationshipID{low: a, high: b}
}

// ParseRelationshipID parses the stored "low_high" form. Person ids are UUIDs,
// so "_" never appears inside an id.
func ParseRelationshipID(s string) (RelationshipID, error) {
	parts := strings.SplitN(s, "_", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return RelationshipID{}, fmt.Errorf("invalid relationship id: %q", s)
	}
	return NewRelationshipID(parts[0], parts[1]), nil
}

// String returns the storage form used as a partition key.
func (r RelationshipID) String() string {
	return r.low + "_" + r.high
}

// PartyA returns the lower of the two person ids.
func (r RelationshipID) PartyA() string { return r.low }

// PartyB returns the higher of the two person ids.
func (r RelationshipID) PartyB() string { return r.high }

// Involves reports whether personID is one of the two parties.
func (r RelationshipID) Involves(personID string) bool {
	return personID == r.low || personID == r.high
}

// OtherParty returns the counterpart of personID, or false if personID is not a party.
func (r RelationshipID) OtherParty(personID string) (string, bool) {
	switch personID {
	case r.low:
		return r.high, true
	case r.high:
		return r.low, true
	}
	return "", false
}

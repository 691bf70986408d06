package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// EntityKind is the kind of an imported geographic entity.
type EntityKind string

const (
	EntityKindWay      EntityKind = "way"
	EntityKindRelation EntityKind = "relation"
)

func (k EntityKind) String() string { return string(k) }

func (k EntityKind) IsValid() bool {
	switch k {
	case EntityKindWay, EntityKindRelation:
		return true
	}
	return false
}

// EntityID identifies a building entity. Immutable, sourced from the import.
type EntityID struct {
	Kind EntityKind
	ID   int64
}

var entityKeyRe = regexp.MustCompile(`^(way|relation)/(\d+)$`)

// ParseEntityID parses the textual form "way/42".
func ParseEntityID(s string) (EntityID, error) {
	m := entityKeyRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return EntityID{}, NewValidationError("entityId", "must look like way/<id> or relation/<id>")
	}
	return NewEntityID(m[1], m[2])
}

// NewEntityID builds an EntityID from separate kind and id strings,
// as they arrive in path parameters.
func NewEntityID(kind, id string) (EntityID, error) {
	k := EntityKind(strings.TrimSpace(kind))
	if !k.IsValid() {
		return EntityID{}, NewValidationError("entityId", "kind must be way or relation")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
	if err != nil || n <= 0 {
		return EntityID{}, NewValidationError("entityId", "id must be a positive integer")
	}
	return EntityID{Kind: k, ID: n}, nil
}

func (e EntityID) String() string {
	return fmt.Sprintf("%s/%d", e.Kind, e.ID)
}

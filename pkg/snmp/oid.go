package snmp

import (
	"fmt"
	"strconv"
	"strings"
)

// Oid is an SNMP object identifier, one uint32 per sub-identifier.
type Oid []uint32

// ParseOid parses a dotted OID string, with or without a leading dot.
func ParseOid(s string) (Oid, error) {
	s = strings.TrimPrefix(s, ".")
	if s == "" {
		return nil, fmt.Errorf("empty oid")
	}
	parts := strings.Split(s, ".")
	o := make(Oid, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(p, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("oid %q: %v", s, err)
		}
		o = append(o, uint32(v))
	}
	return o, nil
}

func (o Oid) String() string {
	sb := strings.Builder{}
	for i, v := range o {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(strconv.FormatUint(uint64(v), 10))
	}
	return sb.String()
}

func (o Oid) Clone() Oid {
	n := make(Oid, len(o))
	copy(n, o)
	return n
}

// Append returns a new Oid with the given sub-identifiers appended.
// The receiver is never modified.
func (o Oid) Append(subids ...uint32) Oid {
	n := make(Oid, 0, len(o)+len(subids))
	n = append(n, o...)
	n = append(n, subids...)
	return n
}

// Compare orders OIDs lexicographically by sub-identifier, shorter
// prefixes first. Returns -1, 0 or 1.
func (o Oid) Compare(other Oid) int {
	for i := 0; i < len(o) && i < len(other); i++ {
		switch {
		case o[i] < other[i]:
			return -1
		case o[i] > other[i]:
			return 1
		}
	}
	switch {
	case len(o) < len(other):
		return -1
	case len(o) > len(other):
		return 1
	}
	return 0
}

// HasPrefix reports whether prefix is a (non-strict) prefix of o.
func (o Oid) HasPrefix(prefix Oid) bool {
	if len(prefix) > len(o) {
		return false
	}
	for i := range prefix {
		if o[i] != prefix[i] {
			return false
		}
	}
	return true
}

package snmp

import (
	"github.com/iptecharch/snmp-server/pkg/snmp/internal/value"
)

// Tag is an ASN.1/BER tag as carried in an SNMP varbind.
// Bits 7-6 encode the class (Universal=00, Application=01, Context=10),
// bits 4-0 the tag number.
type Tag = value.Tag

const (
	TagInteger          = value.TagInteger
	TagOctetString      = value.TagOctetString
	TagNull             = value.TagNull
	TagObjectIdentifier = value.TagObjectIdentifier

	// SNMP application types (RFC 2578)
	TagIPAddress = value.TagIPAddress
	TagCounter32 = value.TagCounter32
	TagGauge32   = value.TagGauge32 // also Unsigned32
	TagTimeTicks = value.TagTimeTicks
	TagOpaque    = value.TagOpaque
	TagCounter64 = value.TagCounter64

	// SNMPv2 exceptions (context class), carried instead of a value
	TagNoSuchObject   = value.TagNoSuchObject
	TagNoSuchInstance = value.TagNoSuchInstance
	TagEndOfMibView   = value.TagEndOfMibView
)

// Value is a decoded SNMP typed value: the BER tag and the value
// content octets. The byte slice is owned by the Value.
type Value = value.Value

func NewValue(t Tag, b []byte) Value {
	return value.NewValue(t, b)
}

// EncodeInt encodes a signed integer as minimal two's complement
// content octets (X.690 8.3).
func EncodeInt(v int64) []byte {
	return value.EncodeInt(v)
}

// DecodeInt decodes minimal two's complement content octets.
func DecodeInt(b []byte) (int64, error) {
	return value.DecodeInt(b)
}

// EncodeUint encodes an unsigned integer as minimal content octets,
// with a leading zero octet when the high bit would be set.
func EncodeUint(v uint64) []byte {
	return value.EncodeUint(v)
}

// DecodeUint decodes unsigned integer content octets.
func DecodeUint(b []byte) (uint64, error) {
	return value.DecodeUint(b)
}

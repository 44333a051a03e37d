package value

import (
	"fmt"
)

// Tag is an ASN.1/BER tag as carried in an SNMP varbind.
// Bits 7-6 encode the class (Universal=00, Application=01, Context=10),
// bits 4-0 the tag number.
type Tag byte

const (
	TagInteger          Tag = 0x02
	TagOctetString      Tag = 0x04
	TagNull             Tag = 0x05
	TagObjectIdentifier Tag = 0x06

	// SNMP application types (RFC 2578)
	TagIPAddress Tag = 0x40
	TagCounter32 Tag = 0x41
	TagGauge32   Tag = 0x42 // also Unsigned32
	TagTimeTicks Tag = 0x43
	TagOpaque    Tag = 0x44
	TagCounter64 Tag = 0x46

	// SNMPv2 exceptions (context class), carried instead of a value
	TagNoSuchObject   Tag = 0x80
	TagNoSuchInstance Tag = 0x81
	TagEndOfMibView   Tag = 0x82
)

func (t Tag) String() string {
	switch t {
	case TagInteger:
		return "INTEGER"
	case TagOctetString:
		return "OCTET STRING"
	case TagNull:
		return "NULL"
	case TagObjectIdentifier:
		return "OBJECT IDENTIFIER"
	case TagIPAddress:
		return "IpAddress"
	case TagCounter32:
		return "Counter32"
	case TagGauge32:
		return "Unsigned32"
	case TagTimeTicks:
		return "TimeTicks"
	case TagOpaque:
		return "Opaque"
	case TagCounter64:
		return "Counter64"
	case TagNoSuchObject:
		return "noSuchObject"
	case TagNoSuchInstance:
		return "noSuchInstance"
	case TagEndOfMibView:
		return "endOfMibView"
	}
	return fmt.Sprintf("tag(0x%02x)", byte(t))
}

// Value is a decoded SNMP typed value: the BER tag and the value
// content octets. The byte slice is owned by the Value.
type Value struct {
	Tag   Tag
	Bytes []byte
}

func NewValue(t Tag, b []byte) Value {
	return Value{Tag: t, Bytes: b}
}

// EncodeInt encodes a signed integer as minimal two's complement
// content octets (X.690 8.3).
func EncodeInt(v int64) []byte {
	b := make([]byte, 8)
	for i := 0; i < 8; i++ {
		b[7-i] = byte(v >> (8 * i))
	}
	// strip redundant leading octets
	i := 0
	for i < 7 {
		if b[i] == 0x00 && b[i+1]&0x80 == 0 {
			i++
			continue
		}
		if b[i] == 0xff && b[i+1]&0x80 != 0 {
			i++
			continue
		}
		break
	}
	out := make([]byte, 8-i)
	copy(out, b[i:])
	return out
}

// DecodeInt decodes minimal two's complement content octets.
func DecodeInt(b []byte) (int64, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("integer value is empty")
	}
	if len(b) > 8 {
		return 0, fmt.Errorf("integer value too long (%d octets)", len(b))
	}
	var v int64
	if b[0]&0x80 != 0 {
		v = -1
	}
	for _, o := range b {
		v = v<<8 | int64(o)
	}
	return v, nil
}

// EncodeUint encodes an unsigned integer as minimal content octets,
// with a leading zero octet when the high bit would be set.
func EncodeUint(v uint64) []byte {
	b := make([]byte, 9)
	for i := 0; i < 8; i++ {
		b[8-i] = byte(v >> (8 * i))
	}
	i := 0
	for i < 8 && b[i] == 0x00 && b[i+1]&0x80 == 0 {
		i++
	}
	out := make([]byte, 9-i)
	copy(out, b[i:])
	return out
}

// DecodeUint decodes unsigned integer content octets.
func DecodeUint(b []byte) (uint64, error) {
	if len(b) == 0 {
		return 0, fmt.Errorf("unsigned value is empty")
	}
	if b[0] == 0x00 {
		b = b[1:]
	}
	if len(b) > 8 {
		return 0, fmt.Errorf("unsigned value too long (%d octets)", len(b))
	}
	var v uint64
	for _, o := range b {
		v = v<<8 | uint64(o)
	}
	return v, nil
}

package translate

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"

	snmp "github.com/iptecharch/snmp-server/pkg/snmp/internal/value"
)

// ErrWrongType signals that a varbind's BER tag does not match the tag
// the schema leaf type mandates. Handlers translate it into the
// per-object wrongType error instead of failing the whole PDU.
var ErrWrongType = errors.New("wrong type")

// TruthValue encoding (RFC 2579): INTEGER 1 is true, 2 is false.
const (
	truthValueTrue  = 1
	truthValueFalse = 2
)

// TagFor returns the BER tag mandated for a schema leaf type.
func TagFor(yt *yang.YangType) (snmp.Tag, error) {
	switch yt.Kind {
	case yang.Ybool, yang.Yenum,
		yang.Yint8, yang.Yint16, yang.Yint32, yang.Yint64:
		return snmp.TagInteger, nil
	case yang.Yuint8, yang.Yuint16, yang.Yuint32:
		return snmp.TagGauge32, nil
	case yang.Yuint64:
		return snmp.TagCounter64, nil
	case yang.Ystring, yang.Ybinary, yang.Ybits, yang.Ydecimal64,
		yang.Yleafref, yang.Yidentityref, yang.YinstanceIdentifier:
		return snmp.TagOctetString, nil
	case yang.Yempty:
		return snmp.TagNull, nil
	case yang.Yunion:
		if len(yt.Type) == 0 {
			return 0, fmt.Errorf("union type %q has no members", yt.Name)
		}
		// a union accepts the tag of its first member on the way in;
		// SnmpToYang tries every member
		return TagFor(yt.Type[0])
	}
	return 0, fmt.Errorf("yang type %q (%v) has no protocol mapping", yt.Name, yt.Kind)
}

// YangToSnmp converts a schema-typed string value into the protocol's
// typed binary snmp. The returned byte buffer is owned by the caller.
func YangToSnmp(value string, yt *yang.YangType) (snmp.Value, error) {
	switch yt.Kind {
	case yang.Ybool:
		return boolToSnmp(value)
	case yang.Yint8:
		return intToSnmp(value, 8)
	case yang.Yint16:
		return intToSnmp(value, 16)
	case yang.Yint32:
		return intToSnmp(value, 32)
	case yang.Yint64:
		return intToSnmp(value, 64)
	case yang.Yuint8:
		return uintToSnmp(value, 8, snmp.TagGauge32)
	case yang.Yuint16:
		return uintToSnmp(value, 16, snmp.TagGauge32)
	case yang.Yuint32:
		return uintToSnmp(value, 32, snmp.TagGauge32)
	case yang.Yuint64:
		return uintToSnmp(value, 64, snmp.TagCounter64)
	case yang.Yenum:
		return enumToSnmp(value, yt)
	case yang.Ybinary:
		return binaryToSnmp(value)
	case yang.Yempty:
		return snmp.NewValue(snmp.TagNull, nil), nil
	case yang.Ystring, yang.Ybits, yang.Ydecimal64,
		yang.Yleafref, yang.Yidentityref, yang.YinstanceIdentifier:
		return snmp.NewValue(snmp.TagOctetString, []byte(value)), nil
	case yang.Yunion:
		return unionToSnmp(value, yt)
	}
	return snmp.Value{}, fmt.Errorf("yang type %q (%v) not translatable", yt.Name, yt.Kind)
}

// SnmpToYang converts a protocol typed binary value into the schema's
// string representation. A tag mismatch yields ErrWrongType.
func SnmpToYang(v snmp.Value, yt *yang.YangType) (string, error) {
	want, err := TagFor(yt)
	if err != nil {
		return "", err
	}
	if yt.Kind != yang.Yunion && v.Tag != want {
		return "", fmt.Errorf("%w: got %s, want %s for yang type %q", ErrWrongType, v.Tag, want, yt.Name)
	}
	switch yt.Kind {
	case yang.Ybool:
		return boolFromSnmp(v)
	case yang.Yint8, yang.Yint16, yang.Yint32, yang.Yint64:
		i, err := snmp.DecodeInt(v.Bytes)
		if err != nil {
			return "", err
		}
		return strconv.FormatInt(i, 10), nil
	case yang.Yuint8, yang.Yuint16, yang.Yuint32, yang.Yuint64:
		u, err := snmp.DecodeUint(v.Bytes)
		if err != nil {
			return "", err
		}
		return strconv.FormatUint(u, 10), nil
	case yang.Yenum:
		return enumFromSnmp(v, yt)
	case yang.Ybinary:
		return base64.StdEncoding.EncodeToString(v.Bytes), nil
	case yang.Yempty:
		return "", nil
	case yang.Ystring, yang.Ybits, yang.Ydecimal64,
		yang.Yleafref, yang.Yidentityref, yang.YinstanceIdentifier:
		return string(v.Bytes), nil
	case yang.Yunion:
		return unionFromSnmp(v, yt)
	}
	return "", fmt.Errorf("yang type %q (%v) not translatable", yt.Name, yt.Kind)
}

func boolToSnmp(value string) (snmp.Value, error) {
	switch value {
	case "true":
		return snmp.NewValue(snmp.TagInteger, snmp.EncodeInt(truthValueTrue)), nil
	case "false":
		return snmp.NewValue(snmp.TagInteger, snmp.EncodeInt(truthValueFalse)), nil
	}
	return snmp.Value{}, fmt.Errorf("illegal value %q for boolean type", value)
}

func boolFromSnmp(v snmp.Value) (string, error) {
	i, err := snmp.DecodeInt(v.Bytes)
	if err != nil {
		return "", err
	}
	switch i {
	case truthValueTrue:
		return "true", nil
	case truthValueFalse:
		return "false", nil
	}
	return "", fmt.Errorf("illegal TruthValue %d", i)
}

func intToSnmp(value string, bits int) (snmp.Value, error) {
	i, err := strconv.ParseInt(value, 10, bits)
	if err != nil {
		return snmp.Value{}, fmt.Errorf("illegal int%d value %q: %v", bits, value, err)
	}
	return snmp.NewValue(snmp.TagInteger, snmp.EncodeInt(i)), nil
}

func uintToSnmp(value string, bits int, tag snmp.Tag) (snmp.Value, error) {
	u, err := strconv.ParseUint(value, 10, bits)
	if err != nil {
		return snmp.Value{}, fmt.Errorf("illegal uint%d value %q: %v", bits, value, err)
	}
	return snmp.NewValue(tag, snmp.EncodeUint(u)), nil
}

func enumToSnmp(value string, yt *yang.YangType) (snmp.Value, error) {
	if yt.Enum == nil {
		return snmp.Value{}, fmt.Errorf("enumeration %q has no values", yt.Name)
	}
	i, ok := yt.Enum.NameMap()[value]
	if !ok {
		names := make([]string, 0, len(yt.Enum.NameMap()))
		for n := range yt.Enum.NameMap() {
			names = append(names, n)
		}
		return snmp.Value{}, fmt.Errorf("value %q does not match any valid enum values [%s]", value, strings.Join(names, ", "))
	}
	return snmp.NewValue(snmp.TagInteger, snmp.EncodeInt(i)), nil
}

func enumFromSnmp(v snmp.Value, yt *yang.YangType) (string, error) {
	if yt.Enum == nil {
		return "", fmt.Errorf("enumeration %q has no values", yt.Name)
	}
	i, err := snmp.DecodeInt(v.Bytes)
	if err != nil {
		return "", err
	}
	name, ok := yt.Enum.ValueMap()[i]
	if !ok {
		return "", fmt.Errorf("no enum value %d in %q", i, yt.Name)
	}
	return name, nil
}

func binaryToSnmp(value string) (snmp.Value, error) {
	data, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		return snmp.Value{}, fmt.Errorf("error decoding base64 string: %v", err)
	}
	return snmp.NewValue(snmp.TagOctetString, data), nil
}

func unionToSnmp(value string, yt *yang.YangType) (snmp.Value, error) {
	for _, member := range yt.Type {
		v, err := YangToSnmp(value, member)
		if err != nil {
			continue
		}
		return v, nil
	}
	return snmp.Value{}, fmt.Errorf("no union type fit the provided value %q", value)
}

func unionFromSnmp(v snmp.Value, yt *yang.YangType) (string, error) {
	for _, member := range yt.Type {
		s, err := SnmpToYang(v, member)
		if err != nil {
			continue
		}
		return s, nil
	}
	return "", fmt.Errorf("%w: no union member of %q accepts tag %s", ErrWrongType, yt.Name, v.Tag)
}

package translate

import (
	"errors"
	"testing"

	"github.com/openconfig/goyang/pkg/yang"

	snmp "github.com/iptecharch/snmp-server/pkg/snmp/internal/value"
)

func enumType(t *testing.T) *yang.YangType {
	t.Helper()
	e := yang.NewEnumType()
	if err := e.Set("up", 1); err != nil {
		t.Fatal(err)
	}
	if err := e.Set("down", 2); err != nil {
		t.Fatal(err)
	}
	return &yang.YangType{Name: "enumeration", Kind: yang.Yenum, Enum: e}
}

func TestRoundTripYangToSnmp(t *testing.T) {
	tests := []struct {
		name  string
		typ   *yang.YangType
		value string
	}{
		{"bool true", &yang.YangType{Name: "boolean", Kind: yang.Ybool}, "true"},
		{"bool false", &yang.YangType{Name: "boolean", Kind: yang.Ybool}, "false"},
		{"int8 min", &yang.YangType{Name: "int8", Kind: yang.Yint8}, "-128"},
		{"int8 max", &yang.YangType{Name: "int8", Kind: yang.Yint8}, "127"},
		{"int16", &yang.YangType{Name: "int16", Kind: yang.Yint16}, "-30000"},
		{"int32", &yang.YangType{Name: "int32", Kind: yang.Yint32}, "2147483647"},
		{"int64 min", &yang.YangType{Name: "int64", Kind: yang.Yint64}, "-9223372036854775808"},
		{"uint8", &yang.YangType{Name: "uint8", Kind: yang.Yuint8}, "255"},
		{"uint16", &yang.YangType{Name: "uint16", Kind: yang.Yuint16}, "65535"},
		{"uint32", &yang.YangType{Name: "uint32", Kind: yang.Yuint32}, "4294967295"},
		{"uint64 max", &yang.YangType{Name: "uint64", Kind: yang.Yuint64}, "18446744073709551615"},
		{"zero uint", &yang.YangType{Name: "uint32", Kind: yang.Yuint32}, "0"},
		{"string", &yang.YangType{Name: "string", Kind: yang.Ystring}, "hello world"},
		{"string empty", &yang.YangType{Name: "string", Kind: yang.Ystring}, ""},
		{"binary", &yang.YangType{Name: "binary", Kind: yang.Ybinary}, "AQID"},
		{"decimal64", &yang.YangType{Name: "decimal64", Kind: yang.Ydecimal64}, "3.14"},
		{"leafref", &yang.YangType{Name: "leafref", Kind: yang.Yleafref}, "eth0"},
		{"identityref", &yang.YangType{Name: "identityref", Kind: yang.Yidentityref}, "iana-if-type:ethernetCsmacd"},
		{"enum", enumType(t), "up"},
		{"empty", &yang.YangType{Name: "empty", Kind: yang.Yempty}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := YangToSnmp(tt.value, tt.typ)
			if err != nil {
				t.Fatalf("YangToSnmp(%q): %v", tt.value, err)
			}
			got, err := SnmpToYang(v, tt.typ)
			if err != nil {
				t.Fatalf("SnmpToYang(% x): %v", v.Bytes, err)
			}
			if got != tt.value {
				t.Errorf("round trip %q = %q", tt.value, got)
			}
		})
	}
}

func TestRoundTripSnmpToYang(t *testing.T) {
	tests := []struct {
		name string
		typ  *yang.YangType
		val  snmp.Value
	}{
		{"integer", &yang.YangType{Name: "int32", Kind: yang.Yint32}, snmp.NewValue(snmp.TagInteger, snmp.EncodeInt(-42))},
		{"gauge", &yang.YangType{Name: "uint32", Kind: yang.Yuint32}, snmp.NewValue(snmp.TagGauge32, snmp.EncodeUint(42))},
		{"counter64", &yang.YangType{Name: "uint64", Kind: yang.Yuint64}, snmp.NewValue(snmp.TagCounter64, snmp.EncodeUint(1 << 40))},
		{"octets", &yang.YangType{Name: "string", Kind: yang.Ystring}, snmp.NewValue(snmp.TagOctetString, []byte("abc"))},
		{"binary octets", &yang.YangType{Name: "binary", Kind: yang.Ybinary}, snmp.NewValue(snmp.TagOctetString, []byte{0x00, 0xff, 0x10})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := SnmpToYang(tt.val, tt.typ)
			if err != nil {
				t.Fatalf("SnmpToYang: %v", err)
			}
			got, err := YangToSnmp(s, tt.typ)
			if err != nil {
				t.Fatalf("YangToSnmp(%q): %v", s, err)
			}
			if got.Tag != tt.val.Tag {
				t.Errorf("tag %s, want %s", got.Tag, tt.val.Tag)
			}
			if string(got.Bytes) != string(tt.val.Bytes) {
				t.Errorf("bytes % x, want % x", got.Bytes, tt.val.Bytes)
			}
		})
	}
}

func TestWrongTag(t *testing.T) {
	yt := &yang.YangType{Name: "uint16", Kind: yang.Yuint16}
	_, err := SnmpToYang(snmp.NewValue(snmp.TagOctetString, []byte("1500")), yt)
	if !errors.Is(err, ErrWrongType) {
		t.Fatalf("expected ErrWrongType, got %v", err)
	}
}

func TestTagFor(t *testing.T) {
	tests := []struct {
		typ  *yang.YangType
		want snmp.Tag
	}{
		{&yang.YangType{Name: "boolean", Kind: yang.Ybool}, snmp.TagInteger},
		{&yang.YangType{Name: "int64", Kind: yang.Yint64}, snmp.TagInteger},
		{&yang.YangType{Name: "uint32", Kind: yang.Yuint32}, snmp.TagGauge32},
		{&yang.YangType{Name: "uint64", Kind: yang.Yuint64}, snmp.TagCounter64},
		{&yang.YangType{Name: "string", Kind: yang.Ystring}, snmp.TagOctetString},
		{&yang.YangType{Name: "empty", Kind: yang.Yempty}, snmp.TagNull},
	}
	for _, tt := range tests {
		got, err := TagFor(tt.typ)
		if err != nil {
			t.Fatalf("TagFor(%s): %v", tt.typ.Name, err)
		}
		if got != tt.want {
			t.Errorf("TagFor(%s) = %s, want %s", tt.typ.Name, got, tt.want)
		}
	}
}

func TestUnion(t *testing.T) {
	union := &yang.YangType{
		Name: "union",
		Kind: yang.Yunion,
		Type: []*yang.YangType{
			{Name: "uint16", Kind: yang.Yuint16},
			{Name: "string", Kind: yang.Ystring},
		},
	}
	v, err := YangToSnmp("1500", union)
	if err != nil {
		t.Fatal(err)
	}
	if v.Tag != snmp.TagGauge32 {
		t.Errorf("numeric union member wins, got tag %s", v.Tag)
	}
	v, err = YangToSnmp("auto", union)
	if err != nil {
		t.Fatal(err)
	}
	if v.Tag != snmp.TagOctetString {
		t.Errorf("string union member expected, got tag %s", v.Tag)
	}
}

func TestEnumUnknownValue(t *testing.T) {
	if _, err := YangToSnmp("sideways", enumType(t)); err == nil {
		t.Error("unknown enum name should not translate")
	}
	if _, err := SnmpToYang(snmp.NewValue(snmp.TagInteger, snmp.EncodeInt(99)), enumType(t)); err == nil {
		t.Error("unknown enum value should not translate")
	}
}

func TestBooleanIllegalValue(t *testing.T) {
	if _, err := YangToSnmp("yes", &yang.YangType{Name: "boolean", Kind: yang.Ybool}); err == nil {
		t.Error("illegal boolean should not translate")
	}
}

package snmp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestIntRoundTrip(t *testing.T) {
	tests := []int64{
		0, 1, -1, 127, 128, -128, -129,
		255, 256, 32767, -32768,
		2147483647, -2147483648,
		9223372036854775807, -9223372036854775808,
	}
	for _, v := range tests {
		b := EncodeInt(v)
		got, err := DecodeInt(b)
		if err != nil {
			t.Fatalf("DecodeInt(EncodeInt(%d)): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d = %d, encoded % x", v, got, b)
		}
	}
}

func TestIntMinimalEncoding(t *testing.T) {
	tests := []struct {
		in   int64
		want []byte
	}{
		{0, []byte{0x00}},
		{127, []byte{0x7f}},
		{128, []byte{0x00, 0x80}},
		{-1, []byte{0xff}},
		{-128, []byte{0x80}},
		{-129, []byte{0xff, 0x7f}},
	}
	for _, tt := range tests {
		if got := EncodeInt(tt.in); !cmp.Equal(got, tt.want) {
			t.Errorf("EncodeInt(%d) = % x, want % x", tt.in, got, tt.want)
		}
	}
}

func TestUintRoundTrip(t *testing.T) {
	tests := []uint64{0, 1, 127, 128, 255, 256, 4294967295, 18446744073709551615}
	for _, v := range tests {
		b := EncodeUint(v)
		got, err := DecodeUint(b)
		if err != nil {
			t.Fatalf("DecodeUint(EncodeUint(%d)): %v", v, err)
		}
		if got != v {
			t.Errorf("round trip %d = %d, encoded % x", v, got, b)
		}
	}
}

func TestDecodeIntEmpty(t *testing.T) {
	if _, err := DecodeInt(nil); err == nil {
		t.Error("DecodeInt(nil) expected error")
	}
	if _, err := DecodeUint(nil); err == nil {
		t.Error("DecodeUint(nil) expected error")
	}
}

func TestParseOid(t *testing.T) {
	tests := []struct {
		in      string
		want    Oid
		wantErr bool
	}{
		{in: "1.3.6.1.2.1", want: Oid{1, 3, 6, 1, 2, 1}},
		{in: ".1.3.6", want: Oid{1, 3, 6}},
		{in: "", wantErr: true},
		{in: "1.x.3", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseOid(tt.in)
		if tt.wantErr != (err != nil) {
			t.Errorf("ParseOid(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && !cmp.Equal(got, tt.want) {
			t.Errorf("ParseOid(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestOidCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.3.6", "1.3.6", 0},
		{"1.3.5", "1.3.6", -1},
		{"1.3.7", "1.3.6", 1},
		{"1.3", "1.3.6", -1},
		{"1.3.6.1", "1.3.6", 1},
	}
	for _, tt := range tests {
		a, _ := ParseOid(tt.a)
		b, _ := ParseOid(tt.b)
		if got := a.Compare(b); got != tt.want {
			t.Errorf("%s.Compare(%s) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestOidHasPrefix(t *testing.T) {
	a, _ := ParseOid("1.3.6.1.4")
	p, _ := ParseOid("1.3.6")
	if !a.HasPrefix(p) {
		t.Errorf("%s should have prefix %s", a, p)
	}
	if p.HasPrefix(a) {
		t.Errorf("%s should not have prefix %s", p, a)
	}
}

func TestOidAppendDoesNotShareBacking(t *testing.T) {
	base, _ := ParseOid("1.3.6")
	x := base.Append(1)
	y := base.Append(2)
	if x.Compare(y) == 0 {
		t.Fatalf("append aliasing: %v == %v", x, y)
	}
}

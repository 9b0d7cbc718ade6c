package bitfields_test

import (
	"reflect"
	"testing"

	"github.com/mavenlink/bitfields"
)

func testAssignment(t *testing.T) *bitfields.Assignment {
	t.Helper()
	a, err := bitfields.NewAssignment(map[uint64]string{1: "seller", 2: "insane", 4: "sensible"})
	if err != nil {
		t.Fatal(err)
	}
	return a
}

func TestDecode(t *testing.T) {
	a := testAssignment(t)
	tests := []struct {
		name   string
		packed int64
		want   bitfields.FlagState
	}{
		{"zero", 0, bitfields.FlagState{"seller": false, "insane": false, "sensible": false}},
		{"two", 2, bitfields.FlagState{"seller": false, "insane": true, "sensible": false}},
		{"all", 7, bitfields.FlagState{"seller": true, "insane": true, "sensible": true}},
		{"extra high bits", 0b1010, bitfields.FlagState{"seller": false, "insane": true, "sensible": false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bitfields.Decode(a, tt.packed)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decode(%d) = %v, want %v", tt.packed, got, tt.want)
			}
		})
	}
}

func TestDecode_NegativePacked(t *testing.T) {
	a := testAssignment(t)
	if _, err := bitfields.Decode(a, -1); !bitfields.IsInvalidPackedValueError(err) {
		t.Errorf("expected InvalidPackedValueError, got %v", err)
	}
}

func TestEncode(t *testing.T) {
	a := testAssignment(t)
	tests := []struct {
		name    string
		packed  int64
		desired bitfields.FlagState
		want    int64
	}{
		{"set one", 0, bitfields.FlagState{"insane": true}, 2},
		{"clear one", 7, bitfields.FlagState{"sensible": false}, 3},
		{"set and clear", 4, bitfields.FlagState{"insane": true, "sensible": false}, 2},
		{"untouched bits preserved", 0b1001, bitfields.FlagState{"insane": true}, 0b1011},
		{"empty desired", 5, bitfields.FlagState{}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := bitfields.Encode(a, tt.packed, tt.desired)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Encode(%d, %v) = %d, want %d", tt.packed, tt.desired, got, tt.want)
			}
		})
	}
}

func TestEncode_UnknownFlag(t *testing.T) {
	a := testAssignment(t)
	if _, err := bitfields.Encode(a, 0, bitfields.FlagState{"bogus": true}); !bitfields.IsUnknownFlagError(err) {
		t.Errorf("expected UnknownFlagError, got %v", err)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	a := testAssignment(t)
	for p := int64(0); p < 1024; p++ {
		state, err := bitfields.Decode(a, p)
		if err != nil {
			t.Fatal(err)
		}
		got, err := bitfields.Encode(a, p, state)
		if err != nil {
			t.Fatal(err)
		}
		if got != p {
			t.Fatalf("round trip of %d gave %d", p, got)
		}
	}
}

func TestEncode_Idempotent(t *testing.T) {
	a := testAssignment(t)
	desired := bitfields.FlagState{"seller": true, "sensible": false}
	once, err := bitfields.Encode(a, 6, desired)
	if err != nil {
		t.Fatal(err)
	}
	twice, err := bitfields.Encode(a, once, desired)
	if err != nil {
		t.Fatal(err)
	}
	if once != twice {
		t.Errorf("encode not idempotent: %d then %d", once, twice)
	}
}

func TestEncode_NonInterference(t *testing.T) {
	a := testAssignment(t)
	for p := int64(0); p < 64; p++ {
		got, err := bitfields.Encode(a, p, bitfields.FlagState{"insane": true})
		if err != nil {
			t.Fatal(err)
		}
		if got&^2 != p&^2 {
			t.Fatalf("Encode(%d) altered unrelated bits: %d", p, got)
		}
	}
}

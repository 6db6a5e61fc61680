// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

func TestField_ZeroValueIsZero(t *testing.T) {
	var f Field
	if !f.IsZero() {
		t.Errorf("default field element should be zero")
	}
	if f != Zero || f != NewField(0) {
		t.Errorf("zero values should be equal")
	}
}

func TestField_CanBeUsedAsMapKey(t *testing.T) {
	m := map[Field]int{}
	m[NewField(1)] = 1
	m[NewField(2)] = 2
	m[NewField(1)] = 3
	if want, got := 2, len(m); want != got {
		t.Fatalf("unexpected map size, wanted %d, got %d", want, got)
	}
	if want, got := 3, m[NewField(1)]; want != got {
		t.Errorf("unexpected value, wanted %d, got %d", want, got)
	}
}

func TestField_Cmp_UsesCanonicalIntegerOrder(t *testing.T) {
	values := []Field{
		NewField(0),
		NewField(1),
		NewField(255),
		NewField(1 << 40),
		FieldFromBig(new(big.Int).Lsh(big.NewInt(1), 200)),
		FieldFromBig(new(big.Int).Sub(fr.Modulus(), big.NewInt(1))),
	}
	for i := range values {
		for j := range values {
			want := 0
			if i < j {
				want = -1
			} else if i > j {
				want = 1
			}
			if got := values[i].Cmp(values[j]); got != want {
				t.Errorf("unexpected comparison of %v and %v, wanted %d, got %d", values[i], values[j], want, got)
			}
		}
	}
}

func TestField_FromBig_ReducesModuloFieldOrder(t *testing.T) {
	modulus := fr.Modulus()
	if !FieldFromBig(modulus).IsZero() {
		t.Errorf("modulus should reduce to zero")
	}
	if want, got := NewField(5), FieldFromBig(new(big.Int).Add(modulus, big.NewInt(5))); want != got {
		t.Errorf("unexpected reduction, wanted %v, got %v", want, got)
	}
}

func TestField_Add(t *testing.T) {
	if want, got := NewField(7), NewField(3).Add(NewField(4)); want != got {
		t.Errorf("unexpected sum, wanted %v, got %v", want, got)
	}
	minusOne := FieldFromBig(new(big.Int).Sub(fr.Modulus(), big.NewInt(1)))
	if got := minusOne.AddUint64(1); !got.IsZero() {
		t.Errorf("addition should wrap around, got %v", got)
	}
}

func TestField_Uint64(t *testing.T) {
	if v, ok := NewField(42).Uint64(); !ok || v != 42 {
		t.Errorf("unexpected conversion result %d, %t", v, ok)
	}
	if _, ok := FieldFromBig(new(big.Int).Lsh(big.NewInt(1), 64)).Uint64(); ok {
		t.Errorf("large values should not be convertible")
	}
}

func TestField_String_PrintsPaddedHex(t *testing.T) {
	if want, got := "0x000000000000000000000000000000000000000000000000000000000000002a", NewField(42).String(); want != got {
		t.Errorf("unexpected string, wanted %s, got %s", want, got)
	}
}

func TestField_FromHex(t *testing.T) {
	tests := []struct {
		input string
		want  Field
	}{
		{"0x0", Zero},
		{"0x2a", NewField(42)},
		{"2a", NewField(42)},
		{"0x123", NewField(0x123)},
		{NewField(1 << 50).String(), NewField(1 << 50)},
	}
	for _, test := range tests {
		got, err := FieldFromHex(test.input)
		if err != nil {
			t.Fatalf("failed to parse %s: %v", test.input, err)
		}
		if got != test.want {
			t.Errorf("unexpected result for %s, wanted %v, got %v", test.input, test.want, got)
		}
	}
}

func TestField_FromHex_RejectsInvalidInput(t *testing.T) {
	modulus := fr.Modulus()
	inputs := []string{
		"0xzz",
		"0x" + "01" + NewField(0).String()[2:],
		"0x" + modulus.Text(16),
	}
	for _, input := range inputs {
		if _, err := FieldFromHex(input); !errors.Is(err, ErrInvalidFieldEncoding) {
			t.Errorf("expected encoding error for %s, got %v", input, err)
		}
	}
}

func TestField_JsonEncoding_RoundTrips(t *testing.T) {
	type wrapper struct {
		Value   Field
		Address Address
	}
	original := wrapper{Value: NewField(1234), Address: NewAddress(7)}
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("failed to encode: %v", err)
	}
	var restored wrapper
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("failed to decode: %v", err)
	}
	if original != restored {
		t.Errorf("unexpected value after round trip, wanted %v, got %v", original, restored)
	}
}

func TestAddress_ProtocolContracts(t *testing.T) {
	for i := uint64(1); i <= MaxProtocolContractAddress; i++ {
		if !IsProtocolContractAddress(NewAddress(i)) {
			t.Errorf("address %d should be a protocol contract", i)
		}
	}
	for _, addr := range []Address{NewAddress(0), NewAddress(MaxProtocolContractAddress + 1), AddressFromField(HashFields(NewField(1)))} {
		if IsProtocolContractAddress(addr) {
			t.Errorf("address %v should not be a protocol contract", addr)
		}
	}
}

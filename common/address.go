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

// Address identifies a contract. Addresses are field elements.
type Address struct {
	f Field
}

// NewAddress creates an address from a small integer, mostly useful for
// protocol contracts and tests.
func NewAddress(v uint64) Address {
	return Address{NewField(v)}
}

func AddressFromField(f Field) Address {
	return Address{f}
}

func AddressFromHex(s string) (Address, error) {
	f, err := FieldFromHex(s)
	if err != nil {
		return Address{}, err
	}
	return Address{f}, nil
}

func (a Address) ToField() Field {
	return a.f
}

func (a Address) IsZero() bool {
	return a.f.IsZero()
}

func (a Address) Cmp(o Address) int {
	return a.f.Cmp(o.f)
}

func (a Address) String() string {
	return a.f.String()
}

func (a Address) MarshalText() ([]byte, error) {
	return a.f.MarshalText()
}

func (a *Address) UnmarshalText(text []byte) error {
	return a.f.UnmarshalText(text)
}

// Protocol contracts deployed at fixed addresses. Their instances are known
// to every node and are therefore never checked against the deployment
// nullifier.
var (
	AuthRegistryAddress        = NewAddress(1)
	DeployerAddress            = NewAddress(2)
	RegistererAddress          = NewAddress(3)
	MultiCallEntrypointAddress = NewAddress(4)
	FeeJuiceAddress            = NewAddress(5)
	RouterAddress              = NewAddress(6)
)

// MaxProtocolContractAddress is the highest address reserved for protocol
// contracts.
const MaxProtocolContractAddress = 6

// IsProtocolContractAddress reports whether the given address is one of the
// canonical protocol contracts.
func IsProtocolContractAddress(a Address) bool {
	v, ok := a.f.Uint64()
	return ok && v >= 1 && v <= MaxProtocolContractAddress
}

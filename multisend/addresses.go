// Package multisend recognizes Safe MultiSend batches and breaks them into their calls.
package multisend

import (
	"github.com/ethereum/go-ethereum/common"
)

// Canonical Safe MultiSend and MultiSendCallOnly deployments shared by most networks.
var canonicalDeployments = []common.Address{
	common.HexToAddress("0x8D29bE29923b68abfDD21e541b9374737B49cdAD"), // MultiSend 1.1.1
	common.HexToAddress("0xA238CBeb142c10Ef7Ad8442C6D1f9E89e07e7761"), // MultiSend 1.3.0
	common.HexToAddress("0x40A2aCCbd92BCA938b02010E17A5b8929b49130D"), // MultiSendCallOnly 1.3.0
	common.HexToAddress("0x998739BFdAAdde7C933B942a68053933098f9EDa"), // MultiSend 1.3.0 eip155
	common.HexToAddress("0xA1dabEF33b3B82c7814B6D82A79e50F4AC44102B"), // MultiSendCallOnly 1.3.0 eip155
	common.HexToAddress("0x38869bf66a61cF6bDB996A6aE40D5853Fd43B526"), // MultiSend 1.4.1
	common.HexToAddress("0x9641d764fc13c8B624c04430C7356C1C7C8102e2"), // MultiSendCallOnly 1.4.1
}

// AddressBook lists the MultiSend deployments per network. Networks without an explicit
// list use the canonical deployments.
type AddressBook struct {
	byChain map[string][]common.Address
}

// NewAddressBook creates a book with per chain overrides.
func NewAddressBook(overrides map[string][]common.Address) *AddressBook {
	byChain := make(map[string][]common.Address, len(overrides))
	for chainID, addrs := range overrides {
		byChain[chainID] = append([]common.Address(nil), addrs...)
	}

	return &AddressBook{byChain: byChain}
}

// DefaultAddressBook uses the canonical deployments on every network.
func DefaultAddressBook() *AddressBook {
	return NewAddressBook(nil)
}

// Deployments returns the MultiSend addresses known for chainID.
func (b *AddressBook) Deployments(chainID string) []common.Address {
	if b != nil {
		if addrs, ok := b.byChain[chainID]; ok {
			return addrs
		}
	}

	return canonicalDeployments
}

// IsMultiSend reports whether addr is a MultiSend deployment on chainID.
func (b *AddressBook) IsMultiSend(chainID string, addr common.Address) bool {
	for _, d := range b.Deployments(chainID) {
		if d == addr {
			return true
		}
	}

	return false
}

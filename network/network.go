// Package network names the EVM networks Safe transactions live on.
package network

import (
	chainsel "github.com/smartcontractkit/chain-selectors"
)

// Name returns the canonical chain name for an EVM chain id, e.g. "1" -> "ethereum-mainnet".
// Unknown ids are returned unchanged.
func Name(chainID string) string {
	details, err := chainsel.GetChainDetailsByChainIDAndFamily(chainID, chainsel.FamilyEVM)
	if err != nil || details.ChainName == "" {
		return chainID
	}

	return details.ChainName
}

// Known reports whether chainID is a known EVM chain.
func Known(chainID string) bool {
	_, err := chainsel.GetChainDetailsByChainIDAndFamily(chainID, chainsel.FamilyEVM)

	return err == nil
}

package gateway

import (
	"fmt"
)

// DetailsFetchError is returned when the transaction details could not be retrieved.
// StatusCode is zero for transport failures.
type DetailsFetchError struct {
	ChainID    string
	TxID       string
	StatusCode int
	Err        error
}

func (e *DetailsFetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching details of tx %s on chain %s: status %d: %v", e.TxID, e.ChainID, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("fetching details of tx %s on chain %s: %v", e.TxID, e.ChainID, e.Err)
}

func (e *DetailsFetchError) Unwrap() error { return e.Err }

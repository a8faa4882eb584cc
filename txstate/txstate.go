// Package txstate derives the view state of a Safe transaction from its summary and details.
//
// Every function is pure. Unknown union variants and absent records classify as false.
package txstate

import (
	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/multisend"
)

// Flags is the derived view state of one transaction. It is recomputed from its inputs on
// every render and never patched.
type Flags struct {
	Queued            bool `json:"queued"`
	AwaitingExecution bool `json:"awaitingExecution"`
	Unsigned          bool `json:"unsigned"`
	Untrusted         bool `json:"untrusted"`
	ModuleExecution   bool `json:"moduleExecution"`
	DelegateCall      bool `json:"delegateCall"`
	MultisendEligible bool `json:"multisendEligible"`
}

// Classify computes Flags. details may be nil while they are still loading.
func Classify(summary gateway.TransactionSummary, details *gateway.TransactionDetails, chainID string, book *multisend.AddressBook) Flags {
	return Flags{
		Queued:            IsQueued(summary.TxStatus),
		AwaitingExecution: IsAwaitingExecution(summary.TxStatus),
		Unsigned:          IsUnsigned(summary.ExecutionInfo),
		Untrusted:         details != nil && IsUntrusted(details.DetailedExecutionInfo),
		ModuleExecution:   IsModuleExecution(summary.ExecutionInfo),
		DelegateCall:      details != nil && IsDelegateCall(details.TxData),
		MultisendEligible: details != nil && IsMultisendEligible(details.TxInfo, chainID, book),
	}
}

// IsQueued reports whether status belongs to the queue.
func IsQueued(status gateway.TxStatus) bool {
	switch status {
	case gateway.TxStatusAwaitingConfirmations, gateway.TxStatusAwaitingExecution:
		return true
	default:
		return false
	}
}

// IsAwaitingExecution reports whether the transaction has enough signatures to execute.
func IsAwaitingExecution(status gateway.TxStatus) bool {
	return status == gateway.TxStatusAwaitingExecution
}

// IsMultisigExecutionInfo reports whether info is the multisig variant.
func IsMultisigExecutionInfo(info gateway.ExecutionInfo) bool {
	ms, ok := info.(*gateway.MultisigExecutionInfo)
	return ok && ms != nil
}

// IsUnsigned reports whether a multisig transaction has no confirmations yet. Module
// executions are never unsigned.
func IsUnsigned(info gateway.ExecutionInfo) bool {
	switch v := info.(type) {
	case *gateway.MultisigExecutionInfo:
		return v != nil && v.ConfirmationsSubmitted == 0
	case *gateway.ModuleExecutionInfo, *gateway.UnknownExecutionInfo:
		return false
	default:
		return false
	}
}

// IsModuleExecution reports whether the transaction was executed through a module.
func IsModuleExecution(info gateway.ExecutionInfo) bool {
	switch v := info.(type) {
	case *gateway.ModuleExecutionInfo:
		return v != nil
	case *gateway.MultisigExecutionInfo, *gateway.UnknownExecutionInfo:
		return false
	default:
		return false
	}
}

// IsUntrusted reports whether the gateway explicitly flagged the multisig info as untrusted.
// An absent flag counts as trusted.
func IsUntrusted(info gateway.DetailedExecutionInfo) bool {
	switch v := info.(type) {
	case *gateway.MultisigDetailedExecutionInfo:
		return v != nil && v.Trusted != nil && !*v.Trusted
	case *gateway.ModuleDetailedExecutionInfo, *gateway.UnknownDetailedExecutionInfo:
		return false
	default:
		return false
	}
}

// IsDelegateCall reports whether the call runs in the Safe's storage context.
func IsDelegateCall(txData *gateway.TxData) bool {
	return txData != nil && txData.Operation == gateway.OperationDelegateCall
}

// IsMultiSendTxInfo reports whether txInfo is a custom multiSend call with an action count.
func IsMultiSendTxInfo(txInfo gateway.TxInfo) bool {
	return txInfo.Type == gateway.TxInfoTypeCustom &&
		txInfo.MethodName != nil && *txInfo.MethodName == gateway.MethodMultiSend &&
		txInfo.ActionCount != nil
}

// IsSupportedMultiSendAddress reports whether the call target is a MultiSend deployment
// on chainID.
func IsSupportedMultiSendAddress(txInfo gateway.TxInfo, chainID string, book *multisend.AddressBook) bool {
	if txInfo.To == nil || !txInfo.To.Valid() {
		return false
	}

	return book.IsMultiSend(chainID, txInfo.To.Address())
}

// IsMultisendEligible reports whether the multisend breakdown applies.
func IsMultisendEligible(txInfo gateway.TxInfo, chainID string, book *multisend.AddressBook) bool {
	return IsMultiSendTxInfo(txInfo) && IsSupportedMultiSendAddress(txInfo, chainID, book)
}

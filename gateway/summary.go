package gateway

import "strings"

// Summary derives the list item of the transaction from its details. It is used when only
// a transaction id is known, such as a shared link.
func (d *TransactionDetails) Summary() TransactionSummary {
	summary := TransactionSummary{
		ID:       d.TxID,
		TxStatus: d.TxStatus,
		TxInfo:   d.TxInfo,
	}
	if d.ExecutedAt != nil {
		summary.Timestamp = *d.ExecutedAt
	}

	switch v := d.DetailedExecutionInfo.(type) {
	case *MultisigDetailedExecutionInfo:
		if v == nil {
			break
		}
		if summary.Timestamp == 0 {
			summary.Timestamp = v.SubmittedAt
		}
		summary.ExecutionInfo = &MultisigExecutionInfo{
			Nonce:                  v.Nonce,
			ConfirmationsRequired:  v.ConfirmationsRequired,
			ConfirmationsSubmitted: len(v.Confirmations),
			MissingSigners:         missingSigners(v),
		}
	case *ModuleDetailedExecutionInfo:
		if v != nil {
			summary.ExecutionInfo = &ModuleExecutionInfo{Address: v.Address}
		}
	case *UnknownDetailedExecutionInfo:
		if v != nil {
			summary.ExecutionInfo = &UnknownExecutionInfo{Type: v.Type}
		}
	}

	return summary
}

// missingSigners lists the owners that have not confirmed yet. Executed transactions have
// none.
func missingSigners(info *MultisigDetailedExecutionInfo) []AddressEx {
	if info.Executor != nil {
		return nil
	}
	confirmed := make(map[string]struct{}, len(info.Confirmations))
	for _, c := range info.Confirmations {
		confirmed[strings.ToLower(c.Signer.Value)] = struct{}{}
	}

	var missing []AddressEx
	for _, s := range info.Signers {
		if _, ok := confirmed[strings.ToLower(s.Value)]; !ok {
			missing = append(missing, s)
		}
	}

	return missing
}

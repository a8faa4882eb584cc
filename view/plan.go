package view

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/smartcontractkit/safe-txdetails/decoder"
	"github.com/smartcontractkit/safe-txdetails/format"
	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/multisend"
	"github.com/smartcontractkit/safe-txdetails/network"
	"github.com/smartcontractkit/safe-txdetails/txstate"
)

// Action is a trigger point handed to the signing and execution subsystem.
type Action string

const (
	ActionExecute Action = "execute"
	ActionSign    Action = "sign"
	ActionReject  Action = "reject"
)

// Input is everything a plan is composed from.
type Input struct {
	ChainID     string
	Summary     gateway.TransactionSummary
	Details     *gateway.TransactionDetails
	Description string
	Flags       txstate.Flags
	// WalletConnected reports whether a wallet is connected.
	WalletConnected bool
	// WrongChain reports whether the connected wallet is on another network.
	WrongChain bool
	// Pending reports whether the transaction is being processed locally.
	Pending bool
}

// Plan lists the sub views of the transaction detail view and their content.
type Plan struct {
	TxID      string        `json:"txId"`
	ChainID   string        `json:"chainId"`
	ChainName string        `json:"chainName"`
	ShareLink string        `json:"shareLink"`
	Flags     txstate.Flags `json:"flags"`

	Description *Section[[]format.Segment]        `json:"description,omitempty"`
	DecodedData Section[DecodedData]              `json:"decodedData"`
	Module      *ModuleInfo                       `json:"module,omitempty"`
	Summary     SummaryInfo                       `json:"summary"`
	Warnings    Warnings                          `json:"warnings"`
	Multisend   *Section[[]multisend.Transaction] `json:"multisend,omitempty"`
	Signers     *Signers                          `json:"signers,omitempty"`
}

// DecodedData is the raw decoded call.
type DecodedData struct {
	To         string          `json:"to,omitempty"`
	ToName     string          `json:"toName,omitempty"`
	Value      string          `json:"value,omitempty"`
	Operation  string          `json:"operation,omitempty"`
	Method     string          `json:"method,omitempty"`
	Parameters []decoder.Param `json:"parameters,omitempty"`
	HexData    string          `json:"hexData,omitempty"`
}

// Empty reports whether the transaction carries no call data.
func (d DecodedData) Empty() bool {
	return d.To == "" && d.Method == "" && d.HexData == ""
}

type ModuleInfo struct {
	Address string `json:"address"`
}

type SummaryInfo struct {
	Status     gateway.TxStatus `json:"status"`
	TxHash     string           `json:"txHash,omitempty"`
	SafeTxHash string           `json:"safeTxHash,omitempty"`
	Nonce      *uint64          `json:"nonce,omitempty"`
	ExecutedAt *int64           `json:"executedAt,omitempty"`
}

type Warnings struct {
	Untrusted    bool                 `json:"untrusted,omitempty"`
	DelegateCall *DelegateCallWarning `json:"delegateCall,omitempty"`
}

// DelegateCallWarning is shown for delegate calls. ShowWarning is false when the gateway
// vouches for the delegate call target.
type DelegateCallWarning struct {
	ShowWarning bool `json:"showWarning"`
}

type Signers struct {
	ConfirmationsRequired  int      `json:"confirmationsRequired"`
	ConfirmationsSubmitted int      `json:"confirmationsSubmitted"`
	Confirmed              []string `json:"confirmed,omitempty"`
	Missing                []string `json:"missing,omitempty"`
	Actions                []Action `json:"actions,omitempty"`
}

// Build composes the plan. Sections that fail are replaced by their fallback.
func Build(in Input) Plan {
	flags := in.Flags
	plan := Plan{
		TxID:      in.Summary.ID,
		ChainID:   in.ChainID,
		ChainName: network.Name(in.ChainID),
		ShareLink: in.Summary.ID,
		Flags:     flags,
		Summary:   buildSummary(in.Summary, in.Details),
	}

	if in.Description != "" {
		section := buildSection("description", func() ([]format.Segment, error) {
			return format.Split(in.Description), nil
		})
		plan.Description = &section
	}

	plan.DecodedData = buildSection("decoded data", func() (DecodedData, error) {
		return buildDecodedData(in.Details)
	})

	if mod, ok := in.Summary.ExecutionInfo.(*gateway.ModuleExecutionInfo); ok && flags.ModuleExecution {
		plan.Module = &ModuleInfo{Address: displayAddress(mod.Address)}
	}

	plan.Warnings.Untrusted = flags.Untrusted && !in.Pending
	if flags.DelegateCall {
		trusted := in.Details != nil && in.Details.TxData != nil &&
			in.Details.TxData.TrustedDelegateCallTarget != nil && *in.Details.TxData.TrustedDelegateCallTarget
		plan.Warnings.DelegateCall = &DelegateCallWarning{ShowWarning: !trusted}
	}

	if flags.MultisendEligible && in.Details != nil {
		section := buildSection("multisend", func() ([]multisend.Transaction, error) {
			return multisend.Breakdown(in.Details.TxData)
		})
		plan.Multisend = &section
	}

	if !flags.Unsigned {
		plan.Signers = buildSigners(in)
	}

	return plan
}

func buildSigners(in Input) *Signers {
	signers := &Signers{}
	if ms, ok := in.Summary.ExecutionInfo.(*gateway.MultisigExecutionInfo); ok && ms != nil {
		signers.ConfirmationsRequired = ms.ConfirmationsRequired
		signers.ConfirmationsSubmitted = ms.ConfirmationsSubmitted
		for _, m := range ms.MissingSigners {
			signers.Missing = append(signers.Missing, displayAddress(m))
		}
	}
	if in.Details != nil {
		if info, ok := in.Details.DetailedExecutionInfo.(*gateway.MultisigDetailedExecutionInfo); ok && info != nil {
			for _, c := range info.Confirmations {
				signers.Confirmed = append(signers.Confirmed, displayAddress(c.Signer))
			}
		}
	}

	if in.WalletConnected && !in.WrongChain && in.Flags.Queued {
		primary := ActionSign
		if in.Flags.AwaitingExecution {
			primary = ActionExecute
		}
		signers.Actions = []Action{primary, ActionReject}
	}

	return signers
}

func buildSummary(summary gateway.TransactionSummary, details *gateway.TransactionDetails) SummaryInfo {
	info := SummaryInfo{Status: summary.TxStatus}
	if ms, ok := summary.ExecutionInfo.(*gateway.MultisigExecutionInfo); ok && ms != nil {
		nonce := ms.Nonce
		info.Nonce = &nonce
	}
	if details == nil {
		return info
	}
	if details.TxHash != nil {
		info.TxHash = *details.TxHash
	}
	info.ExecutedAt = details.ExecutedAt
	if ms, ok := details.DetailedExecutionInfo.(*gateway.MultisigDetailedExecutionInfo); ok && ms != nil {
		info.SafeTxHash = ms.SafeTxHash
	}

	return info
}

var errInvalidTarget = errors.New("invalid target address")

func buildDecodedData(details *gateway.TransactionDetails) (DecodedData, error) {
	if details == nil || details.TxData == nil {
		return DecodedData{}, nil
	}
	txData := details.TxData

	if !txData.To.Valid() {
		return DecodedData{}, fmt.Errorf("%w %q", errInvalidTarget, txData.To.Value)
	}
	out := DecodedData{
		To:        txData.To.Address().Hex(),
		Operation: txData.Operation.String(),
	}
	if txData.To.Name != nil {
		out.ToName = *txData.To.Name
	}
	if txData.Value != nil {
		if _, ok := new(big.Int).SetString(*txData.Value, 10); !ok {
			return DecodedData{}, fmt.Errorf("invalid value %q", *txData.Value)
		}
		out.Value = *txData.Value
	}
	if txData.HexData != nil {
		out.HexData = *txData.HexData
	}
	if txData.DataDecoded != nil {
		out.Method = txData.DataDecoded.Method
		for _, p := range txData.DataDecoded.Parameters {
			out.Parameters = append(out.Parameters, decoder.Param{
				Name:  p.Name,
				Type:  p.Type,
				Value: decoder.NormalizeValue(p.Value),
			})
		}
	}

	return out, nil
}

// displayAddress checksums valid addresses and leaves anything else untouched.
func displayAddress(a gateway.AddressEx) string {
	if !common.IsHexAddress(a.Value) {
		return a.Value
	}

	return a.Address().Hex()
}

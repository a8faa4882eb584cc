package gateway

import (
	"encoding/json"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// TxStatus is the lifecycle status reported by the client gateway.
type TxStatus string

const (
	TxStatusAwaitingConfirmations TxStatus = "AWAITING_CONFIRMATIONS"
	TxStatusAwaitingExecution     TxStatus = "AWAITING_EXECUTION"
	TxStatusPending               TxStatus = "PENDING"
	TxStatusWillBeReplaced        TxStatus = "WILL_BE_REPLACED"
	TxStatusCancelled             TxStatus = "CANCELLED"
	TxStatusFailed                TxStatus = "FAILED"
	TxStatusSuccess               TxStatus = "SUCCESS"
)

// Operation is the Safe call type.
type Operation int

const (
	OperationCall         Operation = 0
	OperationDelegateCall Operation = 1
)

func (o Operation) String() string {
	switch o {
	case OperationCall:
		return "CALL"
	case OperationDelegateCall:
		return "DELEGATE"
	default:
		return fmt.Sprintf("Operation(%d)", int(o))
	}
}

// Discriminator values used by the gateway's tagged unions.
const (
	ExecutionInfoTypeMultisig = "MULTISIG"
	ExecutionInfoTypeModule   = "MODULE"

	TxInfoTypeCustom         = "Custom"
	TxInfoTypeTransfer       = "Transfer"
	TxInfoTypeSettingsChange = "SettingsChange"
	TxInfoTypeCreation       = "Creation"

	MethodMultiSend = "multiSend"
)

// AddressEx is an address with optional display metadata.
type AddressEx struct {
	Value   string  `json:"value"`
	Name    *string `json:"name,omitempty"`
	LogoURI *string `json:"logoUri,omitempty"`
}

// Address parses Value. Invalid input yields the zero address.
func (a AddressEx) Address() common.Address {
	return common.HexToAddress(a.Value)
}

// Valid reports whether Value is a well formed hex address.
func (a AddressEx) Valid() bool {
	return common.IsHexAddress(a.Value)
}

// ExecutionInfo is the summary-level execution info union: *MultisigExecutionInfo,
// *ModuleExecutionInfo or *UnknownExecutionInfo.
type ExecutionInfo interface {
	ExecutionInfoType() string
}

type MultisigExecutionInfo struct {
	Nonce                  uint64      `json:"nonce"`
	ConfirmationsRequired  int         `json:"confirmationsRequired"`
	ConfirmationsSubmitted int         `json:"confirmationsSubmitted"`
	MissingSigners         []AddressEx `json:"missingSigners,omitempty"`
}

func (*MultisigExecutionInfo) ExecutionInfoType() string { return ExecutionInfoTypeMultisig }

type ModuleExecutionInfo struct {
	Address AddressEx `json:"address"`
}

func (*ModuleExecutionInfo) ExecutionInfoType() string { return ExecutionInfoTypeModule }

// UnknownExecutionInfo keeps the tag of a variant this package does not model.
type UnknownExecutionInfo struct {
	Type string
}

func (u *UnknownExecutionInfo) ExecutionInfoType() string { return u.Type }

// DetailedExecutionInfo is the details-level execution info union:
// *MultisigDetailedExecutionInfo, *ModuleDetailedExecutionInfo or *UnknownDetailedExecutionInfo.
type DetailedExecutionInfo interface {
	DetailedExecutionInfoType() string
}

type Confirmation struct {
	Signer      AddressEx `json:"signer"`
	Signature   *string   `json:"signature,omitempty"`
	SubmittedAt int64     `json:"submittedAt"`
}

type MultisigDetailedExecutionInfo struct {
	SubmittedAt           int64          `json:"submittedAt"`
	Nonce                 uint64         `json:"nonce"`
	SafeTxHash            string         `json:"safeTxHash"`
	Executor              *AddressEx     `json:"executor,omitempty"`
	Signers               []AddressEx    `json:"signers"`
	ConfirmationsRequired int            `json:"confirmationsRequired"`
	Confirmations         []Confirmation `json:"confirmations"`
	// Trusted is nil when the gateway omits the flag.
	Trusted *bool `json:"trusted,omitempty"`
}

func (*MultisigDetailedExecutionInfo) DetailedExecutionInfoType() string {
	return ExecutionInfoTypeMultisig
}

type ModuleDetailedExecutionInfo struct {
	Address AddressEx `json:"address"`
}

func (*ModuleDetailedExecutionInfo) DetailedExecutionInfoType() string {
	return ExecutionInfoTypeModule
}

type UnknownDetailedExecutionInfo struct {
	Type string
}

func (u *UnknownDetailedExecutionInfo) DetailedExecutionInfoType() string { return u.Type }

// TxInfo is the transaction info union. Only the fields needed for classification are
// modelled; Type carries the discriminator.
type TxInfo struct {
	Type           string     `json:"type"`
	To             *AddressEx `json:"to,omitempty"`
	MethodName     *string    `json:"methodName,omitempty"`
	ActionCount    *int       `json:"actionCount,omitempty"`
	IsCancellation bool       `json:"isCancellation,omitempty"`
}

// Parameter is one decoded argument. Value and ValueDecoded hold the raw JSON the gateway
// returned: a string for scalar values, arrays or objects for structured ones.
type Parameter struct {
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Value        json.RawMessage `json:"value"`
	ValueDecoded json.RawMessage `json:"valueDecoded,omitempty"`
}

type DataDecoded struct {
	Method     string      `json:"method"`
	Parameters []Parameter `json:"parameters,omitempty"`
}

type TxData struct {
	HexData                   *string      `json:"hexData,omitempty"`
	DataDecoded               *DataDecoded `json:"dataDecoded,omitempty"`
	To                        AddressEx    `json:"to"`
	Value                     *string      `json:"value,omitempty"`
	Operation                 Operation    `json:"operation"`
	TrustedDelegateCallTarget *bool        `json:"trustedDelegateCallTarget,omitempty"`
}

// SafeAppInfo identifies the Safe App that proposed the transaction.
type SafeAppInfo struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	LogoURI string `json:"logoUri,omitempty"`
}

// TransactionSummary is a queue or history list item.
type TransactionSummary struct {
	ID            string        `json:"id"`
	Timestamp     int64         `json:"timestamp"`
	TxStatus      TxStatus      `json:"txStatus"`
	TxInfo        TxInfo        `json:"txInfo"`
	ExecutionInfo ExecutionInfo `json:"-"`
}

// TransactionDetails is the full record returned by the details endpoint.
type TransactionDetails struct {
	TxID                  string                `json:"txId"`
	ExecutedAt            *int64                `json:"executedAt,omitempty"`
	TxStatus              TxStatus              `json:"txStatus"`
	TxInfo                TxInfo                `json:"txInfo"`
	TxData                *TxData               `json:"txData,omitempty"`
	DetailedExecutionInfo DetailedExecutionInfo `json:"-"`
	TxHash                *string               `json:"txHash,omitempty"`
	SafeAppInfo           *SafeAppInfo          `json:"safeAppInfo,omitempty"`
}

type typeTag struct {
	Type string `json:"type"`
}

func (s *TransactionSummary) UnmarshalJSON(b []byte) error {
	type alias TransactionSummary
	aux := struct {
		*alias
		ExecutionInfo json.RawMessage `json:"executionInfo"`
	}{alias: (*alias)(s)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	info, err := unmarshalExecutionInfo(aux.ExecutionInfo)
	if err != nil {
		return fmt.Errorf("executionInfo: %w", err)
	}
	s.ExecutionInfo = info

	return nil
}

func (s TransactionSummary) MarshalJSON() ([]byte, error) {
	type alias TransactionSummary

	return json.Marshal(struct {
		alias
		ExecutionInfo any `json:"executionInfo,omitempty"`
	}{alias: alias(s), ExecutionInfo: taggedExecutionInfo(s.ExecutionInfo)})
}

func (d *TransactionDetails) UnmarshalJSON(b []byte) error {
	type alias TransactionDetails
	aux := struct {
		*alias
		DetailedExecutionInfo json.RawMessage `json:"detailedExecutionInfo"`
	}{alias: (*alias)(d)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	info, err := unmarshalDetailedExecutionInfo(aux.DetailedExecutionInfo)
	if err != nil {
		return fmt.Errorf("detailedExecutionInfo: %w", err)
	}
	d.DetailedExecutionInfo = info

	return nil
}

func (d TransactionDetails) MarshalJSON() ([]byte, error) {
	type alias TransactionDetails

	return json.Marshal(struct {
		alias
		DetailedExecutionInfo any `json:"detailedExecutionInfo,omitempty"`
	}{alias: alias(d), DetailedExecutionInfo: taggedDetailedExecutionInfo(d.DetailedExecutionInfo)})
}

func isNullJSON(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func unmarshalExecutionInfo(raw json.RawMessage) (ExecutionInfo, error) {
	if isNullJSON(raw) {
		return nil, nil
	}
	var tag typeTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}

	switch tag.Type {
	case ExecutionInfoTypeMultisig:
		var info MultisigExecutionInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, err
		}

		return &info, nil
	case ExecutionInfoTypeModule:
		var info ModuleExecutionInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, err
		}

		return &info, nil
	default:
		return &UnknownExecutionInfo{Type: tag.Type}, nil
	}
}

func unmarshalDetailedExecutionInfo(raw json.RawMessage) (DetailedExecutionInfo, error) {
	if isNullJSON(raw) {
		return nil, nil
	}
	var tag typeTag
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}

	switch tag.Type {
	case ExecutionInfoTypeMultisig:
		var info MultisigDetailedExecutionInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, err
		}

		return &info, nil
	case ExecutionInfoTypeModule:
		var info ModuleDetailedExecutionInfo
		if err := json.Unmarshal(raw, &info); err != nil {
			return nil, err
		}

		return &info, nil
	default:
		return &UnknownDetailedExecutionInfo{Type: tag.Type}, nil
	}
}

func taggedExecutionInfo(info ExecutionInfo) any {
	switch v := info.(type) {
	case *MultisigExecutionInfo:
		return struct {
			Type string `json:"type"`
			*MultisigExecutionInfo
		}{ExecutionInfoTypeMultisig, v}
	case *ModuleExecutionInfo:
		return struct {
			Type string `json:"type"`
			*ModuleExecutionInfo
		}{ExecutionInfoTypeModule, v}
	case *UnknownExecutionInfo:
		return typeTag{Type: v.Type}
	default:
		return nil
	}
}

func taggedDetailedExecutionInfo(info DetailedExecutionInfo) any {
	switch v := info.(type) {
	case *MultisigDetailedExecutionInfo:
		return struct {
			Type string `json:"type"`
			*MultisigDetailedExecutionInfo
		}{ExecutionInfoTypeMultisig, v}
	case *ModuleDetailedExecutionInfo:
		return struct {
			Type string `json:"type"`
			*ModuleDetailedExecutionInfo
		}{ExecutionInfoTypeModule, v}
	case *UnknownDetailedExecutionInfo:
		return typeTag{Type: v.Type}
	default:
		return nil
	}
}

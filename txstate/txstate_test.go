package txstate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartcontractkit/safe-txdetails/gateway"
	"github.com/smartcontractkit/safe-txdetails/multisend"
)

func ptr[T any](v T) *T { return &v }

const multiSendCallOnly = "0x40A2aCCbd92BCA938b02010E17A5b8929b49130D"

func TestIsQueuedAndAwaitingExecution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status       gateway.TxStatus
		wantQueued   bool
		wantAwaiting bool
	}{
		{gateway.TxStatusAwaitingConfirmations, true, false},
		{gateway.TxStatusAwaitingExecution, true, true},
		{gateway.TxStatusPending, false, false},
		{gateway.TxStatusWillBeReplaced, false, false},
		{gateway.TxStatusSuccess, false, false},
		{gateway.TxStatusFailed, false, false},
		{gateway.TxStatusCancelled, false, false},
		{gateway.TxStatus("SOMETHING_NEW"), false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantQueued, IsQueued(tt.status))
			assert.Equal(t, tt.wantAwaiting, IsAwaitingExecution(tt.status))
		})
	}
}

func TestIsUnsigned(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info gateway.ExecutionInfo
		want bool
	}{
		{"multisig without confirmations", &gateway.MultisigExecutionInfo{ConfirmationsSubmitted: 0, ConfirmationsRequired: 2}, true},
		{"multisig with confirmations", &gateway.MultisigExecutionInfo{ConfirmationsSubmitted: 1, ConfirmationsRequired: 2}, false},
		{"module execution", &gateway.ModuleExecutionInfo{}, false},
		{"unknown variant", &gateway.UnknownExecutionInfo{Type: "SWAP"}, false},
		{"typed nil", (*gateway.MultisigExecutionInfo)(nil), false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsUnsigned(tt.info))
		})
	}
}

func TestIsModuleExecution(t *testing.T) {
	t.Parallel()

	assert.True(t, IsModuleExecution(&gateway.ModuleExecutionInfo{}))
	assert.False(t, IsModuleExecution(&gateway.MultisigExecutionInfo{}))
	assert.False(t, IsModuleExecution(&gateway.UnknownExecutionInfo{Type: "MODULE_V2"}))
	assert.False(t, IsModuleExecution(nil))

	assert.True(t, IsMultisigExecutionInfo(&gateway.MultisigExecutionInfo{}))
	assert.False(t, IsMultisigExecutionInfo(&gateway.ModuleExecutionInfo{}))
}

func TestIsUntrusted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info gateway.DetailedExecutionInfo
		want bool
	}{
		{"explicitly untrusted", &gateway.MultisigDetailedExecutionInfo{Trusted: ptr(false)}, true},
		{"trusted", &gateway.MultisigDetailedExecutionInfo{Trusted: ptr(true)}, false},
		{"flag absent", &gateway.MultisigDetailedExecutionInfo{}, false},
		{"module", &gateway.ModuleDetailedExecutionInfo{}, false},
		{"unknown", &gateway.UnknownDetailedExecutionInfo{Type: "X"}, false},
		{"absent", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsUntrusted(tt.info))
		})
	}
}

func TestIsDelegateCall(t *testing.T) {
	t.Parallel()

	assert.True(t, IsDelegateCall(&gateway.TxData{Operation: gateway.OperationDelegateCall}))
	assert.False(t, IsDelegateCall(&gateway.TxData{Operation: gateway.OperationCall}))
	assert.False(t, IsDelegateCall(nil))
}

func TestIsMultisendEligible(t *testing.T) {
	t.Parallel()

	book := multisend.DefaultAddressBook()

	tests := []struct {
		name   string
		txInfo gateway.TxInfo
		want   bool
	}{
		{
			name:   "multiSend to canonical deployment",
			txInfo: gateway.TxInfo{Type: gateway.TxInfoTypeCustom, MethodName: ptr("multiSend"), ActionCount: ptr(2), To: &gateway.AddressEx{Value: multiSendCallOnly}},
			want:   true,
		},
		{
			name:   "lower case address",
			txInfo: gateway.TxInfo{Type: gateway.TxInfoTypeCustom, MethodName: ptr("multiSend"), ActionCount: ptr(2), To: &gateway.AddressEx{Value: "0x40a2accbd92bca938b02010e17a5b8929b49130d"}},
			want:   true,
		},
		{
			name:   "multiSend to unknown contract",
			txInfo: gateway.TxInfo{Type: gateway.TxInfoTypeCustom, MethodName: ptr("multiSend"), ActionCount: ptr(2), To: &gateway.AddressEx{Value: "0x6B175474E89094C44Da98b954EedeAC495271d0F"}},
		},
		{
			name:   "other method to multisend",
			txInfo: gateway.TxInfo{Type: gateway.TxInfoTypeCustom, MethodName: ptr("transfer"), To: &gateway.AddressEx{Value: multiSendCallOnly}},
		},
		{
			name:   "not custom",
			txInfo: gateway.TxInfo{Type: gateway.TxInfoTypeTransfer, MethodName: ptr("multiSend"), ActionCount: ptr(2), To: &gateway.AddressEx{Value: multiSendCallOnly}},
		},
		{
			name:   "no target",
			txInfo: gateway.TxInfo{Type: gateway.TxInfoTypeCustom, MethodName: ptr("multiSend"), ActionCount: ptr(2)},
		},
		{
			name:   "no action count",
			txInfo: gateway.TxInfo{Type: gateway.TxInfoTypeCustom, MethodName: ptr("multiSend"), To: &gateway.AddressEx{Value: multiSendCallOnly}},
		},
		{
			name:   "invalid target",
			txInfo: gateway.TxInfo{Type: gateway.TxInfoTypeCustom, MethodName: ptr("multiSend"), ActionCount: ptr(2), To: &gateway.AddressEx{Value: "0x40A2"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsMultisendEligible(tt.txInfo, "1", book))
		})
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	summary := gateway.TransactionSummary{
		ID:            "multisig_0xabc_0x01",
		TxStatus:      gateway.TxStatusAwaitingExecution,
		ExecutionInfo: &gateway.MultisigExecutionInfo{ConfirmationsSubmitted: 2, ConfirmationsRequired: 2},
	}
	details := &gateway.TransactionDetails{
		TxInfo: gateway.TxInfo{Type: gateway.TxInfoTypeCustom, MethodName: ptr("multiSend"), ActionCount: ptr(2), To: &gateway.AddressEx{Value: multiSendCallOnly}},
		TxData: &gateway.TxData{Operation: gateway.OperationDelegateCall},
		DetailedExecutionInfo: &gateway.MultisigDetailedExecutionInfo{
			Trusted: ptr(false),
		},
	}

	assert.Equal(t, Flags{
		Queued:            true,
		AwaitingExecution: true,
		Untrusted:         true,
		DelegateCall:      true,
		MultisendEligible: true,
	}, Classify(summary, details, "1", multisend.DefaultAddressBook()))

	assert.Equal(t, Flags{
		Queued:            true,
		AwaitingExecution: true,
	}, Classify(summary, nil, "1", nil))
}

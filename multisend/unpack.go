package multisend

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/smartcontractkit/safe-txdetails/gateway"
)

const multiSendABI = `[{"inputs":[{"internalType":"bytes","name":"transactions","type":"bytes"}],"name":"multiSend","outputs":[],"stateMutability":"payable","type":"function"}]`

// Each packed transaction is operation (1) | to (20) | value (32) | data length (32) | data.
const packedHeaderLen = 1 + common.AddressLength + 32 + 32

var parsedABI = mustParseABI(multiSendABI)

var ErrNotMultiSend = errors.New("transaction is not a multiSend call")

// Transaction is one call of a MultiSend batch.
type Transaction struct {
	Operation   gateway.Operation    `json:"operation"`
	To          common.Address       `json:"to"`
	Value       *big.Int             `json:"value"`
	Data        hexutil.Bytes        `json:"data"`
	DataDecoded *gateway.DataDecoded `json:"dataDecoded,omitempty"`
}

func mustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(fmt.Sprintf("parsing multiSend abi: %v", err))
	}

	return parsed
}

// Breakdown returns the calls bundled in a multiSend transaction. The gateway's decoded
// view is preferred; otherwise the raw transactions bytes or the calldata are unpacked.
func Breakdown(txData *gateway.TxData) ([]Transaction, error) {
	if txData == nil {
		return nil, ErrNotMultiSend
	}

	if decoded := txData.DataDecoded; decoded != nil {
		if decoded.Method != gateway.MethodMultiSend {
			return nil, ErrNotMultiSend
		}
		if len(decoded.Parameters) > 0 {
			param := decoded.Parameters[0]
			if len(bytes.TrimSpace(param.ValueDecoded)) > 0 && string(param.ValueDecoded) != "null" {
				return fromValueDecoded(param.ValueDecoded)
			}
			var packed string
			if err := json.Unmarshal(param.Value, &packed); err == nil && packed != "" {
				raw, err := hexutil.Decode(packed)
				if err != nil {
					return nil, fmt.Errorf("decoding transactions parameter: %w", err)
				}

				return UnpackTransactions(raw)
			}
		}
	}

	if txData.HexData == nil {
		return nil, ErrNotMultiSend
	}
	calldata, err := hexutil.Decode(*txData.HexData)
	if err != nil {
		return nil, fmt.Errorf("decoding calldata: %w", err)
	}

	return UnpackCalldata(calldata)
}

// UnpackCalldata unpacks multiSend(bytes) calldata.
func UnpackCalldata(calldata []byte) ([]Transaction, error) {
	if len(calldata) < 4 {
		return nil, fmt.Errorf("%w: calldata too short", ErrNotMultiSend)
	}
	method, err := parsedABI.MethodById(calldata[:4])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMultiSend, err)
	}

	args, err := method.Inputs.Unpack(calldata[4:])
	if err != nil {
		return nil, fmt.Errorf("unpacking multiSend arguments: %w", err)
	}
	if len(args) != 1 {
		return nil, fmt.Errorf("unpacking multiSend arguments: expected 1 argument, got %d", len(args))
	}
	packed, ok := args[0].([]byte)
	if !ok {
		return nil, fmt.Errorf("unpacking multiSend arguments: unexpected type %T", args[0])
	}

	return UnpackTransactions(packed)
}

// UnpackTransactions splits the packed transactions argument of multiSend.
func UnpackTransactions(packed []byte) ([]Transaction, error) {
	var txs []Transaction
	for offset := 0; offset < len(packed); {
		if len(packed)-offset < packedHeaderLen {
			return nil, fmt.Errorf("transaction %d: truncated header at offset %d", len(txs), offset)
		}

		op := gateway.Operation(packed[offset])
		offset++
		to := common.BytesToAddress(packed[offset : offset+common.AddressLength])
		offset += common.AddressLength
		value := new(big.Int).SetBytes(packed[offset : offset+32])
		offset += 32
		dataLen := new(big.Int).SetBytes(packed[offset : offset+32])
		offset += 32

		if !dataLen.IsInt64() || dataLen.Int64() > int64(len(packed)-offset) {
			return nil, fmt.Errorf("transaction %d: data length %s exceeds remaining %d bytes", len(txs), dataLen, len(packed)-offset)
		}
		n := int(dataLen.Int64())
		data := append([]byte(nil), packed[offset:offset+n]...)
		offset += n

		txs = append(txs, Transaction{Operation: op, To: to, Value: value, Data: data})
	}

	return txs, nil
}

type decodedTransaction struct {
	Operation   gateway.Operation    `json:"operation"`
	To          string               `json:"to"`
	Value       string               `json:"value"`
	Data        *string              `json:"data"`
	DataDecoded *gateway.DataDecoded `json:"dataDecoded"`
}

func fromValueDecoded(raw json.RawMessage) ([]Transaction, error) {
	var decoded []decodedTransaction
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decoding valueDecoded: %w", err)
	}

	txs := make([]Transaction, 0, len(decoded))
	for i, d := range decoded {
		if !common.IsHexAddress(d.To) {
			return nil, fmt.Errorf("transaction %d: invalid to address %q", i, d.To)
		}
		value := new(big.Int)
		if d.Value != "" {
			if _, ok := value.SetString(d.Value, 10); !ok {
				return nil, fmt.Errorf("transaction %d: invalid value %q", i, d.Value)
			}
		}
		var data []byte
		if d.Data != nil && *d.Data != "" {
			var err error
			if data, err = hexutil.Decode(*d.Data); err != nil {
				return nil, fmt.Errorf("transaction %d: invalid data: %w", i, err)
			}
		}

		txs = append(txs, Transaction{
			Operation:   d.Operation,
			To:          common.HexToAddress(d.To),
			Value:       value,
			Data:        data,
			DataDecoded: d.DataDecoded,
		})
	}

	return txs, nil
}

package ethereum

import (
	"context"
	"errors"
	"math/big"
	"testing"

	goeth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const token = "0x5FbDB2315678afecb367f032d93F642f64180aa3"

type fakeBackend struct {
	receipt    *types.Receipt
	receiptErr error
	outputs    map[string]*big.Int // by method name
	calls      []goeth.CallMsg
}

func (f *fakeBackend) TransactionReceipt(context.Context, common.Hash) (*types.Receipt, error) {
	return f.receipt, f.receiptErr
}

func (f *fakeBackend) BlockNumber(context.Context) (uint64, error) { return 1234, nil }

func (f *fakeBackend) CallContract(_ context.Context, msg goeth.CallMsg, _ *big.Int) ([]byte, error) {
	f.calls = append(f.calls, msg)
	c, _ := newClient(f, token)
	m, err := c.abi.MethodById(msg.Data[:4])
	if err != nil {
		return nil, err
	}
	return m.Outputs.Pack(f.outputs[m.Name])
}

func TestClient_TransactionReceipt(t *testing.T) {
	tests := []struct {
		name        string
		backend     *fakeBackend
		wantNil     bool
		wantSuccess bool
		wantErr     bool
	}{
		{"not mined", &fakeBackend{receiptErr: goeth.NotFound}, true, false, false},
		{"rpc failure", &fakeBackend{receiptErr: errors.New("connection refused")}, true, false, true},
		{"success", &fakeBackend{receipt: &types.Receipt{Status: types.ReceiptStatusSuccessful, BlockNumber: big.NewInt(77), GasUsed: 21000}}, false, true, false},
		{"reverted", &fakeBackend{receipt: &types.Receipt{Status: types.ReceiptStatusFailed, BlockNumber: big.NewInt(78)}}, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newClient(tt.backend, token)
			if err != nil {
				t.Fatal(err)
			}
			r, err := c.TransactionReceipt(context.Background(), "0x01")
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v", err)
			}
			if (r == nil) != tt.wantNil {
				t.Fatalf("receipt = %+v", r)
			}
			if r != nil && r.Success != tt.wantSuccess {
				t.Fatalf("success = %v", r.Success)
			}
		})
	}
}

func TestClient_TokenCalls(t *testing.T) {
	fb := &fakeBackend{outputs: map[string]*big.Int{
		"balanceOf":   big.NewInt(500),
		"totalSupply": big.NewInt(1_000_000),
		"totalBurned": big.NewInt(42),
	}}
	c, err := newClient(fb, token)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()

	bal, err := c.BalanceOf(ctx, "0x00000000000000000000000000000000000000aa")
	if err != nil || bal.Int64() != 500 {
		t.Fatalf("BalanceOf = %v, %v", bal, err)
	}
	if *fb.calls[0].To != common.HexToAddress(token) {
		t.Fatalf("call sent to %s", fb.calls[0].To.Hex())
	}
	if s, err := c.TotalSupply(ctx); err != nil || s.Int64() != 1_000_000 {
		t.Fatalf("TotalSupply = %v, %v", s, err)
	}
	if b, err := c.TotalBurned(ctx); err != nil || b.Int64() != 42 {
		t.Fatalf("TotalBurned = %v, %v", b, err)
	}
	if _, err := c.BalanceOf(ctx, "not-an-address"); err == nil {
		t.Fatalf("invalid address should error")
	}
}

func TestNewClient_RejectsBadTokenAddress(t *testing.T) {
	if _, err := newClient(&fakeBackend{}, "0x123"); err == nil {
		t.Fatalf("expected error")
	}
}

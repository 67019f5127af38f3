package ethereum

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/IykeSol/iykesol-crypto-bank/internal/domain/chain"

	goeth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
)

// Only the read methods the ledger needs.
const tokenABI = `[
 {"constant":true,"inputs":[{"name":"account","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
 {"constant":true,"inputs":[],"name":"totalSupply","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"},
 {"constant":true,"inputs":[],"name":"totalBurned","outputs":[{"name":"","type":"uint256"}],"stateMutability":"view","type":"function"}
]`

var _ chain.Reader = (*Client)(nil)

// backend is the part of *ethclient.Client the reader uses.
type backend interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	CallContract(ctx context.Context, msg goeth.CallMsg, blockNumber *big.Int) ([]byte, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

type Client struct {
	backend backend
	token   common.Address
	abi     abi.ABI
	close   func()
}

// Dial connects to an RPC endpoint. token is the ERC-20 contract address.
func Dial(ctx context.Context, rpcURL, token string) (*Client, error) {
	ec, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}
	c, err := newClient(ec, token)
	if err != nil {
		ec.Close()
		return nil, err
	}
	c.close = ec.Close
	return c, nil
}

func newClient(b backend, token string) (*Client, error) {
	if token != "" && !common.IsHexAddress(token) {
		return nil, fmt.Errorf("invalid token contract address %q", token)
	}
	parsed, err := abi.JSON(strings.NewReader(tokenABI))
	if err != nil {
		return nil, fmt.Errorf("parse token abi: %w", err)
	}
	return &Client{backend: b, token: common.HexToAddress(token), abi: parsed}, nil
}

func (c *Client) Close() {
	if c.close != nil {
		c.close()
	}
}

func (c *Client) TransactionReceipt(ctx context.Context, txHash string) (*chain.Receipt, error) {
	r, err := c.backend.TransactionReceipt(ctx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, goeth.NotFound) {
			return nil, nil
		}
		return nil, err
	}
	out := &chain.Receipt{
		TxHash:  r.TxHash.Hex(),
		Success: r.Status == types.ReceiptStatusSuccessful,
		GasUsed: r.GasUsed,
	}
	if r.BlockNumber != nil {
		out.BlockNumber = r.BlockNumber.Uint64()
	}
	return out, nil
}

func (c *Client) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	if !common.IsHexAddress(address) {
		return nil, fmt.Errorf("invalid address %q", address)
	}
	return c.callUint(ctx, "balanceOf", common.HexToAddress(address))
}

func (c *Client) TotalSupply(ctx context.Context) (*big.Int, error) {
	return c.callUint(ctx, "totalSupply")
}

func (c *Client) TotalBurned(ctx context.Context) (*big.Int, error) {
	return c.callUint(ctx, "totalBurned")
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	return c.backend.BlockNumber(ctx)
}

func (c *Client) callUint(ctx context.Context, method string, args ...any) (*big.Int, error) {
	data, err := c.abi.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("pack %s: %w", method, err)
	}
	raw, err := c.backend.CallContract(ctx, goeth.CallMsg{To: &c.token, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	vals, err := c.abi.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %w", method, err)
	}
	if len(vals) != 1 {
		return nil, fmt.Errorf("unpack %s: want 1 value, got %d", method, len(vals))
	}
	v, ok := vals[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unpack %s: unexpected type %T", method, vals[0])
	}
	return v, nil
}

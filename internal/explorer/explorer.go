// Package explorer reads account history from Etherscan-compatible block explorers.
package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
)

// Query defaults applied when a field is left empty.
const (
	DefaultPage       = 1
	DefaultOffset     = 10
	DefaultStartBlock = 0
	DefaultEndBlock   = 99999999
	DefaultSort       = "desc"
	DefaultTimeout    = 10 * time.Second
)

// ErrUnsupportedNetwork is returned for chains without a configured explorer.
var ErrUnsupportedNetwork = errors.New("unsupported network")

// Network points at one explorer API. KeyName selects the API key from the
// key map passed to NewClient.
type Network struct {
	URL     string
	KeyName string
}

// DefaultNetworks maps chain IDs to their explorer APIs.
func DefaultNetworks() map[uint64]Network {
	return map[uint64]Network{
		10143:    {URL: "https://api.socialscan.io/monad-testnet/v1/developer/api", KeyName: "socialscan"},
		1:        {URL: "https://api.etherscan.io/api", KeyName: "etherscan"},
		11155111: {URL: "https://api-sepolia.etherscan.io/api", KeyName: "etherscan"},
	}
}

// Query selects a page of account history. A non-empty ContractAddress
// switches from normal transactions to token transfers.
type Query struct {
	Page            int
	Offset          int
	StartBlock      uint64
	EndBlock        uint64
	Sort            string
	ContractAddress string
}

func (q Query) withDefaults() Query {
	if q.Page <= 0 {
		q.Page = DefaultPage
	}
	if q.Offset <= 0 {
		q.Offset = DefaultOffset
	}
	if q.EndBlock == 0 {
		q.EndBlock = DefaultEndBlock
	}
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	return q
}

// Transaction is one history entry as served to clients.
type Transaction struct {
	Hash          string `json:"hash"`
	From          string `json:"from"`
	To            string `json:"to"`
	Value         string `json:"value"`
	Timestamp     int64  `json:"timestamp"`
	Status        string `json:"status"`
	GasPrice      string `json:"gasPrice"`
	GasUsed       string `json:"gasUsed"`
	Confirmations string `json:"confirmations"`
	TokenSymbol   string `json:"tokenSymbol,omitempty"`
	TokenName     string `json:"tokenName,omitempty"`
	TokenDecimal  string `json:"tokenDecimal,omitempty"`
}

// Page is a page of transactions plus pagination hints.
type Page struct {
	Transactions []Transaction `json:"transactions"`
	Page         int           `json:"page"`
	Offset       int           `json:"offset"`
	Total        int           `json:"total"`
	HasMore      bool          `json:"hasMore"`
}

type apiResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

type apiTx struct {
	Hash          string `json:"hash"`
	From          string `json:"from"`
	To            string `json:"to"`
	Value         string `json:"value"`
	TimeStamp     string `json:"timeStamp"`
	IsError       string `json:"isError"`
	GasPrice      string `json:"gasPrice"`
	GasUsed       string `json:"gasUsed"`
	Confirmations string `json:"confirmations"`
	TokenSymbol   string `json:"tokenSymbol"`
	TokenName     string `json:"tokenName"`
	TokenDecimal  string `json:"tokenDecimal"`
}

// Client queries explorer APIs.
type Client struct {
	networks map[uint64]Network
	keys     map[string]string
	client   *http.Client
	logger   *zap.Logger
}

// Option configures Client.
type Option func(*Client)

// WithTimeout sets the HTTP timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.client.Timeout = d
		}
	}
}

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

// WithNetworks replaces the chain ID to explorer mapping.
func WithNetworks(networks map[uint64]Network) Option {
	return func(c *Client) {
		c.networks = networks
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client using keys to look up each network's API key.
func NewClient(keys map[string]string, opts ...Option) *Client {
	if keys == nil {
		keys = map[string]string{}
	}
	c := &Client{
		networks: DefaultNetworks(),
		keys:     keys,
		client:   &http.Client{Timeout: DefaultTimeout},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Supports reports whether chainID has an explorer configured.
func (c *Client) Supports(chainID uint64) bool {
	_, ok := c.networks[chainID]
	return ok
}

// Transactions fetches a page of history for address on chainID.
func (c *Client) Transactions(ctx context.Context, chainID uint64, address string, q Query) (Page, error) {
	network, ok := c.networks[chainID]
	if !ok {
		return Page{}, fmt.Errorf("%w: %d", ErrUnsupportedNetwork, chainID)
	}
	if address == "" {
		return Page{}, errors.New("address is required")
	}
	q = q.withDefaults()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(network, address, q), nil)
	if err != nil {
		return Page{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("explorer request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return Page{}, fmt.Errorf("explorer status %d: %s", resp.StatusCode, string(body))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Page{}, fmt.Errorf("decode response: %w", err)
	}
	if payload.Status != "1" {
		msg := payload.Message
		if msg == "" {
			msg = "failed to fetch transaction history"
		}
		return Page{}, errors.New(msg)
	}

	var raw []apiTx
	if err := json.Unmarshal(payload.Result, &raw); err != nil {
		return Page{}, fmt.Errorf("decode result: %w", err)
	}

	tokenTransfers := q.ContractAddress != ""
	txs := make([]Transaction, 0, len(raw))
	for _, tx := range raw {
		txs = append(txs, toTransaction(tx, tokenTransfers))
	}

	c.logger.Debug("explorer page fetched",
		zap.Uint64("chain_id", chainID),
		zap.String("address", address),
		zap.Int("count", len(txs)),
	)

	return Page{
		Transactions: txs,
		Page:         q.Page,
		Offset:       q.Offset,
		Total:        len(txs),
		HasMore:      len(txs) == q.Offset,
	}, nil
}

func (c *Client) buildURL(network Network, address string, q Query) string {
	action := "txlist"
	if q.ContractAddress != "" {
		action = "tokentx"
	}
	params := url.Values{}
	params.Set("module", "account")
	params.Set("action", action)
	params.Set("address", address)
	if q.ContractAddress != "" {
		params.Set("contractaddress", q.ContractAddress)
	}
	params.Set("page", strconv.Itoa(q.Page))
	params.Set("offset", strconv.Itoa(q.Offset))
	params.Set("startblock", strconv.FormatUint(q.StartBlock, 10))
	params.Set("endblock", strconv.FormatUint(q.EndBlock, 10))
	params.Set("sort", q.Sort)
	params.Set("apikey", c.keys[network.KeyName])
	return network.URL + "?" + params.Encode()
}

func toTransaction(tx apiTx, tokenTransfer bool) Transaction {
	ts, _ := strconv.ParseInt(tx.TimeStamp, 10, 64)
	// tokentx rows carry no isError field.
	status := "failed"
	if tx.IsError == "0" || (tokenTransfer && tx.IsError == "") {
		status = "success"
	}
	out := Transaction{
		Hash:          tx.Hash,
		From:          tx.From,
		To:            tx.To,
		Value:         tx.Value,
		Timestamp:     ts,
		Status:        status,
		GasPrice:      tx.GasPrice,
		GasUsed:       tx.GasUsed,
		Confirmations: tx.Confirmations,
	}
	if tokenTransfer {
		out.TokenSymbol = tx.TokenSymbol
		out.TokenName = tx.TokenName
		out.TokenDecimal = tx.TokenDecimal
	}
	return out
}

package explorer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(map[string]string{"socialscan": "key-1"},
		WithNetworks(map[uint64]Network{10143: {URL: server.URL + "/api", KeyName: "socialscan"}}),
	)
}

func TestTransactionsDefaults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/api", r.URL.Path)
		assert.Equal(t, "account", q.Get("module"))
		assert.Equal(t, "txlist", q.Get("action"))
		assert.Equal(t, "0xabc", q.Get("address"))
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "10", q.Get("offset"))
		assert.Equal(t, "0", q.Get("startblock"))
		assert.Equal(t, "99999999", q.Get("endblock"))
		assert.Equal(t, "desc", q.Get("sort"))
		assert.Equal(t, "key-1", q.Get("apikey"))
		assert.Empty(t, q.Get("contractaddress"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "1",
			"message": "OK",
			"result": []map[string]string{
				{"hash": "0x1", "from": "0xa", "to": "0xb", "value": "100", "timeStamp": "1700000000", "isError": "0", "gasPrice": "1", "gasUsed": "21000", "confirmations": "5"},
				{"hash": "0x2", "from": "0xa", "to": "0xc", "value": "0", "timeStamp": "1700000100", "isError": "1"},
			},
		})
	})

	page, err := client.Transactions(context.Background(), 10143, "0xabc", Query{})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 2)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 10, page.Offset)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasMore)

	first := page.Transactions[0]
	assert.Equal(t, "0x1", first.Hash)
	assert.Equal(t, int64(1700000000), first.Timestamp)
	assert.Equal(t, "success", first.Status)
	assert.Equal(t, "21000", first.GasUsed)
	assert.Empty(t, first.TokenSymbol)
	assert.Equal(t, "failed", page.Transactions[1].Status)
}

func TestTransactionsTokenTransfers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "tokentx", q.Get("action"))
		assert.Equal(t, "0xtoken", q.Get("contractaddress"))
		assert.Equal(t, "2", q.Get("offset"))
		assert.Equal(t, "asc", q.Get("sort"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "1",
			"result": []map[string]string{
				{"hash": "0x1", "timeStamp": "1", "tokenSymbol": "MON", "tokenName": "Monad", "tokenDecimal": "18"},
				{"hash": "0x2", "timeStamp": "2", "tokenSymbol": "MON", "tokenName": "Monad", "tokenDecimal": "18"},
			},
		})
	})

	page, err := client.Transactions(context.Background(), 10143, "0xabc", Query{Offset: 2, Sort: "asc", ContractAddress: "0xtoken"})
	require.NoError(t, err)
	require.Len(t, page.Transactions, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, "MON", page.Transactions[0].TokenSymbol)
	assert.Equal(t, "18", page.Transactions[1].TokenDecimal)
	assert.Equal(t, "success", page.Transactions[0].Status)
}

func TestTransactionsStatusNotOK(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "0",
			"message": "No transactions found",
			"result":  []interface{}{},
		})
	})

	_, err := client.Transactions(context.Background(), 10143, "0xabc", Query{})
	require.Error(t, err)
	assert.Equal(t, "No transactions found", err.Error())
}

func TestTransactionsHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := client.Transactions(context.Background(), 10143, "0xabc", Query{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestTransactionsUnsupportedNetwork(t *testing.T) {
	client := NewClient(nil)
	assert.True(t, client.Supports(1))
	assert.True(t, client.Supports(11155111))

	_, err := client.Transactions(context.Background(), 56, "0xabc", Query{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedNetwork))
}

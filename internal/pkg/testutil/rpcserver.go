// Package testutil holds helpers shared by tests across packages.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rpcRequest struct {
	ID     jsoniter.RawMessage   `json:"id"`
	Method string                `json:"method"`
	Params []jsoniter.RawMessage `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      jsoniter.RawMessage `json:"id"`
	Result  any                 `json:"result,omitempty"`
	Error   *rpcError           `json:"error,omitempty"`
}

// RPCServer is a minimal Ethereum JSON-RPC node over HTTP.
// Results are canned per method; unknown methods answer -32601.
type RPCServer struct {
	*httptest.Server

	mu      sync.Mutex
	results map[string]any
	calls   map[string]int
	rawTxs  []string
}

// NewRPCServer starts a server answering as chain 3 with block 16 and one ether balances.
func NewRPCServer(t testing.TB) *RPCServer {
	t.Helper()
	s := &RPCServer{
		results: map[string]any{
			"eth_chainId":     "0x3",
			"eth_blockNumber": "0x10",
			"eth_getBalance":  "0xde0b6b3a7640000",
			"eth_gasPrice":    "0x3b9aca00",
			"eth_accounts":    []string{},
		},
		calls: make(map[string]int),
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	t.Cleanup(s.Close)
	return s
}

// Set replaces the canned result for method.
func (s *RPCServer) Set(method string, result any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[method] = result
}

// Remove drops the canned result so method answers with an error.
func (s *RPCServer) Remove(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.results, method)
}

// Calls returns how many times method was requested.
func (s *RPCServer) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

// RawTransactions returns the payloads received by eth_sendRawTransaction.
func (s *RPCServer) RawTransactions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.rawTxs...)
}

func (s *RPCServer) handle(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp := rpcResponse{JSONRPC: "2.0", ID: req.ID}

	s.mu.Lock()
	s.calls[req.Method]++
	if req.Method == "eth_sendRawTransaction" && len(req.Params) > 0 {
		var raw string
		_ = json.Unmarshal(req.Params[0], &raw)
		s.rawTxs = append(s.rawTxs, raw)
		resp.Result = "0x0000000000000000000000000000000000000000000000000000000000000000"
	} else if result, ok := s.results[req.Method]; ok {
		resp.Result = result
	} else {
		resp.Error = &rpcError{Code: -32601, Message: "the method " + req.Method + " does not exist"}
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}

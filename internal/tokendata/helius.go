package tokendata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"tokenbrain/internal/domain"
	"tokenbrain/internal/observability"
)

// Default configuration values.
const (
	DefaultHeliusEndpoint = "https://mainnet.helius-rpc.com"
	DefaultTimeout        = 10 * time.Second
	DefaultMaxRetries     = 1
	DefaultRetryDelay     = 500 * time.Millisecond
	DefaultMaxDelay       = 5 * time.Second
	DefaultBackoffMult    = 2.0
)

// Top-10 share above which the holder base is considered centralized.
const centralizedTop10Pct = 60.0

// HeliusProvider implements Provider against the Helius DAS and RPC APIs:
// getAsset for metadata and authorities, getTokenLargestAccounts for holder
// concentration. Helius does not expose creation time or liquidity, so age
// and liquidity are always left unknown.
type HeliusProvider struct {
	endpoint    string
	apiKey      string
	client      *http.Client
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
	requestID   atomic.Uint64
}

// HeliusOption configures HeliusProvider.
type HeliusOption func(*HeliusProvider)

// WithEndpoint overrides the RPC endpoint (tests point this at a local server).
func WithEndpoint(endpoint string) HeliusOption {
	return func(p *HeliusProvider) {
		p.endpoint = endpoint
	}
}

// WithTimeout sets HTTP client timeout.
func WithTimeout(d time.Duration) HeliusOption {
	return func(p *HeliusProvider) {
		p.client.Timeout = d
	}
}

// WithMaxRetries sets maximum retry attempts.
func WithMaxRetries(n int) HeliusOption {
	return func(p *HeliusProvider) {
		p.maxRetries = n
	}
}

// WithRetryDelay sets initial retry delay.
func WithRetryDelay(d time.Duration) HeliusOption {
	return func(p *HeliusProvider) {
		p.retryDelay = d
	}
}

// WithHTTPClient sets custom http.Client.
func WithHTTPClient(client *http.Client) HeliusOption {
	return func(p *HeliusProvider) {
		p.client = client
	}
}

// NewHeliusProvider creates a provider for the given API key.
func NewHeliusProvider(apiKey string, opts ...HeliusOption) *HeliusProvider {
	p := &HeliusProvider{
		endpoint:    DefaultHeliusEndpoint,
		apiKey:      apiKey,
		client:      &http.Client{Timeout: DefaultTimeout},
		maxRetries:  DefaultMaxRetries,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ Provider = (*HeliusProvider)(nil)

// TokenData fetches asset metadata and the largest holders in parallel and
// normalizes them. Either call may fail on its own; only both failing is an
// error, and the surviving half still yields a partially known token.
func (p *HeliusProvider) TokenData(ctx context.Context, address string) (*domain.Token, error) {
	var (
		wg         sync.WaitGroup
		asset      *heliusAsset
		holders    []heliusTokenAccount
		assetErr   error
		holdersErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		asset, assetErr = p.fetchAsset(ctx, address)
	}()
	go func() {
		defer wg.Done()
		holders, holdersErr = p.fetchLargestAccounts(ctx, address)
	}()
	wg.Wait()

	if assetErr != nil {
		log.Printf("[helius] getAsset failed for %s: %v", shortAddr(address), assetErr)
	}
	if holdersErr != nil {
		log.Printf("[helius] getTokenLargestAccounts failed for %s: %v", shortAddr(address), holdersErr)
	}
	if assetErr != nil && holdersErr != nil {
		if isNotFoundRPC(assetErr) || isNotFoundRPC(holdersErr) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, shortAddr(address))
		}
		return nil, fmt.Errorf("%w: both helius calls failed: %v", ErrUnavailable, assetErr)
	}

	return buildToken(address, asset, holders), nil
}

// heliusAsset is the subset of the getAsset response we consume.
type heliusAsset struct {
	Content struct {
		Metadata struct {
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
		} `json:"metadata"`
	} `json:"content"`
	TokenInfo struct {
		MintAuthority   string `json:"mint_authority"`
		FreezeAuthority string `json:"freeze_authority"`
		Supply          int64  `json:"supply"`
		Decimals        int    `json:"decimals"`
	} `json:"token_info"`
	Mutable *bool `json:"mutable"`
}

// heliusTokenAccount is one entry of the getTokenLargestAccounts value list.
type heliusTokenAccount struct {
	Address  string  `json:"address"`
	UIAmount float64 `json:"uiAmount"`
}

func (p *HeliusProvider) fetchAsset(ctx context.Context, address string) (*heliusAsset, error) {
	params := map[string]any{
		"id":      address,
		"options": map[string]any{"showFungible": true},
	}

	var asset heliusAsset
	if err := p.call(ctx, "getAsset", params, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (p *HeliusProvider) fetchLargestAccounts(ctx context.Context, address string) ([]heliusTokenAccount, error) {
	params := []any{address}

	var result struct {
		Value []heliusTokenAccount `json:"value"`
	}
	if err := p.call(ctx, "getTokenLargestAccounts", params, &result); err != nil {
		return nil, err
	}
	return result.Value, nil
}

// buildToken normalizes the two responses, leaving unobserved fields
// unknown. A missing authority field on a successful getAsset means the
// authority is confirmed absent, not unknown.
func buildToken(address string, asset *heliusAsset, holders []heliusTokenAccount) *domain.Token {
	t := &domain.Token{
		Chain:   domain.ChainSolana,
		Address: address,
		Holders: len(holders),
	}

	var (
		supply   int64
		decimals int
	)
	if asset != nil {
		if name := asset.Content.Metadata.Name; name != "" {
			t.Name = &name
		}
		if symbol := asset.Content.Metadata.Symbol; symbol != "" {
			t.Symbol = &symbol
		}
		t.MintAuthority = domain.FlagOf(asset.TokenInfo.MintAuthority != "")
		t.FreezeAuthority = domain.FlagOf(asset.TokenInfo.FreezeAuthority != "")
		if asset.Mutable != nil {
			t.MetadataMutable = domain.FlagOf(*asset.Mutable)
		}
		supply = asset.TokenInfo.Supply
		decimals = asset.TokenInfo.Decimals
	}

	if len(holders) > 0 && supply > 0 {
		applyConcentration(t, holders, supply, decimals)
	}

	return t
}

// applyConcentration computes holder shares against the UI-unit supply.
// Tiers are filled only when enough holders were returned, except top10,
// which falls back to the whole list when fewer than ten exist.
func applyConcentration(t *domain.Token, holders []heliusTokenAccount, supply int64, decimals int) {
	uiSupply := float64(supply)
	for i := 0; i < decimals; i++ {
		uiSupply /= 10
	}
	if uiSupply <= 0 {
		return
	}

	sorted := make([]heliusTokenAccount, len(holders))
	copy(sorted, holders)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].UIAmount > sorted[j].UIAmount
	})

	sumPct := func(n int) float64 {
		if n > len(sorted) {
			n = len(sorted)
		}
		total := 0.0
		for _, h := range sorted[:n] {
			total += h.UIAmount
		}
		return round2(total / uiSupply * 100)
	}

	top1 := sumPct(1)
	t.Top1HolderPct = &top1

	if len(sorted) >= 2 {
		top2 := round2(sorted[1].UIAmount / uiSupply * 100)
		t.Top2HolderPct = &top2
	}
	if len(sorted) >= 5 {
		top5 := sumPct(5)
		t.Top5HoldersPct = &top5
	}

	top10 := sumPct(10)
	t.Top10HoldersPct = &top10

	t.Rugpull.CentralizedHolders = top10 > centralizedTop10Pct
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

func shortAddr(address string) string {
	if len(address) <= 8 {
		return address
	}
	return address[:8]
}

// rpcRequest represents a JSON-RPC 2.0 request. Params is positional for
// plain RPC methods and an object for DAS methods.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// rpcResponse represents a JSON-RPC 2.0 response.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

// rpcError represents a JSON-RPC 2.0 error.
type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *rpcError) Error() string {
	return fmt.Sprintf("RPC error %d: %s", e.Code, e.Message)
}

// isNotFoundRPC reports whether an RPC error says the mint does not exist.
// Helius phrases this as "Asset Not Found" on getAsset and "Invalid param:
// could not find account" on getTokenLargestAccounts.
func isNotFoundRPC(err error) bool {
	var rpcErr *rpcError
	if !errors.As(err, &rpcErr) {
		return false
	}
	msg := strings.ToLower(rpcErr.Message)
	return strings.Contains(msg, "not found") || strings.Contains(msg, "could not find")
}

// call performs a JSON-RPC call with retries and exponential backoff.
func (p *HeliusProvider) call(ctx context.Context, method string, params any, result any) (err error) {
	start := time.Now()
	defer func() {
		observability.RecordProviderCall(method, time.Since(start).Seconds())
		if err != nil {
			observability.RecordProviderError(method)
		}
	}()

	reqBody := rpcRequest{
		JSONRPC: "2.0",
		ID:      p.requestID.Add(1),
		Method:  method,
		Params:  params,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := p.endpoint
	if p.apiKey != "" {
		url += "/?api-key=" + p.apiKey
	}

	delay := p.retryDelay
	var lastErr error

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * p.backoffMult)
			if delay > p.maxDelay {
				delay = p.maxDelay
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := p.client.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("http request: %w", err)
			continue
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			lastErr = fmt.Errorf("rate limited (429)")
			continue
		}

		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(respBody))
			continue
		}

		var rpcResp rpcResponse
		if err := json.Unmarshal(respBody, &rpcResp); err != nil {
			lastErr = fmt.Errorf("unmarshal response: %w", err)
			continue
		}

		if rpcResp.Error != nil {
			// RPC errors are not retried
			return rpcResp.Error
		}

		if result != nil && rpcResp.Result != nil {
			if err := json.Unmarshal(rpcResp.Result, result); err != nil {
				return fmt.Errorf("unmarshal result: %w", err)
			}
		}

		return nil
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

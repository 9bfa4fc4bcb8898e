package integration

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ymoney/networth-backend/internal/model"
)

const maxBaseURL = "https://max-api.maicoin.com"

// MaxProvider fetches spot wallet balances from the MAX exchange REST API.
//
// Requests are authenticated with the exchange's payload scheme: a base64
// JSON document carrying the nonce and request path, signed with HMAC-SHA256
// under the API secret.
type MaxProvider struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
}

// NewMaxProvider creates a MAX exchange balance provider. Every request is
// bounded by the given timeout in addition to any deadline on the caller's
// context.
func NewMaxProvider(timeout time.Duration) *MaxProvider {
	return &MaxProvider{
		httpClient: &http.Client{},
		baseURL:    maxBaseURL,
		timeout:    timeout,
	}
}

// Name implements BalanceProvider.
func (p *MaxProvider) Name() string {
	return "max"
}

// maxAccount is one spot wallet entry in the accounts response. Balances
// arrive as decimal strings.
type maxAccount struct {
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}

// FetchBalances implements BalanceProvider. Returns every spot holding with
// a positive balance, tickers uppercased.
func (p *MaxProvider) FetchBalances(ctx context.Context, creds Credentials) ([]model.ProviderBalance, error) {
	const path = "/api/v3/wallet/spot/accounts"

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	payload, signature, err := signMaxRequest(path, creds.APISecret)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-MAX-ACCESSKEY", creds.APIKey)
	req.Header.Set("X-MAX-PAYLOAD", payload)
	req.Header.Set("X-MAX-SIGNATURE", signature)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("max api returned %d: %s", resp.StatusCode, body)
	}

	var accounts []maxAccount
	if err := json.Unmarshal(body, &accounts); err != nil {
		return nil, fmt.Errorf("failed to parse max accounts response: %w", err)
	}

	balances := []model.ProviderBalance{}
	for _, account := range accounts {
		quantity, err := strconv.ParseFloat(account.Balance, 64)
		if err != nil || quantity <= 0 {
			continue
		}
		balances = append(balances, model.ProviderBalance{
			Ticker:   strings.ToUpper(account.Currency),
			Quantity: quantity,
		})
	}

	return balances, nil
}

// signMaxRequest builds the X-MAX-PAYLOAD and X-MAX-SIGNATURE header pair
// for one request: base64 of a JSON document with a millisecond nonce and
// the request path, and the hex HMAC-SHA256 of that payload.
func signMaxRequest(path, apiSecret string) (payload, signature string, err error) {
	doc, err := json.Marshal(map[string]any{
		"nonce": time.Now().UnixMilli(),
		"path":  path,
	})
	if err != nil {
		return "", "", err
	}

	payload = base64.StdEncoding.EncodeToString(doc)

	mac := hmac.New(sha256.New, []byte(apiSecret))
	mac.Write([]byte(payload))
	signature = hex.EncodeToString(mac.Sum(nil))

	return payload, signature, nil
}

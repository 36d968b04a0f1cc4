package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	walletdto "github.com/radieske/prediction-market-poc/internal/market-service/wallet/dto"
)

// Client fala com o wallet-service. As transferências são best-effort:
// o núcleo já aplicou a operação quando o débito/crédito acontece, então
// falha aqui é logada e não desfaz o trade.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(base string) *Client {
	return &Client{
		BaseURL: base,
		HTTP:    &http.Client{Timeout: 2 * time.Second},
	}
}

func (c *Client) Debit(ctx context.Context, userID, amount, externalRef string) (string, error) {
	return c.transfer(ctx, "/wallet/debit", userID, amount, externalRef)
}

func (c *Client) Credit(ctx context.Context, userID, amount, externalRef string) (string, error) {
	return c.transfer(ctx, "/wallet/credit", userID, amount, externalRef)
}

func (c *Client) transfer(ctx context.Context, path, userID, amount, externalRef string) (string, error) {
	body, _ := json.Marshal(walletdto.TransferRequest{UserID: userID, Amount: amount, ExternalRef: externalRef})
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res, err := c.HTTP.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode >= 300 {
		return "", fmt.Errorf("wallet %s http %d", path, res.StatusCode)
	}
	var out walletdto.TransferResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.TransferID, nil
}

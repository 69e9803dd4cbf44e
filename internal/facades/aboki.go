package facades

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/abokixyz/ramp-bot/internal/logger"
)

// ErrRampCall is returned for any transport error, timeout, or non-2xx
// response from the ramp API. Callers only branch on success/failure;
// raw transport errors never cross this boundary.
var ErrRampCall = errors.New("ramp api call failed")

// AbokiFacade is an HTTP client for the external ramp provider. It does
// not retry; retrying is a user-facing choice made by the workflow engine.
type AbokiFacade struct {
	baseURL string
	client  *http.Client
}

// NewAbokiFacade creates a facade for the given base URL. Every request
// is bounded by the timeout.
func NewAbokiFacade(baseURL string, timeout time.Duration) *AbokiFacade {
	return &AbokiFacade{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// OnrampOrder describes a created buy order.
type OnrampOrder struct {
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	SourceAmount   float64 `json:"sourceAmount"`
	SourceCurrency string  `json:"sourceCurrency"`
	TargetAmount   float64 `json:"targetAmount"`
	TargetCurrency string  `json:"targetCurrency"`
}

// OnrampPayment describes the payment leg of a buy order.
type OnrampPayment struct {
	PaymentReference string `json:"paymentReference"`
	CheckoutURL      string `json:"checkoutUrl"`
}

// OnrampResult is the full onramp order response.
type OnrampResult struct {
	Order            OnrampOrder   `json:"order"`
	Payment          OnrampPayment `json:"payment"`
	ExpiresInMinutes int           `json:"expiresInMinutes"`
}

// BankAccount carries payout account details for verification.
type BankAccount struct {
	AccountNumber string `json:"accountNumber"`
	BankName      string `json:"bankName"`
	AccountName   string `json:"accountName"`
	IsDefault     bool   `json:"isDefault"`
}

// Authenticate exchanges a wallet address for a bearer token.
func (f *AbokiFacade) Authenticate(ctx context.Context, walletAddress string) (string, error) {
	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}

	err := f.post(ctx, "/auth/direct-auth", "", map[string]any{
		"walletAddress": walletAddress,
	}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Data.Token == "" {
		logger.Log.Errorw("authentication response missing token", "wallet", walletAddress)
		return "", ErrRampCall
	}

	return resp.Data.Token, nil
}

// CreateOnrampOrder submits a buy order for the given fiat amount.
func (f *AbokiFacade) CreateOnrampOrder(ctx context.Context, token string, amount float64, recipientWallet string) (*OnrampResult, error) {
	var resp OnrampResult

	err := f.post(ctx, "/ramp/onramp", token, map[string]any{
		"amount":                 amount,
		"recipientWalletAddress": recipientWallet,
	}, &resp)
	if err != nil {
		return nil, err
	}

	return &resp, nil
}

// VerifyBankAccount asks the ramp provider to verify payout account
// details against its banking partners.
func (f *AbokiFacade) VerifyBankAccount(ctx context.Context, token string, account BankAccount) error {
	return f.post(ctx, "/auth/bank-accounts", token, account, nil)
}

// post sends a JSON POST and decodes the response into out (when out is
// non-nil). Any failure is normalized to ErrRampCall.
func (f *AbokiFacade) post(ctx context.Context, path, token string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		logger.Log.Errorw("ramp request marshal failed", "path", path, "error", err)
		return ErrRampCall
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		logger.Log.Errorw("ramp request build failed", "path", path, "error", err)
		return ErrRampCall
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		logger.Log.Errorw("ramp request failed", "path", path, "error", err)
		return ErrRampCall
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Log.Errorw("ramp request rejected", "path", path, "status", resp.StatusCode)
		return fmt.Errorf("%w: status %d", ErrRampCall, resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			logger.Log.Errorw("ramp response decode failed", "path", path, "error", err)
			return ErrRampCall
		}
	}

	return nil
}

package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/abokixyz/ramp-bot/internal/token"
)

// UserReader defines read operations for user profiles.
type UserReader interface {
	GetByUserID(ctx context.Context, userID int64) (*models.UserDB, error)
}

// UserWriter defines write operations for user profiles.
type UserWriter interface {
	Upsert(ctx context.Context, userID int64, username, wallet string) error
	UpdateToken(ctx context.Context, userID int64, authToken string) error
}

// WalletAuthenticator exchanges a wallet address for a ramp API token.
type WalletAuthenticator interface {
	Authenticate(ctx context.Context, walletAddress string) (string, error)
}

// BalanceReader reports asset balances for a wallet.
type BalanceReader interface {
	Balances(ctx context.Context, wallet string) (map[string]float64, error)
}

// WalletService provisions wallets and authenticates them with the ramp
// provider. Authentication is best-effort: a failure leaves the user
// without a token but never blocks the flow.
type WalletService struct {
	reader UserReader
	writer UserWriter
	auth   WalletAuthenticator
	oracle BalanceReader
}

// NewWalletService creates a new WalletService instance.
func NewWalletService(reader UserReader, writer UserWriter, auth WalletAuthenticator, oracle BalanceReader) *WalletService {
	return &WalletService{
		reader: reader,
		writer: writer,
		auth:   auth,
		oracle: oracle,
	}
}

// newWalletAddress generates a placeholder hex wallet address. Real key
// material is out of scope; custody stays with the ramp provider.
func newWalletAddress() string {
	buf := make([]byte, 20)
	rand.Read(buf)
	return "0x" + hex.EncodeToString(buf)
}

// EnsureWallet returns the user's profile, provisioning a wallet address
// on first use. The provisioned flag is true when an address was created
// by this call. A usable token is refreshed when missing or expired;
// authentication failures are logged and swallowed.
func (svc *WalletService) EnsureWallet(ctx context.Context, userID int64, username string) (user *models.UserDB, provisioned bool, err error) {
	user, err = svc.reader.GetByUserID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to load user", "user_id", userID, "err", err)
		return nil, false, err
	}

	if !user.HasWallet() {
		address := newWalletAddress()
		if err := svc.writer.Upsert(ctx, userID, username, address); err != nil {
			logger.Log.Errorw("failed to save wallet", "user_id", userID, "err", err)
			return nil, false, err
		}
		provisioned = true
	} else if err := svc.writer.Upsert(ctx, userID, username, ""); err != nil {
		logger.Log.Errorw("failed to refresh user", "user_id", userID, "err", err)
		return nil, false, err
	}

	user, err = svc.reader.GetByUserID(ctx, userID)
	if err != nil || user == nil {
		logger.Log.Errorw("failed to reload user", "user_id", userID, "err", err)
		return nil, provisioned, err
	}

	if !token.IsUsable(user.Token(), time.Now()) {
		// Fail-open: a user without a token degrades to the
		// unverified path instead of being blocked.
		authToken, authErr := svc.auth.Authenticate(ctx, user.Wallet.String)
		if authErr != nil {
			logger.Log.Warnw("wallet authentication failed, continuing without token",
				"user_id", userID, "err", authErr)
			return user, provisioned, nil
		}
		if err := svc.writer.UpdateToken(ctx, userID, authToken); err != nil {
			logger.Log.Warnw("failed to store auth token", "user_id", userID, "err", err)
			return user, provisioned, nil
		}
		user.AuthToken.String = authToken
		user.AuthToken.Valid = true
	}

	return user, provisioned, nil
}

// Balances returns the user's asset balances, provisioning a wallet
// first when needed.
func (svc *WalletService) Balances(ctx context.Context, userID int64, username string) (*models.UserDB, map[string]float64, error) {
	user, _, err := svc.EnsureWallet(ctx, userID, username)
	if err != nil {
		return nil, nil, err
	}

	balances, err := svc.oracle.Balances(ctx, user.Wallet.String)
	if err != nil {
		logger.Log.Errorw("failed to read balances", "user_id", userID, "err", err)
		return user, nil, err
	}

	return user, balances, nil
}

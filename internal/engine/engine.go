// Package engine implements the conversational transaction workflow: a
// finite-state machine, one session per user, that sequences validation,
// rate quoting, balance checks, bank verification, and ledger writes for
// the buy and sell flows. Transitions are looked up in a table keyed by
// the session state; each handler accepts exactly one input shape and
// re-prompts on anything else.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/abokixyz/ramp-bot/internal/facades"
	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/google/uuid"
)

// SessionStore persists in-flight conversation sessions.
type SessionStore interface {
	Get(ctx context.Context, userID int64) (*models.Session, error)
	Save(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, userID int64) error
}

// WalletProvisioner ensures the user has a wallet address, provisioning
// and authenticating one best-effort when missing.
type WalletProvisioner interface {
	EnsureWallet(ctx context.Context, userID int64, username string) (*models.UserDB, bool, error)
}

// QuoteProvider computes exchange quotes.
type QuoteProvider interface {
	Quote(ctx context.Context, amount float64, from, to string) models.Quote
}

// BalanceOracle reports the asset balance available to a wallet.
type BalanceOracle interface {
	BalanceOf(ctx context.Context, wallet, token string) (float64, error)
}

// RampClient talks to the external ramp provider.
type RampClient interface {
	CreateOnrampOrder(ctx context.Context, token string, amount float64, recipientWallet string) (*facades.OnrampResult, error)
	VerifyBankAccount(ctx context.Context, token string, account facades.BankAccount) error
}

// TransactionRecorder appends a completed transaction to the ledger.
type TransactionRecorder interface {
	Record(ctx context.Context, txn models.TransactionDB) error
}

type handlerFunc func(ctx context.Context, s *models.Session, ev Event) (Reply, error)

// Engine drives one user conversation at a time through the buy or sell
// flow. It holds no per-user state itself; everything lives in the
// Session passed through the store.
type Engine struct {
	sessions SessionStore
	wallets  WalletProvisioner
	quotes   QuoteProvider
	oracle   BalanceOracle
	ramp     RampClient
	ledger   TransactionRecorder

	settleDelay time.Duration
	handlers    map[models.State]handlerFunc
}

// New creates a workflow engine. settleDelay simulates settlement
// latency during Processing and may be zero.
func New(
	sessions SessionStore,
	wallets WalletProvisioner,
	quotes QuoteProvider,
	oracle BalanceOracle,
	ramp RampClient,
	ledger TransactionRecorder,
	settleDelay time.Duration,
) *Engine {
	e := &Engine{
		sessions:    sessions,
		wallets:     wallets,
		quotes:      quotes,
		oracle:      oracle,
		ramp:        ramp,
		ledger:      ledger,
		settleDelay: settleDelay,
	}

	e.handlers = map[models.State]handlerFunc{
		models.StateSelectAsset:          e.handleSelectAsset,
		models.StateAwaitingAmount:       e.handleBuyAmount,
		models.StateAwaitingConfirmation: e.handleBuyConfirmation,

		models.StateEnterAmountAndToken:   e.handleSellEntry,
		models.StateSelectPayoutCurrency:  e.handleSelectPayoutCurrency,
		models.StateConfirmRate:           e.handleConfirmRate,
		models.StateSelectBank:            e.handleSelectBank,
		models.StateAwaitingAccountNumber: e.handleAccountNumber,
		models.StateAwaitingAccountName:   e.handleAccountName,
		models.StateAwaitingVerifyChoice:  e.handleVerifyChoice,

		models.StateFailed: e.handleFailed,
	}

	return e
}

// Active reports whether the user has a flow in progress.
func (e *Engine) Active(ctx context.Context, userID int64) (bool, error) {
	s, err := e.sessions.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return s != nil, nil
}

// Handle processes one event against the user's active session. A usable
// Reply is always returned; the error classifies the outcome. When no
// flow is active the main menu is offered.
func (e *Engine) Handle(ctx context.Context, userID int64, ev Event) (Reply, error) {
	s, err := e.sessions.Get(ctx, userID)
	if err != nil {
		logger.Log.Errorw("session load failed", "user_id", userID, "error", err)
		return genericFailureReply(), ErrPersistence
	}
	if s == nil {
		return MainMenuReply(), nil
	}

	// Cancellation is accepted in every non-failed state.
	if ev.Kind == EventAction && ev.Action == ActionCancel && s.State != models.StateFailed {
		return e.cancel(ctx, s)
	}
	if ev.Kind == EventAction && ev.Action == ActionMainMenu {
		_ = e.sessions.Delete(ctx, s.UserID)
		return MainMenuReply(), nil
	}

	h, ok := e.handlers[s.State]
	if !ok {
		// Unknown state means a corrupt session; never leave the user
		// stuck without a valid next input.
		logger.Log.Errorw("unknown session state", "user_id", userID, "state", s.State)
		_ = e.sessions.Delete(ctx, userID)
		return genericFailureReply(), ErrPersistence
	}

	reply, err := h(ctx, s, ev)
	return reply, e.persist(ctx, s, err)
}

// persist saves or discards the session according to the handler
// outcome. Unexpected errors fail the session terminally.
func (e *Engine) persist(ctx context.Context, s *models.Session, err error) error {
	switch {
	case err == nil,
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrUnverified),
		errors.Is(err, ErrExternalCall):
		if s.State.Terminal() {
			_ = e.sessions.Delete(ctx, s.UserID)
			return err
		}
		if saveErr := e.sessions.Save(ctx, s); saveErr != nil {
			logger.Log.Errorw("session save failed", "user_id", s.UserID, "error", saveErr)
		}
		return err
	case errors.Is(err, ErrCancelled),
		errors.Is(err, ErrInsufficientBalance),
		errors.Is(err, ErrPersistence):
		_ = e.sessions.Delete(ctx, s.UserID)
		return err
	default:
		logger.Log.Errorw("unexpected engine failure", "user_id", s.UserID, "state", s.State, "error", err)
		_ = e.sessions.Delete(ctx, s.UserID)
		return err
	}
}

func (e *Engine) cancel(ctx context.Context, s *models.Session) (Reply, error) {
	s.State = models.StateCancelled
	_ = e.sessions.Delete(ctx, s.UserID)
	return cancelledReply(), ErrCancelled
}

// handleFailed accepts the retry decision after a failed flow. Retry
// re-enters the flow's initial state carrying forward still-valid
// selections.
func (e *Engine) handleFailed(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventAction {
		return failedReply("Please choose an option below."), ErrInvalidInput
	}

	switch ev.Action {
	case ActionRetry:
		if s.Flow == models.FlowBuy {
			if s.Asset != "" {
				s.State = models.StateAwaitingAmount
				return buyAmountReply(s.Asset), nil
			}
			s.State = models.StateSelectAsset
			return selectAssetReply(), nil
		}
		s.State = models.StateEnterAmountAndToken
		return sellEntryReply(), nil
	case ActionCancel:
		return e.cancel(ctx, s)
	default:
		return failedReply("Please choose an option below."), ErrInvalidInput
	}
}

// settle simulates settlement latency, bounded by the context.
func (e *Engine) settle(ctx context.Context) {
	if e.settleDelay <= 0 {
		return
	}
	t := time.NewTimer(e.settleDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

// newTxID generates a short transaction reference.
func newTxID() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "TX" + raw[:8]
}

// newRecordID generates a ledger row identifier.
func newRecordID() string {
	return uuid.NewString()
}

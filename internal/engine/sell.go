package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abokixyz/ramp-bot/internal/facades"
	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/abokixyz/ramp-bot/internal/token"
	"github.com/abokixyz/ramp-bot/internal/validation"
)

// StartSell enters the sell (offramp) flow: provision a wallet when
// needed, then ask for the amount and token. Any previous session is
// replaced.
func (e *Engine) StartSell(ctx context.Context, userID int64, username string) (Reply, error) {
	user, provisioned, err := e.wallets.EnsureWallet(ctx, userID, username)
	if err != nil {
		return genericFailureReply(), ErrPersistence
	}

	s := &models.Session{
		UserID:    userID,
		Flow:      models.FlowSell,
		State:     models.StateEnterAmountAndToken,
		StartedAt: time.Now().UTC(),
	}
	if err := e.sessions.Save(ctx, s); err != nil {
		logger.Log.Errorw("session save failed", "user_id", userID, "error", err)
		return genericFailureReply(), ErrPersistence
	}

	reply := sellEntryReply()
	if provisioned {
		reply.Text = fmt.Sprintf("A wallet has been generated for you.\nAddress: %s\n\n%s",
			user.Wallet.String, reply.Text)
	}
	return reply, nil
}

// handleSellEntry consumes the "AMOUNT SYMBOL" text, validates the token
// and amount, and checks the wallet balance covers the sale.
func (e *Engine) handleSellEntry(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventText {
		return sellEntryReply(), ErrInvalidInput
	}

	fields := strings.Fields(ev.Text)
	if len(fields) != 2 {
		return Reply{Text: "Invalid format. Enter amount and token, for example: 10 USDC"}, ErrInvalidInput
	}

	amount, ok := validation.ParseAmount(fields[0])
	if !ok || amount < models.MinSellAmount {
		return Reply{Text: "Invalid amount. Please enter a valid number greater than 0."}, ErrInvalidInput
	}
	asset := strings.ToUpper(fields[1])
	if !models.IsSupportedCrypto(asset) {
		return Reply{Text: fmt.Sprintf("Unsupported token %s. Supported tokens: %s",
			asset, strings.Join(models.SupportedCrypto, ", "))}, ErrInvalidInput
	}

	user, _, err := e.wallets.EnsureWallet(ctx, s.UserID, "")
	if err != nil || !user.HasWallet() {
		return genericFailureReply(), ErrPersistence
	}

	balance, err := e.oracle.BalanceOf(ctx, user.Wallet.String, asset)
	if err != nil {
		logger.Log.Errorw("balance lookup failed", "user_id", s.UserID, "token", asset, "error", err)
		return genericFailureReply(), ErrPersistence
	}
	if amount > balance {
		return Reply{
			Text: fmt.Sprintf(
				"Insufficient balance. You have %s but tried to sell %s.\n\nFund your wallet and start again:\n%s",
				formatAmount(balance, asset), formatAmount(amount, asset), user.Wallet.String),
			Buttons: [][]Button{mainMenuRow()},
		}, ErrInsufficientBalance
	}

	s.Asset = asset
	s.AssetAmount = amount
	s.Balance = balance
	s.State = models.StateSelectPayoutCurrency
	return selectFiatReply(), nil
}

// handleSelectPayoutCurrency consumes the payout currency button and
// quotes the sale.
func (e *Engine) handleSelectPayoutCurrency(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventAction {
		return selectFiatReply(), ErrInvalidInput
	}
	currency, ok := fiatFromAction(ev.Action)
	if !ok || !models.IsSupportedFiat(currency) {
		return selectFiatReply(), ErrInvalidInput
	}

	quote := e.quotes.Quote(ctx, s.AssetAmount, s.Asset, currency)
	if quote.Zero() {
		return Reply{
			Text:    fmt.Sprintf("No exchange rate is available for %s/%s right now. Please select another currency.", s.Asset, currency),
			Buttons: fiatButtons(),
		}, ErrInvalidInput
	}

	s.FiatCurrency = currency
	s.FiatAmount = quote.DestAmount
	s.Rate = quote.Rate
	s.State = models.StateConfirmRate

	return Reply{
		Text: fmt.Sprintf("Rate: 1 %s = %s\nYou will receive %s for %s.\n\nProceed?",
			s.Asset, formatAmount(quote.Rate, currency),
			formatAmount(quote.DestAmount, currency), formatAmount(s.AssetAmount, s.Asset)),
		Buttons: [][]Button{confirmCancelRow()},
	}, nil
}

// handleConfirmRate consumes the rate confirmation and moves on to the
// payout bank.
func (e *Engine) handleConfirmRate(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventAction || ev.Action != ActionConfirm {
		return Reply{
			Text:    "Please confirm the rate or cancel:",
			Buttons: [][]Button{confirmCancelRow()},
		}, ErrInvalidInput
	}

	s.State = models.StateSelectBank
	return selectBankReply(), nil
}

// handleSelectBank consumes the bank selection button.
func (e *Engine) handleSelectBank(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventAction {
		return selectBankReply(), ErrInvalidInput
	}
	bank, ok := bankFromAction(ev.Action)
	if !ok || !knownBank(bank) {
		return selectBankReply(), ErrInvalidInput
	}

	s.Bank = bank
	s.State = models.StateAwaitingAccountNumber
	return Reply{Text: fmt.Sprintf("You selected %s. Enter your 10-digit account number:", bank)}, nil
}

// handleAccountNumber consumes the account number text.
func (e *Engine) handleAccountNumber(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventText || !validation.IsValidAccountNumber(ev.Text) {
		return Reply{Text: "Invalid account number. Please enter exactly 10 digits:"}, ErrInvalidInput
	}

	s.AccountNumber = strings.TrimSpace(ev.Text)
	s.State = models.StateAwaitingAccountName
	return Reply{Text: "Enter the account holder's name:"}, nil
}

// handleAccountName consumes the account name and attempts bank
// verification. Without a usable auth token the verification step is
// skipped rather than blocking the payout.
func (e *Engine) handleAccountName(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventText || !validation.IsValidAccountName(ev.Text) {
		return Reply{Text: "Invalid name. Please enter the account holder's full name:"}, ErrInvalidInput
	}
	s.AccountName = strings.TrimSpace(ev.Text)

	user, _, err := e.wallets.EnsureWallet(ctx, s.UserID, "")
	if err != nil {
		return genericFailureReply(), ErrPersistence
	}

	if !token.IsUsable(user.Token(), time.Now()) {
		logger.Log.Warnw("no usable auth token, skipping bank verification", "user_id", s.UserID)
		return e.processSell(ctx, s)
	}

	account := facades.BankAccount{
		AccountNumber: s.AccountNumber,
		BankName:      s.Bank,
		AccountName:   s.AccountName,
		IsDefault:     true,
	}
	if err := e.ramp.VerifyBankAccount(ctx, user.Token(), account); err != nil {
		logger.Log.Warnw("bank verification failed", "user_id", s.UserID, "bank", s.Bank, "error", err)
		s.State = models.StateAwaitingVerifyChoice
		return verifyChoiceReply(), ErrUnverified
	}

	return e.processSell(ctx, s)
}

// handleVerifyChoice consumes the decision after a failed bank
// verification: re-enter the payout details or continue unverified.
func (e *Engine) handleVerifyChoice(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventAction {
		return verifyChoiceReply(), ErrInvalidInput
	}

	switch ev.Action {
	case ActionReEnterAccount:
		s.Bank = ""
		s.AccountNumber = ""
		s.AccountName = ""
		s.State = models.StateSelectBank
		return selectBankReply(), nil
	case ActionContinueUnverified:
		return e.processSell(ctx, s)
	default:
		return verifyChoiceReply(), ErrInvalidInput
	}
}

// processSell records the sale and reports the payout summary. The
// quote captured at confirmation time is what gets settled.
func (e *Engine) processSell(ctx context.Context, s *models.Session) (Reply, error) {
	reference := newTxID()
	txn := models.TransactionDB{
		TransactionID:  newRecordID(),
		UserID:         s.UserID,
		Direction:      models.DirectionSell,
		SourceAmount:   s.AssetAmount,
		SourceCurrency: s.Asset,
		DestAmount:     s.FiatAmount,
		DestCurrency:   s.FiatCurrency,
		Reference:      reference,
		CreatedAt:      time.Now().UTC(),
	}
	if err := e.ledger.Record(ctx, txn); err != nil {
		return Reply{
			Text:    "Your sale could not be recorded. Nothing was deducted. Please try again later.",
			Buttons: [][]Button{mainMenuRow()},
		}, ErrPersistence
	}

	e.settle(ctx)
	s.State = models.StateCompleted

	return Reply{
		Text: fmt.Sprintf(
			"Transaction successful.\n\nSold: %s\nReceived: %s\nBank: %s\nAccount: %s (%s)\nReference: %s",
			formatAmount(s.AssetAmount, s.Asset), formatAmount(s.FiatAmount, s.FiatCurrency),
			s.Bank, s.AccountNumber, s.AccountName, reference),
		Buttons: [][]Button{mainMenuRow()},
	}, nil
}

func knownBank(bank string) bool {
	for _, b := range models.Banks {
		if b == bank {
			return true
		}
	}
	return false
}

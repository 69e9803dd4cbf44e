package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/abokixyz/ramp-bot/internal/validation"
)

// StartBuy enters the buy (onramp) flow: provision a wallet when needed,
// then ask which asset to purchase. Any previous session is replaced.
func (e *Engine) StartBuy(ctx context.Context, userID int64, username string) (Reply, error) {
	user, provisioned, err := e.wallets.EnsureWallet(ctx, userID, username)
	if err != nil {
		return genericFailureReply(), ErrPersistence
	}

	s := &models.Session{
		UserID:    userID,
		Flow:      models.FlowBuy,
		State:     models.StateSelectAsset,
		StartedAt: time.Now().UTC(),
	}
	if err := e.sessions.Save(ctx, s); err != nil {
		logger.Log.Errorw("session save failed", "user_id", userID, "error", err)
		return genericFailureReply(), ErrPersistence
	}

	reply := selectAssetReply()
	if provisioned {
		reply.Text = fmt.Sprintf("A wallet has been generated for you.\nAddress: %s\n\n%s",
			user.Wallet.String, reply.Text)
	}
	return reply, nil
}

// handleSelectAsset consumes the asset selection button.
func (e *Engine) handleSelectAsset(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventAction {
		return selectAssetReply(), ErrInvalidInput
	}
	asset, ok := assetFromAction(ev.Action)
	if !ok || !models.IsSupportedCrypto(asset) {
		return selectAssetReply(), ErrInvalidInput
	}

	s.Asset = asset
	s.State = models.StateAwaitingAmount
	return buyAmountReply(asset), nil
}

// handleBuyAmount consumes the fiat amount text, validates it against
// the buy minimum, and quotes the purchase.
func (e *Engine) handleBuyAmount(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventText {
		return buyAmountReply(s.Asset), ErrInvalidInput
	}

	amount, ok := validation.ParseAmount(ev.Text)
	if !ok {
		return Reply{Text: "Invalid amount. Please enter a valid number greater than 0."}, ErrInvalidInput
	}
	if amount < models.MinBuyAmountNGN {
		return Reply{Text: fmt.Sprintf("Amount too small. The minimum amount is %.0f %s.",
			models.MinBuyAmountNGN, models.NGN)}, ErrInvalidInput
	}

	quote := e.quotes.Quote(ctx, amount, models.NGN, s.Asset)
	if quote.Zero() {
		// A zero rate must never turn into a zero-value trade.
		return Reply{Text: fmt.Sprintf("No exchange rate is available for %s right now. Please try a different asset.", s.Asset)}, ErrInvalidInput
	}

	s.FiatAmount = amount
	s.FiatCurrency = models.NGN
	s.AssetAmount = quote.DestAmount
	s.Rate = quote.Rate
	s.State = models.StateAwaitingConfirmation

	return Reply{
		Text: fmt.Sprintf("You will receive approximately %s for %s.\n\nPlease confirm your purchase:",
			formatAmount(quote.DestAmount, s.Asset), formatAmount(amount, models.NGN)),
		Buttons: [][]Button{confirmCancelRow()},
	}, nil
}

// handleBuyConfirmation consumes the confirm button and runs Processing:
// submit the onramp order, record the transaction, report the payment
// link. Order submission is the one external call that fails the flow.
func (e *Engine) handleBuyConfirmation(ctx context.Context, s *models.Session, ev Event) (Reply, error) {
	if ev.Kind != EventAction || ev.Action != ActionConfirm {
		return Reply{
			Text:    "Please confirm or cancel your purchase:",
			Buttons: [][]Button{confirmCancelRow()},
		}, ErrInvalidInput
	}

	user, _, err := e.wallets.EnsureWallet(ctx, s.UserID, "")
	if err != nil || !user.HasWallet() {
		return genericFailureReply(), ErrPersistence
	}

	order, err := e.ramp.CreateOnrampOrder(ctx, user.Token(), s.FiatAmount, user.Wallet.String)
	if err != nil {
		logger.Log.Errorw("onramp order failed", "user_id", s.UserID, "error", err)
		s.State = models.StateFailed
		return failedReply("Order creation failed. There was an error processing your order."), ErrExternalCall
	}

	destAmount := s.AssetAmount
	if order.Order.TargetAmount > 0 {
		destAmount = order.Order.TargetAmount
	}
	reference := order.Payment.PaymentReference
	if reference == "" {
		reference = newTxID()
	}

	txn := models.TransactionDB{
		TransactionID:  newRecordID(),
		UserID:         s.UserID,
		Direction:      models.DirectionBuy,
		SourceAmount:   s.FiatAmount,
		SourceCurrency: models.NGN,
		DestAmount:     destAmount,
		DestCurrency:   s.Asset,
		Reference:      reference,
		CreatedAt:      time.Now().UTC(),
	}
	if err := e.ledger.Record(ctx, txn); err != nil {
		return Reply{
			Text:    "Your order could not be recorded. No payment was taken. Please try again later.",
			Buttons: [][]Button{mainMenuRow()},
		}, ErrPersistence
	}

	e.settle(ctx)
	s.State = models.StateCompleted

	reply := Reply{
		Text: fmt.Sprintf(
			"Order created successfully.\n\nAmount: %s\nEstimated %s: %s\nRecipient Address: %s\nReference: %s\n\nComplete your payment with the link below; your %s will be sent to your wallet after payment.",
			formatAmount(s.FiatAmount, models.NGN), s.Asset,
			formatAmount(destAmount, s.Asset), user.Wallet.String, reference, s.Asset),
		Buttons: [][]Button{mainMenuRow()},
	}
	if order.Payment.CheckoutURL != "" {
		reply.Buttons = [][]Button{
			{{Label: "Pay Now", URL: order.Payment.CheckoutURL}},
			mainMenuRow(),
		}
	}
	return reply, nil
}

// Package telegram adapts Telegram updates to workflow engine events and
// renders engine replies back as Telegram messages. All conversation
// logic lives in the engine; this package only translates.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/abokixyz/ramp-bot/internal/engine"
	"github.com/abokixyz/ramp-bot/internal/logger"
	"github.com/abokixyz/ramp-bot/internal/models"
)

// Workflow drives the buy and sell conversations.
type Workflow interface {
	StartBuy(ctx context.Context, userID int64, username string) (engine.Reply, error)
	StartSell(ctx context.Context, userID int64, username string) (engine.Reply, error)
	Handle(ctx context.Context, userID int64, ev engine.Event) (engine.Reply, error)
	Active(ctx context.Context, userID int64) (bool, error)
}

// WalletViewer exposes the wallet info view.
type WalletViewer interface {
	Balances(ctx context.Context, userID int64, username string) (*models.UserDB, map[string]float64, error)
}

// HistoryViewer exposes the recent-transactions view.
type HistoryViewer interface {
	Recent(ctx context.Context, userID int64) ([]models.TransactionDB, error)
}

// BotAPI is the slice of the Telegram client the bot uses.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot consumes Telegram updates and routes them to the workflow engine.
// Updates from the same user are processed one at a time; a second
// message sent while the first is still being handled waits its turn.
type Bot struct {
	api      BotAPI
	workflow Workflow
	wallets  WalletViewer
	history  HistoryViewer

	mu    sync.Mutex
	users map[int64]*sync.Mutex
}

// NewBot creates the Telegram transport.
func NewBot(api BotAPI, workflow Workflow, wallets WalletViewer, history HistoryViewer) *Bot {
	return &Bot{
		api:      api,
		workflow: workflow,
		wallets:  wallets,
		history:  history,
		users:    make(map[int64]*sync.Mutex),
	}
}

// Run consumes updates until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) userLock(userID int64) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.users[userID]
	if !ok {
		l = &sync.Mutex{}
		b.users[userID] = l
	}
	return l
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	var userID int64
	switch {
	case update.CallbackQuery != nil:
		userID = update.CallbackQuery.From.ID
	case update.Message != nil && update.Message.From != nil:
		userID = update.Message.From.ID
	default:
		return
	}

	lock := b.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil:
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	username := msg.From.UserName

	var reply engine.Reply
	var err error

	switch msg.Command() {
	case "start":
		reply = welcomeReply()
	case "buy", "onramp":
		reply, err = b.workflow.StartBuy(ctx, userID, username)
	case "sell", "offramp":
		reply, err = b.workflow.StartSell(ctx, userID, username)
	case "wallet":
		reply, err = b.walletReply(ctx, userID, username)
	case "history":
		reply, err = b.historyReply(ctx, userID)
	case "help":
		reply = helpReply()
	default:
		reply = engine.Reply{Text: "Unknown command. Send /help to see what I can do."}
	}

	if err != nil {
		logger.Log.Errorw("command failed", "user_id", userID, "command", msg.Command(), "error", err)
	}
	b.send(msg.Chat.ID, reply)
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	reply, err := b.workflow.Handle(ctx, userID, engine.TextEvent(msg.Text))
	if err != nil {
		logger.Log.Infow("workflow input rejected", "user_id", userID, "error", err)
	}
	b.send(msg.Chat.ID, reply)
}

func (b *Bot) handleCallback(ctx context.Context, q *tgbotapi.CallbackQuery) {
	userID := q.From.ID
	username := q.From.UserName

	// Acknowledge immediately so the client stops the spinner.
	if _, err := b.api.Request(tgbotapi.NewCallback(q.ID, "")); err != nil {
		logger.Log.Warnw("callback ack failed", "user_id", userID, "error", err)
	}
	if q.Message == nil {
		return
	}
	chatID := q.Message.Chat.ID

	var reply engine.Reply
	var err error

	switch q.Data {
	case "ONRAMP":
		reply, err = b.workflow.StartBuy(ctx, userID, username)
	case "OFFRAMP":
		reply, err = b.workflow.StartSell(ctx, userID, username)
	case "WALLET_INFO":
		reply, err = b.walletReply(ctx, userID, username)
	case "HISTORY":
		reply, err = b.historyReply(ctx, userID)
	case "HELP":
		reply = helpReply()
	default:
		reply, err = b.workflow.Handle(ctx, userID, engine.ActionEvent(q.Data))
	}

	if err != nil {
		logger.Log.Infow("callback handling finished with outcome", "user_id", userID, "data", q.Data, "error", err)
	}
	b.send(chatID, reply)
}

func (b *Bot) walletReply(ctx context.Context, userID int64, username string) (engine.Reply, error) {
	user, balances, err := b.wallets.Balances(ctx, userID, username)
	if err != nil {
		return engine.Reply{
			Text:    "Sorry, your wallet is unavailable right now. Please try again later.",
			Buttons: [][]engine.Button{{{Label: "Back to Main Menu", Action: engine.ActionMainMenu}}},
		}, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Your wallet:\n%s\n\nBalances:\n", user.Wallet.String)
	for _, symbol := range models.SupportedCrypto {
		fmt.Fprintf(&sb, "%s: %.6f\n", symbol, balances[symbol])
	}

	return engine.Reply{
		Text:    sb.String(),
		Buttons: [][]engine.Button{{{Label: "Back to Main Menu", Action: engine.ActionMainMenu}}},
	}, nil
}

func (b *Bot) historyReply(ctx context.Context, userID int64) (engine.Reply, error) {
	txns, err := b.history.Recent(ctx, userID)
	if err != nil {
		return engine.Reply{
			Text:    "Sorry, your history is unavailable right now. Please try again later.",
			Buttons: [][]engine.Button{{{Label: "Back to Main Menu", Action: engine.ActionMainMenu}}},
		}, err
	}
	if len(txns) == 0 {
		return engine.Reply{
			Text:    "You have no transactions yet.",
			Buttons: [][]engine.Button{{{Label: "Back to Main Menu", Action: engine.ActionMainMenu}}},
		}, nil
	}

	var sb strings.Builder
	sb.WriteString("Your recent transactions:\n\n")
	for _, txn := range txns {
		verb := "Bought"
		if txn.Direction == models.DirectionSell {
			verb = "Sold"
		}
		fmt.Fprintf(&sb, "%s  %s %.6f %s for %.2f %s  (%s)\n",
			txn.CreatedAt.Format("2006-01-02"), verb,
			txn.SourceAmount, txn.SourceCurrency,
			txn.DestAmount, txn.DestCurrency, txn.Reference)
	}

	return engine.Reply{
		Text:    sb.String(),
		Buttons: [][]engine.Button{{{Label: "Back to Main Menu", Action: engine.ActionMainMenu}}},
	}, nil
}

func (b *Bot) send(chatID int64, reply engine.Reply) {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if markup, ok := keyboard(reply); ok {
		msg.ReplyMarkup = markup
	}
	if _, err := b.api.Send(msg); err != nil {
		logger.Log.Errorw("send failed", "chat_id", chatID, "error", err)
	}
}

// keyboard renders engine button rows as an inline keyboard.
func keyboard(reply engine.Reply) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(reply.Buttons) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(reply.Buttons))
	for _, row := range reply.Buttons {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, btn := range row {
			if btn.URL != "" {
				buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonURL(btn.Label, btn.URL))
				continue
			}
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Action))
		}
		rows = append(rows, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func welcomeReply() engine.Reply {
	reply := engine.MainMenuReply()
	reply.Text = "Welcome to Aboki! Buy and sell crypto straight from this chat.\n\n" + reply.Text
	return reply
}

func helpReply() engine.Reply {
	return engine.Reply{
		Text: strings.Join([]string{
			"Available commands:",
			"/buy - buy crypto with NGN",
			"/sell - sell crypto for NGN",
			"/wallet - show your wallet and balances",
			"/history - show your recent transactions",
			"/help - show this message",
			"",
			"You can cancel an in-progress transaction at any step.",
		}, "\n"),
		Buttons: [][]engine.Button{{{Label: "Back to Main Menu", Action: engine.ActionMainMenu}}},
	}
}

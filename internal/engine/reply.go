package engine

import (
	"fmt"
	"strings"

	"github.com/abokixyz/ramp-bot/internal/models"
)

// Button is one selectable option offered to the user. URL buttons open
// an external link instead of emitting an action.
type Button struct {
	Label  string
	Action string
	URL    string
}

// Reply is the engine's response directive: logical prompt text plus the
// button rows to offer. The chat transport owns rendering; the engine
// never emits markup.
type Reply struct {
	Text    string
	Buttons [][]Button
}

func mainMenuRow() []Button {
	return []Button{{Label: "Back to Main Menu", Action: ActionMainMenu}}
}

func confirmCancelRow() []Button {
	return []Button{
		{Label: "Confirm", Action: ActionConfirm},
		{Label: "Cancel", Action: ActionCancel},
	}
}

func assetButtons() [][]Button {
	row := make([]Button, 0, len(models.SupportedCrypto))
	for _, symbol := range models.SupportedCrypto {
		row = append(row, Button{Label: symbol, Action: AssetAction(symbol)})
	}
	return [][]Button{row, mainMenuRow()}
}

func fiatButtons() [][]Button {
	rows := make([][]Button, 0, len(models.SupportedFiat))
	for _, currency := range models.SupportedFiat {
		rows = append(rows, []Button{{Label: currency, Action: FiatAction(currency)}})
	}
	return rows
}

func bankButtons() [][]Button {
	rows := make([][]Button, 0, len(models.Banks))
	for _, bank := range models.Banks {
		rows = append(rows, []Button{{Label: bank, Action: BankAction(bank)}})
	}
	return rows
}

func selectAssetReply() Reply {
	return Reply{
		Text:    "Select a cryptocurrency to purchase:",
		Buttons: assetButtons(),
	}
}

func buyAmountReply(asset string) Reply {
	return Reply{
		Text: fmt.Sprintf(
			"You selected %s. Enter the amount in %s you want to spend (minimum %.0f %s):",
			asset, models.NGN, models.MinBuyAmountNGN, models.NGN),
	}
}

func sellEntryReply() Reply {
	return Reply{
		Text: "Enter token amount and symbol, for example: 10 USDC",
	}
}

func selectFiatReply() Reply {
	return Reply{
		Text:    "Select currency to receive:",
		Buttons: fiatButtons(),
	}
}

func selectBankReply() Reply {
	return Reply{
		Text:    "Please select your bank:",
		Buttons: bankButtons(),
	}
}

func verifyChoiceReply() Reply {
	return Reply{
		Text: "We couldn't verify your bank account details with our banking partners. You can either re-enter your details or continue anyway.",
		Buttons: [][]Button{
			{{Label: "Re-enter Details", Action: ActionReEnterAccount}},
			{{Label: "Continue Anyway", Action: ActionContinueUnverified}},
		},
	}
}

func cancelledReply() Reply {
	return Reply{
		Text:    "Transaction cancelled.",
		Buttons: [][]Button{mainMenuRow()},
	}
}

func failedReply(text string) Reply {
	return Reply{
		Text: text,
		Buttons: [][]Button{
			{{Label: "Try Again", Action: ActionRetry}},
			mainMenuRow(),
		},
	}
}

func genericFailureReply() Reply {
	return Reply{
		Text:    "Sorry, there was an error processing your request. Please try again later.",
		Buttons: [][]Button{mainMenuRow()},
	}
}

// MainMenuReply is the default prompt when no flow is in progress.
func MainMenuReply() Reply {
	return Reply{
		Text: "What would you like to do?",
		Buttons: [][]Button{
			{
				{Label: "Buy Crypto", Action: "ONRAMP"},
				{Label: "Sell Crypto", Action: "OFFRAMP"},
			},
			{
				{Label: "Wallet", Action: "WALLET_INFO"},
				{Label: "History", Action: "HISTORY"},
			},
			{{Label: "Help", Action: "HELP"}},
		},
	}
}

func formatAmount(amount float64, currency string) string {
	if models.IsSupportedFiat(currency) || currency == models.USD {
		return fmt.Sprintf("%.2f %s", amount, currency)
	}
	s := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", amount), "0"), ".")
	return s + " " + currency
}

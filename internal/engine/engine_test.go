package engine_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/abokixyz/ramp-bot/internal/engine"
	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

type engineMocks struct {
	sessions *engine.MockSessionStore
	wallets  *engine.MockWalletProvisioner
	quotes   *engine.MockQuoteProvider
	oracle   *engine.MockBalanceOracle
	ramp     *engine.MockRampClient
	ledger   *engine.MockTransactionRecorder
}

func newTestEngine(ctrl *gomock.Controller) (*engine.Engine, engineMocks) {
	m := engineMocks{
		sessions: engine.NewMockSessionStore(ctrl),
		wallets:  engine.NewMockWalletProvisioner(ctrl),
		quotes:   engine.NewMockQuoteProvider(ctrl),
		oracle:   engine.NewMockBalanceOracle(ctrl),
		ramp:     engine.NewMockRampClient(ctrl),
		ledger:   engine.NewMockTransactionRecorder(ctrl),
	}
	e := engine.New(m.sessions, m.wallets, m.quotes, m.oracle, m.ramp, m.ledger, 0)
	return e, m
}

func walletUser(userID int64, token string) *models.UserDB {
	u := &models.UserDB{
		UserID:   userID,
		Username: "jane",
		Wallet:   sql.NullString{String: "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", Valid: true},
	}
	if token != "" {
		u.AuthToken = sql.NullString{String: token, Valid: true}
	}
	return u
}

func TestEngine_Handle_NoActiveSessionOffersMenu(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, m := newTestEngine(ctrl)
	ctx := context.Background()

	m.sessions.EXPECT().Get(ctx, int64(7)).Return(nil, nil)

	reply, err := e.Handle(ctx, 7, engine.TextEvent("hello"))
	assert.NoError(t, err)
	assert.Equal(t, engine.MainMenuReply(), reply)
}

func TestEngine_Handle_CancelDiscardsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, m := newTestEngine(ctrl)
	ctx := context.Background()

	s := &models.Session{UserID: 7, Flow: models.FlowSell, State: models.StateSelectBank}
	gomock.InOrder(
		m.sessions.EXPECT().Get(ctx, int64(7)).Return(s, nil),
		m.sessions.EXPECT().Delete(ctx, int64(7)).Return(nil),
	)

	reply, err := e.Handle(ctx, 7, engine.ActionEvent(engine.ActionCancel))
	assert.ErrorIs(t, err, engine.ErrCancelled)
	assert.Contains(t, reply.Text, "cancelled")
}

func TestEngine_Handle_MainMenuDiscardsSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, m := newTestEngine(ctrl)
	ctx := context.Background()

	s := &models.Session{UserID: 7, Flow: models.FlowBuy, State: models.StateAwaitingAmount}
	gomock.InOrder(
		m.sessions.EXPECT().Get(ctx, int64(7)).Return(s, nil),
		m.sessions.EXPECT().Delete(ctx, int64(7)).Return(nil),
	)

	reply, err := e.Handle(ctx, 7, engine.ActionEvent(engine.ActionMainMenu))
	assert.NoError(t, err)
	assert.Equal(t, engine.MainMenuReply(), reply)
}

func TestEngine_Handle_UnknownStateRecovers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, m := newTestEngine(ctrl)
	ctx := context.Background()

	s := &models.Session{UserID: 7, Flow: models.FlowBuy, State: models.State("corrupt")}
	gomock.InOrder(
		m.sessions.EXPECT().Get(ctx, int64(7)).Return(s, nil),
		m.sessions.EXPECT().Delete(ctx, int64(7)).Return(nil),
	)

	reply, err := e.Handle(ctx, 7, engine.TextEvent("anything"))
	assert.ErrorIs(t, err, engine.ErrPersistence)
	assert.NotEmpty(t, reply.Buttons, "the user must always have a valid next input")
}

func TestEngine_Active(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e, m := newTestEngine(ctrl)
	ctx := context.Background()

	m.sessions.EXPECT().Get(ctx, int64(1)).Return(&models.Session{UserID: 1}, nil)
	m.sessions.EXPECT().Get(ctx, int64(2)).Return(nil, nil)

	active, err := e.Active(ctx, 1)
	assert.NoError(t, err)
	assert.True(t, active)

	active, err = e.Active(ctx, 2)
	assert.NoError(t, err)
	assert.False(t, active)
}

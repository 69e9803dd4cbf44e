package services_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/abokixyz/ramp-bot/internal/models"
	"github.com/abokixyz/ramp-bot/internal/services"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func userWith(wallet, token string) *models.UserDB {
	u := &models.UserDB{UserID: 42, Username: "jane"}
	if wallet != "" {
		u.Wallet = sql.NullString{String: wallet, Valid: true}
	}
	if token != "" {
		u.AuthToken = sql.NullString{String: token, Valid: true}
	}
	return u
}

func TestWalletService_EnsureWallet_ProvisionsOnFirstUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockAuth := services.NewMockWalletAuthenticator(ctrl)
	mockOracle := services.NewMockBalanceReader(ctrl)

	svc := services.NewWalletService(mockReader, mockWriter, mockAuth, mockOracle)
	ctx := context.Background()

	wallet := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	gomock.InOrder(
		mockReader.EXPECT().GetByUserID(ctx, int64(42)).Return(nil, nil),
		mockWriter.EXPECT().Upsert(ctx, int64(42), "jane", gomock.Any()).Return(nil),
		mockReader.EXPECT().GetByUserID(ctx, int64(42)).Return(userWith(wallet, ""), nil),
		mockAuth.EXPECT().Authenticate(ctx, wallet).Return("tok-new", nil),
		mockWriter.EXPECT().UpdateToken(ctx, int64(42), "tok-new").Return(nil),
	)

	user, provisioned, err := svc.EnsureWallet(ctx, 42, "jane")
	assert.NoError(t, err)
	assert.True(t, provisioned)
	assert.Equal(t, "tok-new", user.Token())
}

func TestWalletService_EnsureWallet_FailOpenOnAuthError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockAuth := services.NewMockWalletAuthenticator(ctrl)
	mockOracle := services.NewMockBalanceReader(ctrl)

	svc := services.NewWalletService(mockReader, mockWriter, mockAuth, mockOracle)
	ctx := context.Background()

	wallet := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"

	gomock.InOrder(
		mockReader.EXPECT().GetByUserID(ctx, int64(42)).Return(nil, nil),
		mockWriter.EXPECT().Upsert(ctx, int64(42), "jane", gomock.Any()).Return(nil),
		mockReader.EXPECT().GetByUserID(ctx, int64(42)).Return(userWith(wallet, ""), nil),
		mockAuth.EXPECT().Authenticate(ctx, wallet).Return("", errors.New("auth down")),
	)

	user, provisioned, err := svc.EnsureWallet(ctx, 42, "jane")
	assert.NoError(t, err, "auth failure must not block the user")
	assert.True(t, provisioned)
	assert.Equal(t, "", user.Token())
}

func TestWalletService_EnsureWallet_KeepsUsableToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockAuth := services.NewMockWalletAuthenticator(ctrl)
	mockOracle := services.NewMockBalanceReader(ctrl)

	svc := services.NewWalletService(mockReader, mockWriter, mockAuth, mockOracle)
	ctx := context.Background()

	wallet := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	existing := userWith(wallet, "tok-opaque")

	gomock.InOrder(
		mockReader.EXPECT().GetByUserID(ctx, int64(42)).Return(existing, nil),
		mockWriter.EXPECT().Upsert(ctx, int64(42), "jane", "").Return(nil),
		mockReader.EXPECT().GetByUserID(ctx, int64(42)).Return(existing, nil),
	)

	user, provisioned, err := svc.EnsureWallet(ctx, 42, "jane")
	assert.NoError(t, err)
	assert.False(t, provisioned)
	assert.Equal(t, "tok-opaque", user.Token())
}

func TestWalletService_EnsureWallet_ReaderError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockAuth := services.NewMockWalletAuthenticator(ctrl)
	mockOracle := services.NewMockBalanceReader(ctrl)

	svc := services.NewWalletService(mockReader, mockWriter, mockAuth, mockOracle)

	mockReader.EXPECT().GetByUserID(gomock.Any(), int64(42)).Return(nil, errors.New("db error"))

	_, _, err := svc.EnsureWallet(context.Background(), 42, "jane")
	assert.EqualError(t, err, "db error")
}

func TestWalletService_Balances(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReader := services.NewMockUserReader(ctrl)
	mockWriter := services.NewMockUserWriter(ctrl)
	mockAuth := services.NewMockWalletAuthenticator(ctrl)
	mockOracle := services.NewMockBalanceReader(ctrl)

	svc := services.NewWalletService(mockReader, mockWriter, mockAuth, mockOracle)
	ctx := context.Background()

	wallet := "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	existing := userWith(wallet, "tok-opaque")

	mockReader.EXPECT().GetByUserID(ctx, int64(42)).Return(existing, nil).Times(2)
	mockWriter.EXPECT().Upsert(ctx, int64(42), "jane", "").Return(nil)
	mockOracle.EXPECT().Balances(ctx, wallet).Return(map[string]float64{"USDC": 12.5}, nil)

	user, balances, err := svc.Balances(ctx, 42, "jane")
	assert.NoError(t, err)
	assert.Equal(t, wallet, user.Wallet.String)
	assert.Equal(t, 12.5, balances["USDC"])
}

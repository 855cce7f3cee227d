package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/panelledger/internal/adapter/http/dto"
	"github.com/iho/panelledger/internal/adapter/http/handler/mocks"
	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

func TestAccountHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(svc, nil)

	svc.EXPECT().
		CreateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, input usecase.CreateAccountInput) (*domain.Account, error) {
			assert.Equal(t, int64(7), input.OwnerID)
			assert.Equal(t, "Cash", input.Name)
			assert.True(t, input.OpeningBalance.Equal(decimal.NewFromInt(100)))
			return &domain.Account{ID: 1, Name: "Cash", OwnerID: 7, Currency: "UZS", Balance: input.OpeningBalance}, nil
		})

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(t, http.MethodPost, "/accounts",
		dto.CreateAccountRequest{Name: "Cash", OpeningBalance: "100"}, "", 7))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "100", resp.Balance.String())
}

func TestAccountHandler_Create_Errors(t *testing.T) {
	t.Run("missing caller", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewAccountHandler(mocks.NewMockAccountService(ctrl), nil)

		rec := httptest.NewRecorder()
		h.Create(rec, newRequest(t, http.MethodPost, "/accounts", dto.CreateAccountRequest{Name: "Cash"}, "", 0))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("name taken", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockAccountService(ctrl)
		h := NewAccountHandler(svc, nil)

		svc.EXPECT().CreateAccount(gomock.Any(), gomock.Any()).Return(nil, domain.ErrAccountNameTaken)

		rec := httptest.NewRecorder()
		h.Create(rec, newRequest(t, http.MethodPost, "/accounts", dto.CreateAccountRequest{Name: "Cash"}, "", 7))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("bad opening balance", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		h := NewAccountHandler(mocks.NewMockAccountService(ctrl), nil)

		rec := httptest.NewRecorder()
		h.Create(rec, newRequest(t, http.MethodPost, "/accounts",
			dto.CreateAccountRequest{Name: "Cash", OpeningBalance: "ten"}, "", 7))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAccountHandler_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(svc, nil)

	svc.EXPECT().GetAccount(gomock.Any(), int64(3)).Return(&domain.Account{ID: 3, Name: "Card"}, nil)
	svc.EXPECT().GetAccount(gomock.Any(), int64(4)).Return(nil, domain.ErrAccountNotFound)

	rec := httptest.NewRecorder()
	h.Get(rec, newRequest(t, http.MethodGet, "/accounts/3", nil, "3", 0))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Get(rec, newRequest(t, http.MethodGet, "/accounts/4", nil, "4", 0))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Get(rec, newRequest(t, http.MethodGet, "/accounts/abc", nil, "abc", 0))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAccountHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(svc, nil)

	svc.EXPECT().
		ListAccounts(gomock.Any(), usecase.ListAccountsInput{Limit: 10, Offset: 20}).
		Return([]*domain.Account{{ID: 1}, {ID: 2}}, nil)
	svc.EXPECT().
		ListAccountsByOwner(gomock.Any(), int64(5)).
		Return([]*domain.Account{{ID: 9, OwnerID: 5}}, nil)

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(t, http.MethodGet, "/accounts?limit=10&offset=20", nil, "", 0))
	require.Equal(t, http.StatusOK, rec.Code)

	var all []dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	rec = httptest.NewRecorder()
	h.List(rec, newRequest(t, http.MethodGet, "/accounts?owner_id=5", nil, "", 0))
	require.Equal(t, http.StatusOK, rec.Code)

	var owned []dto.AccountResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &owned))
	require.Len(t, owned, 1)
	assert.Equal(t, int64(5), owned[0].OwnerID)
}

func TestAccountHandler_Adjust(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAccountService(ctrl)
	retrier := &countingRetrier{}
	h := NewAccountHandler(svc, retrier)

	svc.EXPECT().
		AdjustBalance(gomock.Any(), int64(2), gomock.Any()).
		DoAndReturn(func(_ any, _ int64, delta decimal.Decimal) (*domain.Account, error) {
			assert.Equal(t, "-25.5", delta.String())
			return &domain.Account{ID: 2, Balance: decimal.RequireFromString("-15.5")}, nil
		})

	rec := httptest.NewRecorder()
	h.Adjust(rec, newRequest(t, http.MethodPost, "/accounts/2/adjustments",
		dto.AdjustBalanceRequest{Delta: "-25,5"}, "2", 1))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, retrier.calls)
}

func TestAccountHandler_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAccountService(ctrl)
	h := NewAccountHandler(svc, &countingRetrier{})

	svc.EXPECT().DeleteAccount(gomock.Any(), int64(2)).Return(nil)
	svc.EXPECT().DeleteAccount(gomock.Any(), int64(3)).Return(domain.ErrReferencedEntityProtected)

	rec := httptest.NewRecorder()
	h.Delete(rec, newRequest(t, http.MethodDelete, "/accounts/2", nil, "2", 1))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.Delete(rec, newRequest(t, http.MethodDelete, "/accounts/3", nil, "3", 1))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, decodeError(t, rec).Message, "referenced")
}

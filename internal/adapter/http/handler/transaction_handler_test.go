package handler

import (
	"errors"
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

func TestTransactionHandler_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(svc, &countingRetrier{})

	svc.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, input usecase.CreateTransactionInput) (*domain.Transaction, error) {
			assert.Equal(t, int64(1), input.Account1ID)
			assert.Equal(t, int64(2), input.Account2ID)
			assert.Equal(t, int64(9), input.MakerID)
			return &domain.Transaction{ID: 3, Account1ID: 1, Account2ID: 2, Amount: domain.NewMoney(input.Amount, "")}, nil
		})

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(t, http.MethodPost, "/transactions",
		dto.TransactionRequest{Account1ID: "1", Account2ID: "2", Amount: "40"}, "", 9))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestTransactionHandler_Create_SameAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(svc, nil)

	svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, domain.ErrSameAccount)

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(t, http.MethodPost, "/transactions",
		dto.TransactionRequest{Account1ID: "1", Account2ID: "1", Amount: "40"}, "", 9))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransactionHandler_Edit(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(svc, nil)

	svc.EXPECT().
		Edit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, input usecase.EditTransactionInput) (*domain.Transaction, error) {
			assert.Equal(t, int64(3), input.ID)
			assert.True(t, input.Date.IsZero())
			return &domain.Transaction{ID: 3, Amount: domain.NewMoney(decimal.NewFromInt(5), "")}, nil
		})

	rec := httptest.NewRecorder()
	h.Edit(rec, newRequest(t, http.MethodPut, "/transactions/3",
		dto.TransactionRequest{Account1ID: "2", Account2ID: "1", Amount: "5"}, "3", 9))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTransactionHandler_GetListDelete(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockTransactionService(ctrl)
	h := NewTransactionHandler(svc, nil)

	svc.EXPECT().Get(gomock.Any(), int64(3)).Return(nil, domain.ErrTransactionNotFound)
	svc.EXPECT().ListByMaker(gomock.Any(), int64(9)).Return(nil, errors.New("connection reset"))
	svc.EXPECT().Delete(gomock.Any(), int64(3)).Return(nil)

	rec := httptest.NewRecorder()
	h.Get(rec, newRequest(t, http.MethodGet, "/transactions/3", nil, "3", 9))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.List(rec, newRequest(t, http.MethodGet, "/transactions", nil, "", 9))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	rec = httptest.NewRecorder()
	h.List(rec, newRequest(t, http.MethodGet, "/transactions", nil, "", 0))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.Delete(rec, newRequest(t, http.MethodDelete, "/transactions/3", nil, "3", 9))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/panelledger/internal/adapter/http/dto"
	"github.com/iho/panelledger/internal/adapter/http/handler/mocks"
	"github.com/iho/panelledger/internal/domain"
)

func TestOverviewHandler_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	expenses := mocks.NewMockEntryService(ctrl)
	incomes := mocks.NewMockEntryService(ctrl)
	transactions := mocks.NewMockTransactionService(ctrl)
	h := NewOverviewHandler(expenses, incomes, transactions)

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	money := domain.NewMoney(decimal.NewFromInt(5), "UZS")

	incomes.EXPECT().ListByMaker(gomock.Any(), int64(4)).Return([]*domain.Entry{
		{ID: 1, Kind: domain.EntryKindIncome, Amount: money, Date: day},
		{ID: 2, Kind: domain.EntryKindIncome, Amount: money, Date: day.AddDate(0, 0, 1)},
	}, nil)
	expenses.EXPECT().ListByMaker(gomock.Any(), int64(4)).Return([]*domain.Entry{
		{ID: 7, Kind: domain.EntryKindExpense, Amount: money, Date: day},
	}, nil)
	transactions.EXPECT().ListByMaker(gomock.Any(), int64(4)).Return(nil, nil)

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(t, http.MethodGet, "/entries", nil, "", 4))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body dto.EntriesOverviewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Incomes, 2)
	assert.Equal(t, int64(1), body.Incomes[0].ID)
	assert.Equal(t, int64(2), body.Incomes[1].ID)
	require.Len(t, body.Expenses, 1)
	assert.Equal(t, "expense", body.Expenses[0].Kind)
	assert.NotNil(t, body.Transactions)
	assert.Empty(t, body.Transactions)
}

func TestOverviewHandler_List_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	expenses := mocks.NewMockEntryService(ctrl)
	incomes := mocks.NewMockEntryService(ctrl)
	transactions := mocks.NewMockTransactionService(ctrl)
	h := NewOverviewHandler(expenses, incomes, transactions)

	rec := httptest.NewRecorder()
	h.List(rec, newRequest(t, http.MethodGet, "/entries", nil, "", 0))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	incomes.EXPECT().ListByMaker(gomock.Any(), int64(4)).Return(nil, nil).AnyTimes()
	expenses.EXPECT().ListByMaker(gomock.Any(), int64(4)).Return(nil, errors.New("db down")).AnyTimes()
	transactions.EXPECT().ListByMaker(gomock.Any(), int64(4)).Return(nil, nil).AnyTimes()

	rec = httptest.NewRecorder()
	h.List(rec, newRequest(t, http.MethodGet, "/entries", nil, "", 4))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

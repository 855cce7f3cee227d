package handler

import (
	"context"
	"encoding/json"
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

func TestLedgerHandler_Consistency(t *testing.T) {
	tests := []struct {
		name   string
		report *usecase.ReconciliationReport
		want   int
	}{
		{
			name:   "consistent",
			report: &usecase.ReconciliationReport{TotalAccounts: 2, ReconciledAccounts: 2, LedgerConsistent: true},
			want:   http.StatusOK,
		},
		{
			name: "discrepancy",
			report: &usecase.ReconciliationReport{
				TotalAccounts:      2,
				ReconciledAccounts: 1,
				Discrepancies:      []*usecase.ReconciliationResult{{AccountID: 2, Difference: decimal.NewFromInt(2)}},
			},
			want: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := mocks.NewMockReconciliationService(ctrl)
			svc.EXPECT().GenerateReconciliationReport(gomock.Any()).Return(tt.report, nil)

			rec := httptest.NewRecorder()
			NewLedgerHandler(svc).Consistency(rec, newRequest(t, http.MethodGet, "/ledger/consistency", nil, "", 0))

			require.Equal(t, tt.want, rec.Code)

			var resp dto.ReconciliationReportResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.report.TotalAccounts, resp.TotalAccounts)
			assert.Len(t, resp.Discrepancies, len(tt.report.Discrepancies))
		})
	}
}

func TestLedgerHandler_ReconcileAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockReconciliationService(ctrl)
	h := NewLedgerHandler(svc)

	svc.EXPECT().ReconcileAccount(gomock.Any(), int64(1)).Return(&usecase.ReconciliationResult{
		AccountID:         1,
		RecordedBalance:   decimal.NewFromInt(65),
		CalculatedBalance: decimal.NewFromInt(65),
		IsReconciled:      true,
	}, nil)
	svc.EXPECT().ReconcileAccount(gomock.Any(), int64(2)).Return(nil, domain.ErrAccountNotFound)

	rec := httptest.NewRecorder()
	h.ReconcileAccount(rec, newRequest(t, http.MethodGet, "/accounts/1/reconciliation", nil, "1", 0))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.ReconciliationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.IsReconciled)
	assert.Equal(t, "65", resp.RecordedBalance.String())

	rec = httptest.NewRecorder()
	h.ReconcileAccount(rec, newRequest(t, http.MethodGet, "/accounts/2/reconciliation", nil, "2", 0))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthHandler().Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	h := NewHealthHandler(
		HealthCheck{Name: "postgres", Check: func(context.Context) error { return nil }},
		HealthCheck{Name: "redis", Check: func(context.Context) error { return errors.New("dial tcp: refused") }},
	)

	rec = httptest.NewRecorder()
	h.Liveness(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.Readiness(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "redis unhealthy", decodeError(t, rec).Error)
}

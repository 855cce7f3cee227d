package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/iho/panelledger/internal/adapter/http/dto"
	"github.com/iho/panelledger/internal/adapter/http/handler/mocks"
	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
)

func TestUserHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockUserService(ctrl)
	h := NewUserHandler(svc)

	svc.EXPECT().
		CreateUser(gomock.Any(), usecase.CreateUserInput{Username: "alice", IsAdmin: true}).
		Return(&domain.User{ID: 1, Username: "alice", IsAdmin: true}, nil)
	svc.EXPECT().
		CreateUser(gomock.Any(), usecase.CreateUserInput{Username: "alice"}).
		Return(nil, domain.ErrUsernameTaken)
	svc.EXPECT().GetUser(gomock.Any(), int64(1)).Return(&domain.User{ID: 1, Username: "alice"}, nil)
	svc.EXPECT().ListUsers(gomock.Any(), 50, 0).Return([]*domain.User{{ID: 1}}, nil)

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(t, http.MethodPost, "/users", dto.CreateUserRequest{Username: "alice", IsAdmin: true}, "", 0))
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	h.Create(rec, newRequest(t, http.MethodPost, "/users", dto.CreateUserRequest{Username: "alice"}, "", 0))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.Get(rec, newRequest(t, http.MethodGet, "/users/1", nil, "1", 0))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.List(rec, newRequest(t, http.MethodGet, "/users", nil, "", 0))
	assert.Equal(t, http.StatusOK, rec.Code)
}

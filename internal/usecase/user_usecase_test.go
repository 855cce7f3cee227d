package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/iho/panelledger/internal/domain"
	"github.com/iho/panelledger/internal/usecase"
	"github.com/iho/panelledger/internal/usecase/mocks"
)

func TestUserUseCase_CreateUser(t *testing.T) {
	uc := usecase.NewUserUseCase(mocks.NewMockUserRepository())
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, usecase.CreateUserInput{Username: " alice ", IsAdmin: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID == 0 || user.Username != "alice" || !user.IsAdmin {
		t.Errorf("unexpected user %+v", user)
	}
	if user.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}

	if _, err := uc.CreateUser(ctx, usecase.CreateUserInput{Username: "alice"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Errorf("expected ErrUsernameTaken, got %v", err)
	}

	if _, err := uc.CreateUser(ctx, usecase.CreateUserInput{Username: strings.Repeat("a", domain.MaxUsernameLength+1)}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserUseCase_GetAndList(t *testing.T) {
	uc := usecase.NewUserUseCase(mocks.NewMockUserRepository())
	ctx := context.Background()

	a, _ := uc.CreateUser(ctx, usecase.CreateUserInput{Username: "a"})
	_, _ = uc.CreateUser(ctx, usecase.CreateUserInput{Username: "b"})

	got, err := uc.GetUser(ctx, a.ID)
	if err != nil || got.Username != "a" {
		t.Fatalf("unexpected user %+v %v", got, err)
	}

	if _, err := uc.GetUser(ctx, 404); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}

	users, err := uc.ListUsers(ctx, 0, 0)
	if err != nil || len(users) != 2 {
		t.Fatalf("expected two users, got %d %v", len(users), err)
	}
}

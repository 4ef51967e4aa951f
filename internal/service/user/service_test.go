package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kavyanair/mindhaven/backend/internal/domain"
	"github.com/kavyanair/mindhaven/backend/internal/repository"
	userservice "github.com/kavyanair/mindhaven/backend/internal/service/user"
)

func TestRegisterAndLogin(t *testing.T) {
	svc := userservice.NewService(repository.NewMemoryUserStore())
	ctx := context.Background()

	id, err := svc.Register(ctx, "Asha", "s3cret", "Asha N")
	if err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero user id")
	}

	u, err := svc.Login(ctx, "asha", "s3cret")
	if err != nil {
		t.Fatalf("Login err: %v", err)
	}
	if u.ID != id || u.Name != "Asha N" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestRegisterNormalizesUsernameCase(t *testing.T) {
	svc := userservice.NewService(repository.NewMemoryUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Asha", "pw", "Asha"); err != nil {
		t.Fatalf("Register err: %v", err)
	}
	if _, err := svc.Register(ctx, "ASHA", "pw2", "Other"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("err = %v, want ErrUserExists", err)
	}

	// Login must work regardless of the case used at registration.
	if _, err := svc.Login(ctx, "aShA", "pw"); err != nil {
		t.Fatalf("Login err: %v", err)
	}
}

func TestRegisterRequiresAllFields(t *testing.T) {
	svc := userservice.NewService(repository.NewMemoryUserStore())
	ctx := context.Background()

	cases := [][3]string{
		{"", "pw", "Name"},
		{"user", "", "Name"},
		{"user", "pw", "  "},
	}
	for _, c := range cases {
		if _, err := svc.Register(ctx, c[0], c[1], c[2]); !errors.Is(err, domain.ErrMissingField) {
			t.Fatalf("Register(%q,%q,%q) err = %v, want ErrMissingField", c[0], c[1], c[2], err)
		}
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := userservice.NewService(repository.NewMemoryUserStore())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "asha", "s3cret", "Asha"); err != nil {
		t.Fatalf("Register err: %v", err)
	}

	if _, err := svc.Login(ctx, "asha", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, "nobody", "s3cret"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown user err = %v, want ErrInvalidCredentials", err)
	}
}

package auth

import (
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/leadflowhq/leadflow-backend/internal/users"
	pkgAuth "github.com/leadflowhq/leadflow-backend/pkg/auth"
	"github.com/leadflowhq/leadflow-backend/pkg/config"
	"github.com/leadflowhq/leadflow-backend/pkg/db/models"
	"github.com/leadflowhq/leadflow-backend/pkg/enums"
	pkgerrors "github.com/leadflowhq/leadflow-backend/pkg/errors"
	"github.com/leadflowhq/leadflow-backend/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:          "test-secret",
		Issuer:          "leadflow",
		ExpirationHours: 24,
	}
}

func buildTestService(t *testing.T, repo *stubUserRepo) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:  repo,
		JWTConfig: testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestServiceRegisterDefaultsToAdmin(t *testing.T) {
	repo := &stubUserRepo{}
	svc := buildTestService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  New.User@Example.COM ",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if resp.User.Email != "new.user@example.com" {
		t.Fatalf("expected normalized email, got %q", resp.User.Email)
	}
	if resp.User.Role != enums.RoleAdmin {
		t.Fatalf("expected default admin role, got %s", resp.User.Role)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.Token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != resp.User.ID {
		t.Fatalf("expected claim id %d, got %d", resp.User.ID, claims.UserID)
	}
	if claims.Role != enums.RoleAdmin {
		t.Fatalf("expected admin role claim, got %s", claims.Role)
	}
}

func TestServiceRegisterDuplicateEmail(t *testing.T) {
	repo := &stubUserRepo{}
	svc := buildTestService(t, repo)

	if _, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "dup@example.com",
		Password: "secret123",
	}); err != nil {
		t.Fatalf("first register: %v", err)
	}

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "DUP@example.com",
		Password: "other456",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceRegisterConcurrentDuplicateEmail(t *testing.T) {
	repo := &stubUserRepo{
		createErr: errors.New(`duplicate key value violates unique constraint "idx_users_email"`),
	}
	svc := buildTestService(t, repo)

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "race@example.com",
		Password: "secret123",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
	if typed.Message() != "user with this email already exists" {
		t.Fatalf("unexpected message %q", typed.Message())
	}
}

func TestServiceRegisterRejectsUnknownRole(t *testing.T) {
	svc := buildTestService(t, &stubUserRepo{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "role@example.com",
		Password: "secret123",
		Role:     "superuser",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceLogin(t *testing.T) {
	password := "secret123"
	repo := &stubUserRepo{}
	repo.seed(&models.User{
		ID:           1,
		Email:        "user@example.com",
		PasswordHash: mustHashPassword(t, password),
		Role:         enums.RoleManager,
	})
	svc := buildTestService(t, repo)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "User@Example.com",
		Password: password,
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.User.Role != enums.RoleManager {
		t.Fatalf("expected manager role, got %s", resp.User.Role)
	}
	if resp.Token == "" {
		t.Fatal("expected a signed token")
	}
}

func TestServiceLoginFailuresAreIndistinguishable(t *testing.T) {
	repo := &stubUserRepo{}
	repo.seed(&models.User{
		ID:           1,
		Email:        "known@example.com",
		PasswordHash: mustHashPassword(t, "right-password"),
		Role:         enums.RoleAdmin,
	})
	svc := buildTestService(t, repo)

	_, unknownErr := svc.Login(context.Background(), LoginRequest{
		Email:    "missing@example.com",
		Password: "whatever",
	})
	_, wrongErr := svc.Login(context.Background(), LoginRequest{
		Email:    "known@example.com",
		Password: "wrong-password",
	})

	unknownTyped := pkgerrors.As(unknownErr)
	wrongTyped := pkgerrors.As(wrongErr)
	if unknownTyped == nil || wrongTyped == nil {
		t.Fatalf("expected typed errors, got %v / %v", unknownErr, wrongErr)
	}
	if unknownTyped.Code() != pkgerrors.CodeUnauthorized || wrongTyped.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for both, got %s / %s", unknownTyped.Code(), wrongTyped.Code())
	}
	if unknownTyped.Message() != wrongTyped.Message() {
		t.Fatalf("failure messages must match: %q vs %q", unknownTyped.Message(), wrongTyped.Message())
	}
}

func TestServiceMe(t *testing.T) {
	repo := &stubUserRepo{}
	repo.seed(&models.User{
		ID:    7,
		Email: "me@example.com",
		Role:  enums.RoleAdmin,
	})
	svc := buildTestService(t, repo)

	dto, err := svc.Me(context.Background(), 7)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if dto.Email != "me@example.com" {
		t.Fatalf("unexpected email %q", dto.Email)
	}

	_, err = svc.Me(context.Background(), 999)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

type stubUserRepo struct {
	byEmail   map[string]*models.User
	byID      map[int64]*models.User
	nextID    int64
	createErr error
}

func (s *stubUserRepo) seed(user *models.User) {
	s.ensure()
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	if user.ID >= s.nextID {
		s.nextID = user.ID + 1
	}
}

func (s *stubUserRepo) ensure() {
	if s.byEmail == nil {
		s.byEmail = map[string]*models.User{}
		s.byID = map[int64]*models.User{}
		s.nextID = 1
	}
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	s.ensure()
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = s.nextID
	s.nextID++
	s.byEmail[user.Email] = user
	s.byID[user.ID] = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.ensure()
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	s.ensure()
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

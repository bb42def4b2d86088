package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/punchdesk/attendance-backend-go/internal/domain/auth"
	"github.com/punchdesk/attendance-backend-go/internal/domain/user"
	"github.com/punchdesk/attendance-backend-go/internal/pkg/jwt"
)

const signupSecret = "letmein-secret"

type fakeUserRepo struct {
	users  map[string]user.User // keyed by username
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]user.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.nextID++
	u.ID = fmt.Sprintf("user-%d", f.nextID)
	f.users[u.Username] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (user.User, error) {
	if u, ok := f.users[username]; ok {
		return u, nil
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetByEmployeeCode(ctx context.Context, code string) (user.User, error) {
	for _, u := range f.users {
		if u.EmployeeCode == code {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) GetWithLocation(ctx context.Context, id string) (user.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepo) List(ctx context.Context) ([]user.User, error) { return nil, nil }

func (f *fakeUserRepo) ListActiveIDsByRoles(ctx context.Context, roles []user.Role) ([]string, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, u user.User) error { return nil }

func seedUser(t *testing.T, repo *fakeUserRepo, username, password string, status user.Status) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), user.User{
		Username:     username,
		Password:     string(hashed),
		EmployeeCode: "EMP-" + username,
		Role:         user.RoleStaff,
		Status:       status,
	})
	require.NoError(t, err)
}

func newTestService(repo *fakeUserRepo) auth.Service {
	return NewAuthService(repo, jwt.NewJWTService("test-secret", "24h"), signupSecret)
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "correct-horse", user.StatusActive)
	seedUser(t, repo, "bob", "battery-staple", user.StatusInactive)
	svc := newTestService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login(context.Background(), auth.LoginRequest{
			Username: "alice", Password: "correct-horse",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "alice", resp.Username)
		assert.Equal(t, string(user.RoleStaff), resp.Role)
		assert.Greater(t, resp.ExpiresAt, int64(0))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Username: "alice", Password: "wrong",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Username: "mallory", Password: "whatever",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), auth.LoginRequest{
			Username: "bob", Password: "battery-staple",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := svc.Login(context.Background(), auth.LoginRequest{})
		assert.Error(t, err)
	})
}

func TestSignup(t *testing.T) {
	repo := newFakeUserRepo()
	seedUser(t, repo, "alice", "correct-horse", user.StatusActive)
	svc := newTestService(repo)

	t.Run("creates admin account", func(t *testing.T) {
		resp, err := svc.Signup(context.Background(), auth.SignupRequest{
			Username:     "founder",
			Password:     "long-enough-pass",
			SignupSecret: signupSecret,
			EmployeeCode: "EMP001",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, string(user.RoleAdmin), resp.Role)

		created, err := repo.GetByUsername(context.Background(), "founder")
		require.NoError(t, err)
		assert.Equal(t, user.RoleAdmin, created.Role)
		assert.Equal(t, user.StatusActive, created.Status)
		// stored password must be a hash, never the plaintext
		assert.NotEqual(t, "long-enough-pass", created.Password)
	})

	t.Run("wrong signup secret", func(t *testing.T) {
		_, err := svc.Signup(context.Background(), auth.SignupRequest{
			Username:     "intruder",
			Password:     "long-enough-pass",
			SignupSecret: "guess",
			EmployeeCode: "EMP999",
		})
		assert.ErrorIs(t, err, auth.ErrInvalidSignupSecret)
	})

	t.Run("username taken", func(t *testing.T) {
		_, err := svc.Signup(context.Background(), auth.SignupRequest{
			Username:     "alice",
			Password:     "long-enough-pass",
			SignupSecret: signupSecret,
			EmployeeCode: "EMP777",
		})
		assert.ErrorIs(t, err, user.ErrUsernameTaken)
	})

	t.Run("employee code taken", func(t *testing.T) {
		_, err := svc.Signup(context.Background(), auth.SignupRequest{
			Username:     "newcomer",
			Password:     "long-enough-pass",
			SignupSecret: signupSecret,
			EmployeeCode: "EMP-alice",
		})
		assert.ErrorIs(t, err, user.ErrEmployeeCodeTaken)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Signup(context.Background(), auth.SignupRequest{
			Username:     "shorty",
			Password:     "short",
			SignupSecret: signupSecret,
			EmployeeCode: "EMP555",
		})
		assert.Error(t, err)
	})
}

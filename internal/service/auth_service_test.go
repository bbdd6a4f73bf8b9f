package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/bank-sampah-api/internal/models"
	appErrors "github.com/noah-isme/bank-sampah-api/pkg/errors"
)

type mockAuthUserRepo struct {
	users         map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
	revoked       []string
}

func (m *mockAuthUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) UpdateLastLogin(ctx context.Context, id string, ts time.Time) error {
	return nil
}

func (m *mockAuthUserRepo) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	if m.refreshTokens == nil {
		m.refreshTokens = make(map[string]*models.RefreshToken)
	}
	cp := *token
	m.refreshTokens[token.Token] = &cp
	return nil
}

func (m *mockAuthUserRepo) FindRefreshToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	if t, ok := m.refreshTokens[token]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthUserRepo) RevokeRefreshToken(ctx context.Context, id string, revokedAt time.Time) error {
	m.revoked = append(m.revoked, id)
	for _, t := range m.refreshTokens {
		if t.ID == id {
			t.Revoked = true
		}
	}
	return nil
}

type mockAuthStudentRepo struct {
	students map[string]*models.Student
}

func (m *mockAuthStudentRepo) FindByID(ctx context.Context, id string) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAuthStudentRepo) FindByNIS(ctx context.Context, nis string) (*models.Student, error) {
	for _, s := range m.students {
		if s.NIS == nis {
			cp := *s
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func newAuthFixture(t *testing.T) (*AuthService, *mockAuthUserRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rahasia123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &mockAuthUserRepo{users: map[string]*models.User{
		"u1": {ID: "u1", Username: "admin", PasswordHash: string(hash), FullName: "Petugas Bank Sampah", Role: models.RoleAdmin, Active: true},
	}}
	students := &mockAuthStudentRepo{students: map[string]*models.Student{
		"s1": {ID: "s1", NIS: "12345", Name: "Siswa Satu", Class: "7A"},
	}}
	svc := NewAuthService(users, students, nil, nil, AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  time.Hour,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "bank-sampah-api",
	})
	return svc, users
}

func TestLoginStudentByNIS(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.LoginStudent(context.Background(), models.StudentLoginRequest{NIS: "12345"})
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, resp.Role)
	require.NotNil(t, resp.Student)
	assert.Equal(t, "s1", resp.Student.ID)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "s1", claims.SubjectID)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, "12345", claims.NIS)
}

func TestLoginStudentUnknownNIS(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.LoginStudent(context.Background(), models.StudentLoginRequest{NIS: "99999"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestLoginAdminSuccess(t *testing.T) {
	svc, _ := newAuthFixture(t)

	resp, err := svc.LoginAdmin(context.Background(), models.AdminLoginRequest{Username: "admin", Password: "rahasia123"})
	require.NoError(t, err)

	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.Nil(t, resp.Student)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.SubjectID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
}

func TestLoginAdminWrongPassword(t *testing.T) {
	svc, _ := newAuthFixture(t)

	_, err := svc.LoginAdmin(context.Background(), models.AdminLoginRequest{Username: "admin", Password: "salah"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestRefreshTokenRotates(t *testing.T) {
	svc, users := newAuthFixture(t)

	login, err := svc.LoginStudent(context.Background(), models.StudentLoginRequest{NIS: "12345"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)

	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.Len(t, users.revoked, 1, "used refresh token must be revoked")

	// The rotated-out token cannot be used again.
	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
}

func TestValidateTokenRejectsTamperedToken(t *testing.T) {
	svc, _ := newAuthFixture(t)

	login, err := svc.LoginStudent(context.Background(), models.StudentLoginRequest{NIS: "12345"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(login.AccessToken + "x")
	require.Error(t, err)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, users := newAuthFixture(t)

	login, err := svc.LoginAdmin(context.Background(), models.AdminLoginRequest{Username: "admin", Password: "rahasia123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), login.RefreshToken))
	assert.Len(t, users.revoked, 1)

	_, err = svc.RefreshToken(context.Background(), models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
}

package service

import (
	"testing"

	"garagem/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memAdminRepo struct {
	admins map[string]*repository.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: make(map[string]*repository.Admin)}
}

func (r *memAdminRepo) GetByEmail(email string) (*repository.Admin, error) {
	return r.admins[email], nil
}

func (r *memAdminRepo) CreateAdmin(email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	r.admins[email] = &repository.Admin{ID: len(r.admins) + 1, Email: email, PasswordHash: string(hash)}
	return nil
}

func TestCreateAdminAndLogin(t *testing.T) {
	repo := newMemAdminRepo()
	svc := NewAdminAuthService(repo, "test-secret")

	require.NoError(t, svc.CreateAdmin("admin@garage.com", "secret"))

	token, err := svc.Login("admin@garage.com", "secret")
	require.NoError(t, err)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
}

func TestCreateAdminRejectsEmptyFields(t *testing.T) {
	svc := NewAdminAuthService(newMemAdminRepo(), "test-secret")

	assert.Error(t, svc.CreateAdmin("", "secret"))
	assert.Error(t, svc.CreateAdmin("admin@garage.com", ""))
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newMemAdminRepo()
	svc := NewAdminAuthService(repo, "test-secret")
	require.NoError(t, svc.CreateAdmin("admin@garage.com", "secret"))

	_, err := svc.Login("admin@garage.com", "wrong")
	assert.Error(t, err)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	svc := NewAdminAuthService(newMemAdminRepo(), "test-secret")

	_, err := svc.Login("nobody@garage.com", "secret")
	assert.Error(t, err)
}

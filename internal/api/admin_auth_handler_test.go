package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	token     string
	loginErr  error
	created   []string
	createErr error
}

func (f *fakeAuthService) Login(email, password string) (string, error) {
	return f.token, f.loginErr
}

func (f *fakeAuthService) CreateAdmin(email, password string) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, email)
	return nil
}

func TestLogin(t *testing.T) {
	handler := NewAdminAuthHandler(&fakeAuthService{token: "signed.jwt.token"})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"email":"admin@garage.com","password":"secret"}`))
	handler.Login(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"token":"signed.jwt.token"}`, rr.Body.String())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	handler := NewAdminAuthHandler(&fakeAuthService{loginErr: errors.New("invalid credentials")})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(`{"email":"admin@garage.com","password":"wrong"}`))
	handler.Login(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreateAdmin(t *testing.T) {
	svc := &fakeAuthService{}
	handler := NewAdminAuthHandler(svc)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(`{"email":"new@garage.com","password":"secret"}`))
	handler.CreateAdmin(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	require.Len(t, svc.created, 1)
	assert.Equal(t, "new@garage.com", svc.created[0])
}

func TestCreateAdminFailure(t *testing.T) {
	handler := NewAdminAuthHandler(&fakeAuthService{createErr: errors.New("db down")})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(`{"email":"new@garage.com","password":"secret"}`))
	handler.CreateAdmin(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestCreateAdminBadBody(t *testing.T) {
	svc := &fakeAuthService{}
	handler := NewAdminAuthHandler(svc)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(`{`))
	handler.CreateAdmin(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, svc.created)
}

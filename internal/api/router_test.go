package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"contacts_api/internal/app/service"
	"contacts_api/internal/common"
	"contacts_api/internal/common/security"
	"contacts_api/internal/domain/model"
	"contacts_api/internal/platform/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memUserRepo struct {
	byEmail map[string]*model.User
}

func (m *memUserRepo) Create(ctx context.Context, user *model.User) error {
	if _, exists := m.byEmail[user.Email]; exists {
		return common.BadRequest("User already exists")
	}
	stored := *user
	m.byEmail[user.Email] = &stored
	return nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return nil, common.NotFound("User not found")
	}
	copied := *user
	return &copied, nil
}

func (m *memUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	for _, user := range m.byEmail {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, common.NotFound("User not found")
}

type memContactRepo struct {
	contacts map[string]*model.Contact
}

func (m *memContactRepo) Create(ctx context.Context, contact *model.Contact) error {
	stored := *contact
	m.contacts[contact.ID] = &stored
	return nil
}

func (m *memContactRepo) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	contact, ok := m.contacts[id]
	if !ok {
		return nil, common.NotFound("Contact not found")
	}
	copied := *contact
	return &copied, nil
}

func (m *memContactRepo) FindByOwner(ctx context.Context, ownerID string) ([]model.Contact, error) {
	result := []model.Contact{}
	for _, contact := range m.contacts {
		if contact.OwnerID == ownerID {
			result = append(result, *contact)
		}
	}
	return result, nil
}

func (m *memContactRepo) Update(ctx context.Context, contact *model.Contact) error {
	if _, ok := m.contacts[contact.ID]; !ok {
		return common.NotFound("Contact not found")
	}
	stored := *contact
	m.contacts[contact.ID] = &stored
	return nil
}

func (m *memContactRepo) Delete(ctx context.Context, id string) error {
	if _, ok := m.contacts[id]; !ok {
		return common.NotFound("Contact not found")
	}
	delete(m.contacts, id)
	return nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	cfg := &config.Config{AppEnv: "production", JWTSecret: []byte("router-test-secret"), JWTExp: 10 * time.Minute}
	tokens := security.NewTokenService(cfg.JWTSecret, cfg.JWTExp)
	authService := service.NewAuthService(&memUserRepo{byEmail: map[string]*model.User{}}, tokens, 10)
	contactService := service.NewContactService(&memContactRepo{contacts: map[string]*model.Contact{}}, nil)

	return NewRouter(cfg, zap.NewNop(), tokens, authService, contactService)
}

func do(t *testing.T, router http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	decoded := map[string]interface{}{}
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func registerAndLogin(t *testing.T, router http.Handler, username, email, password string) string {
	t.Helper()

	rec, _ := do(t, router, http.MethodPost, "/user/register", "",
		map[string]string{"username": username, "email": email, "password": password})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := do(t, router, http.MethodPost, "/user/login", "",
		map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestRegisterLoginAddList(t *testing.T) {
	router := newTestRouter(t)

	rec, body := do(t, router, http.MethodPost, "/user/register", "",
		map[string]string{"username": "john", "email": "j@x.com", "password": "123456"})
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "j@x.com", body["email"])
	assert.Equal(t, "john", body["username"])

	rec, body = do(t, router, http.MethodPost, "/user/login", "",
		map[string]string{"email": "j@x.com", "password": "123456"})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := body["accessToken"].(string)
	require.NotEmpty(t, token)
	assert.Equal(t, "j@x.com", body["email"])
	assert.Equal(t, "john", body["username"])

	rec, body = do(t, router, http.MethodPost, "/contact/add", token,
		map[string]string{"name": "A", "email": "a@b.com", "phone": "555"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A", body["name"])
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, "555", body["phone"])

	rec, body = do(t, router, http.MethodGet, "/contact/all", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	contacts, ok := body["contacts"].([]interface{})
	require.True(t, ok)
	require.Len(t, contacts, 1)
	contact := contacts[0].(map[string]interface{})
	assert.Equal(t, "A", contact["name"])
}

func TestRegisterValidation(t *testing.T) {
	router := newTestRouter(t)

	rec, body := do(t, router, http.MethodPost, "/user/register", "",
		map[string]string{"username": "john", "email": "j@x.com"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation Error", body["title"])
	assert.Equal(t, false, body["success"])

	// User never got created, so login must fail.
	rec, _ = do(t, router, http.MethodPost, "/user/login", "",
		map[string]string{"email": "j@x.com", "password": "anything"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRegisterDuplicate(t *testing.T) {
	router := newTestRouter(t)

	payload := map[string]string{"username": "john", "email": "j@x.com", "password": "123456"}
	rec, _ := do(t, router, http.MethodPost, "/user/register", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, body := do(t, router, http.MethodPost, "/user/register", "", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "User already exists", body["message"])
}

func TestLoginWrongPassword(t *testing.T) {
	router := newTestRouter(t)
	registerAndLogin(t, router, "john", "j@x.com", "123456")

	rec, body := do(t, router, http.MethodPost, "/user/login", "",
		map[string]string{"email": "j@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", body["title"])
}

func TestCurrentUser(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "john", "j@x.com", "123456")

	rec, body := do(t, router, http.MethodGet, "/user/current", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	user, ok := body["user"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "john", user["username"])
	assert.Equal(t, "j@x.com", user["email"])
	assert.NotEmpty(t, user["id"])
}

func TestContactRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/contact/all"},
		{http.MethodGet, "/contact/get/" + uuid.NewString()},
		{http.MethodPost, "/contact/add"},
		{http.MethodPut, "/contact/update/" + uuid.NewString()},
		{http.MethodDelete, "/contact/delete/" + uuid.NewString()},
	}

	for _, tt := range paths {
		rec, body := do(t, router, tt.method, tt.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tt.method, tt.path)
		assert.Equal(t, "Not authorized, no token", body["message"])
	}
}

func TestContactIDValidation(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "john", "j@x.com", "123456")

	// Malformed id is a client input error, not a missing resource.
	rec, body := do(t, router, http.MethodGet, "/contact/get/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid ID format", body["message"])

	// Well-formed but absent id is a missing resource.
	rec, _ = do(t, router, http.MethodGet, "/contact/get/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCrossUserAccessForbidden(t *testing.T) {
	router := newTestRouter(t)
	aliceToken := registerAndLogin(t, router, "alice", "alice@x.com", "123456")
	bobToken := registerAndLogin(t, router, "bob", "bob@x.com", "654321")

	rec, _ := do(t, router, http.MethodPost, "/contact/add", aliceToken,
		map[string]string{"name": "A", "email": "a@b.com", "phone": "555"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := do(t, router, http.MethodGet, "/contact/all", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	contacts := body["contacts"].([]interface{})
	require.Len(t, contacts, 1)
	contactID := contacts[0].(map[string]interface{})["id"].(string)

	rec, body = do(t, router, http.MethodGet, "/contact/get/"+contactID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden", body["title"])

	rec, _ = do(t, router, http.MethodPut, "/contact/update/"+contactID, bobToken,
		map[string]string{"name": "B", "email": "b@b.com", "phone": "666"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = do(t, router, http.MethodDelete, "/contact/delete/"+contactID, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Bob's list never leaks Alice's contact, and the record survived.
	rec, body = do(t, router, http.MethodGet, "/contact/all", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, body["contacts"])

	rec, body = do(t, router, http.MethodGet, "/contact/get/"+contactID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A", body["contact"].(map[string]interface{})["name"])
}

func TestContactUpdateAndDelete(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "john", "j@x.com", "123456")

	rec, _ := do(t, router, http.MethodPost, "/contact/add", token,
		map[string]string{"name": "A", "email": "a@b.com", "phone": "555"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, body := do(t, router, http.MethodGet, "/contact/all", token, nil)
	contactID := body["contacts"].([]interface{})[0].(map[string]interface{})["id"].(string)

	rec, body = do(t, router, http.MethodPut, "/contact/update/"+contactID, token,
		map[string]string{"name": "B", "email": "b@b.com", "phone": "666"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := body["contact"].(map[string]interface{})
	assert.Equal(t, "B", updated["name"])
	assert.Equal(t, "666", updated["phone"])

	// Partial payload is rejected, update is full-replace.
	rec, _ = do(t, router, http.MethodPut, "/contact/update/"+contactID, token,
		map[string]string{"name": "C"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = do(t, router, http.MethodDelete, "/contact/delete/"+contactID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "B", body["contact"].(map[string]interface{})["name"])

	rec, _ = do(t, router, http.MethodGet, "/contact/get/"+contactID, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	rec, _ := do(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

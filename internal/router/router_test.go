package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"

	"petify/internal/adapters/auth/jwt"
	"petify/internal/adapters/auth/password"
	"petify/internal/router"
)

type testEnv struct {
	url     string
	storage router.Storage
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()

	opts := testOptions()
	ts := httptest.NewServer(router.NewRouter(opts))
	t.Cleanup(ts.Close)

	return &testEnv{url: ts.URL, storage: opts.Storage}
}

func testOptions() router.Options {
	tokens := jwt.NewManager(jwt.Config{Secret: "test-secret", Audience: "petify:auth", TTL: time.Hour})
	return router.Options{
		Storage: router.MemoryStorage(),
		Tokens:  jwt.NewVerifier(tokens),
		Issuer:  tokens,
		Hasher:  &password.Bcrypt{Cost: bcrypt.MinCost},
	}
}

func TestHTTP_RootAndHealth(t *testing.T) {
	env := newEnv(t)

	st, body := doReq(t, env.url, "GET", "/", "", nil)
	if st != http.StatusOK || !strings.Contains(string(body), "Petify backend is running") {
		t.Fatalf("root: got %d body=%s", st, string(body))
	}

	st, body = doReq(t, env.url, "GET", "/health", "", nil)
	if st != http.StatusOK || string(body) != "ok" {
		t.Fatalf("health: got %d body=%s", st, string(body))
	}
}

func TestHTTP_SwaggerCoversRoutes(t *testing.T) {
	env := newEnv(t)

	st, body := doReq(t, env.url, "GET", "/swagger/doc.json", "", nil)
	if st != http.StatusOK {
		t.Fatalf("swagger doc: got %d", st)
	}
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		t.Fatalf("decode swagger doc: %v", err)
	}

	routes, ok := router.NewRouter(testOptions()).(chi.Routes)
	if !ok {
		t.Fatal("router is not a chi.Routes")
	}
	undocumented := map[string]bool{"/": true, "/health": true, "/swagger/*": true}
	err := chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		if len(route) > 1 {
			route = strings.TrimSuffix(route, "/")
		}
		if undocumented[route] {
			return nil
		}
		if _, ok := doc.Paths[route][strings.ToLower(method)]; !ok {
			t.Errorf("%s %s missing from swagger doc", method, route)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
}

func TestHTTP_AuthFlow(t *testing.T) {
	env := newEnv(t)

	// sin token => 401
	{
		st, _ := doReq(t, env.url, "GET", "/users/me", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}

	token := registerAndLogin(t, env.url, "Ana@Example.com", "secret123")

	{
		st, body := doReq(t, env.url, "GET", "/users/me", token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 /users/me, got %d body=%s", st, string(body))
		}
		var me struct {
			Email    string `json:"email"`
			IsActive bool   `json:"is_active"`
		}
		_ = json.Unmarshal(body, &me)
		if me.Email != "ana@example.com" || !me.IsActive {
			t.Fatalf("unexpected me: %s", string(body))
		}
	}

	// email duplicado (case-insensitive)
	{
		st, body := doReq(t, env.url, "POST", "/auth/register", "", map[string]any{
			"email": "ANA@example.com", "password": "secret123",
		})
		if st != http.StatusBadRequest || !strings.Contains(string(body), "REGISTER_USER_ALREADY_EXISTS") {
			t.Fatalf("expected 400 duplicate register, got %d body=%s", st, string(body))
		}
	}

	// password corto => 422
	{
		st, _ := doReq(t, env.url, "POST", "/auth/register", "", map[string]any{
			"email": "short@example.com", "password": "123",
		})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 short password, got %d", st)
		}
	}

	// password incorrecto
	{
		st, body := login(t, env.url, "ana@example.com", "wrong-password")
		if st != http.StatusBadRequest || !strings.Contains(string(body), "LOGIN_BAD_CREDENTIALS") {
			t.Fatalf("expected 400 bad credentials, got %d body=%s", st, string(body))
		}
	}

	{
		st, _ := doReq(t, env.url, "POST", "/auth/logout", token, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 logout, got %d", st)
		}
	}

	// usuario común no puede administrar usuarios
	{
		st, _ := doReq(t, env.url, "GET", "/users/some-id", token, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 non-superuser, got %d", st)
		}
	}
}

func TestHTTP_InactiveUserTokenRejected(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	token := registerAndLogin(t, env.url, "bob@example.com", "secret123")

	u, err := env.storage.Repos.Users.GetByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	u.IsActive = false
	if err := env.storage.Repos.Users.Update(ctx, u); err != nil {
		t.Fatalf("update user: %v", err)
	}

	st, _ := doReq(t, env.url, "GET", "/pets", token, nil)
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive user, got %d", st)
	}

	st, body := login(t, env.url, "bob@example.com", "secret123")
	if st != http.StatusBadRequest || !strings.Contains(string(body), "LOGIN_BAD_CREDENTIALS") {
		t.Fatalf("expected 400 login of inactive user, got %d body=%s", st, string(body))
	}
}

func TestHTTP_SuperuserManagesUsers(t *testing.T) {
	env := newEnv(t)
	ctx := context.Background()

	adminToken := registerAndLogin(t, env.url, "admin@example.com", "secret123")
	_ = registerAndLogin(t, env.url, "eve@example.com", "secret123")

	admin, _ := env.storage.Repos.Users.GetByEmail(ctx, "admin@example.com")
	admin.IsSuperuser = true
	if err := env.storage.Repos.Users.Update(ctx, admin); err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	eve, _ := env.storage.Repos.Users.GetByEmail(ctx, "eve@example.com")

	{
		st, body := doReq(t, env.url, "PATCH", "/users/"+eve.ID, adminToken, map[string]any{"is_verified": true})
		if st != http.StatusOK || !strings.Contains(string(body), `"is_verified":true`) {
			t.Fatalf("expected 200 patch user, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, env.url, "DELETE", "/users/"+eve.ID, adminToken, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete user, got %d", st)
		}
	}
	{
		st, body := doReq(t, env.url, "GET", "/users/"+eve.ID, adminToken, nil)
		if st != http.StatusNotFound || !strings.Contains(string(body), "User not found") {
			t.Fatalf("expected 404 deleted user, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_OwnershipAndCascade(t *testing.T) {
	env := newEnv(t)

	owner := registerAndLogin(t, env.url, "owner@example.com", "secret123")
	other := registerAndLogin(t, env.url, "other@example.com", "secret123")

	petID := createID(t, env.url, owner, "/pets", map[string]any{
		"name": "Milo", "species": "dog", "breed": "mixed",
	})
	habitID := createID(t, env.url, owner, "/pets/"+petID+"/habits", map[string]any{"title": "Duerme de día"})
	recordID := createID(t, env.url, owner, "/pets/"+petID+"/health-records", map[string]any{
		"record_type": "vaccination", "title": "Rabia",
	})
	eventID := createID(t, env.url, owner, "/events", map[string]any{
		"pet_id": petID, "type": "walk", "title": "Paseo", "start_at": "2025-01-01T10:00:00",
	})

	// mascota ajena => 404 (no se revela que existe)
	{
		st, body := doReq(t, env.url, "GET", "/pets/"+petID, other, nil)
		if st != http.StatusNotFound || !strings.Contains(string(body), "Pet not found") {
			t.Fatalf("expected 404 foreign pet, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, env.url, "GET", "/pets/"+petID+"/habits", other, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 foreign habits list, got %d", st)
		}
	}
	{
		st, _ := doReq(t, env.url, "POST", "/events", other, map[string]any{
			"pet_id": petID, "type": "walk", "title": "x", "start_at": "2025-01-01T10:00:00",
		})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 event on foreign pet, got %d", st)
		}
	}
	// hijos ajenos por id => 403
	{
		st, _ := doReq(t, env.url, "DELETE", "/habits/"+habitID, other, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 foreign habit delete, got %d", st)
		}
	}
	{
		st, _ := doReq(t, env.url, "PUT", "/health-records/"+recordID, other, map[string]any{"title": "x"})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 foreign record update, got %d", st)
		}
	}
	{
		st, _ := doReq(t, env.url, "GET", "/events/"+eventID, other, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 foreign event, got %d", st)
		}
	}
	{
		st, body := doReq(t, env.url, "GET", "/events", other, nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "[]" {
			t.Fatalf("expected empty event list for other, got %d body=%s", st, string(body))
		}
	}

	// owner borra la mascota => los hijos desaparecen
	{
		st, body := doReq(t, env.url, "DELETE", "/pets/"+petID, owner, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"deleted"`) {
			t.Fatalf("expected 200 delete pet, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, env.url, "DELETE", "/habits/"+habitID, owner, nil)
		if st != http.StatusNotFound || !strings.Contains(string(body), "Habit not found") {
			t.Fatalf("expected 404 habit after cascade, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, env.url, "PUT", "/health-records/"+recordID, owner, map[string]any{"title": "x"})
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 record after cascade, got %d", st)
		}
	}
	{
		st, _ := doReq(t, env.url, "GET", "/events/"+eventID, owner, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 event after cascade, got %d", st)
		}
	}
}

func TestHTTP_PreferencesUpsert(t *testing.T) {
	env := newEnv(t)
	token := registerAndLogin(t, env.url, "pref@example.com", "secret123")
	petID := createID(t, env.url, token, "/pets", map[string]any{"name": "Luna", "species": "cat"})

	{
		st, body := doReq(t, env.url, "GET", "/pets/"+petID+"/preferences", token, nil)
		if st != http.StatusNotFound || !strings.Contains(string(body), "Preferences not found") {
			t.Fatalf("expected 404 before upsert, got %d body=%s", st, string(body))
		}
	}

	var first struct {
		ID    string  `json:"id"`
		Likes *string `json:"likes"`
	}
	{
		st, body := doReq(t, env.url, "PUT", "/pets/"+petID+"/preferences", token, map[string]any{"likes": "pescado"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 upsert, got %d body=%s", st, string(body))
		}
		_ = json.Unmarshal(body, &first)
	}

	// segundo PUT actualiza la misma fila y conserva lo no enviado
	{
		st, body := doReq(t, env.url, "PUT", "/pets/"+petID+"/preferences", token, map[string]any{"dislikes": "aspiradora"})
		if st != http.StatusOK {
			t.Fatalf("expected 200 second upsert, got %d body=%s", st, string(body))
		}
		var second struct {
			ID       string  `json:"id"`
			Likes    *string `json:"likes"`
			Dislikes *string `json:"dislikes"`
		}
		_ = json.Unmarshal(body, &second)
		if second.ID != first.ID || second.Likes == nil || *second.Likes != "pescado" || second.Dislikes == nil {
			t.Fatalf("unexpected upsert result: %s", string(body))
		}
	}
}

func TestHTTP_EventLifecycle(t *testing.T) {
	env := newEnv(t)
	token := registerAndLogin(t, env.url, "ev@example.com", "secret123")
	petID := createID(t, env.url, token, "/pets", map[string]any{"name": "Rex", "species": "dog"})

	eventID := createID(t, env.url, token, "/events", map[string]any{
		"pet_id": petID, "type": "feeding", "title": "Comida", "start_at": "2025-01-01T08:00:00",
	})

	{
		st, body := doReq(t, env.url, "GET", "/events/"+eventID, token, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"status":"planned"`) {
			t.Fatalf("expected planned event, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, env.url, "PUT", "/events/"+eventID, token, map[string]any{"status": "bogus"})
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 invalid status, got %d", st)
		}
	}
	{
		st, body := doReq(t, env.url, "PATCH", "/events/"+eventID+"/complete", token, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"status":"done"`) {
			t.Fatalf("expected done after complete, got %d body=%s", st, string(body))
		}
	}
	{
		st, _ := doReq(t, env.url, "DELETE", "/events/"+eventID, token, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 delete event, got %d", st)
		}
	}
	{
		st, body := doReq(t, env.url, "GET", "/events/"+eventID, token, nil)
		if st != http.StatusNotFound || !strings.Contains(string(body), "Event not found") {
			t.Fatalf("expected 404 deleted event, got %d body=%s", st, string(body))
		}
	}
}

func TestHTTP_Clinics(t *testing.T) {
	env := newEnv(t)
	token := registerAndLogin(t, env.url, "cl@example.com", "secret123")

	{
		st, _ := doReq(t, env.url, "GET", "/clinics/search?lat=53.2&lng=50.1", token, nil)
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 missing radius, got %d", st)
		}
	}
	{
		st, _ := doReq(t, env.url, "GET", "/clinics/search?lat=abc&lng=50.1&radius=1000", token, nil)
		if st != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422 bad lat, got %d", st)
		}
	}
	{
		st, body := doReq(t, env.url, "GET", "/clinics/search?lat=53.2&lng=50.1&radius=1000", token, nil)
		if st != http.StatusOK || !strings.Contains(string(body), `"items":[]`) {
			t.Fatalf("expected empty items, got %d body=%s", st, string(body))
		}
	}
	{
		st, body := doReq(t, env.url, "GET", "/clinics/missing", token, nil)
		if st != http.StatusOK || strings.TrimSpace(string(body)) != "null" {
			t.Fatalf("expected 200 null, got %d body=%s", st, string(body))
		}
	}
}

func registerAndLogin(t *testing.T, baseURL, email, pass string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/register", "", map[string]any{
		"email": email, "password": pass,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register, got %d body=%s", st, string(body))
	}

	st, body = login(t, baseURL, email, pass)
	if st != http.StatusOK {
		t.Fatalf("expected 200 login, got %d body=%s", st, string(body))
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Fatalf("login: unexpected body=%s", string(body))
	}
	return resp.AccessToken
}

func login(t *testing.T, baseURL, email, pass string) (int, []byte) {
	t.Helper()

	form := url.Values{"username": {email}, "password": {pass}}
	req, err := http.NewRequest("POST", baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	body, _ := io.ReadAll(res.Body)
	return res.StatusCode, body
}

func createID(t *testing.T, baseURL, token, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, token, payload)
	if st != http.StatusOK {
		t.Fatalf("expected 200 POST %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("POST %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, token string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}

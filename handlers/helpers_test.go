package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"socialnotes/api"
	"socialnotes/auth"
	"socialnotes/authz"
	"socialnotes/config"
	"socialnotes/database"
	"socialnotes/handlers"
	"socialnotes/middleware"
	"socialnotes/storage"
)

const testPassword = "Sup3rSecret!"

type testEnv struct {
	router http.Handler
	db     *sql.DB
}

// newTestEnv stands up the whole API against an in-memory database,
// seeded with one elevated user "overlord" whose initial password equals
// its username.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := database.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Setup(db))
	require.NoError(t, database.Seed(db, zerolog.Nop(), []string{"overlord"}, bcrypt.MinCost))

	cfg := &config.Config{
		Security: config.SecurityConfig{
			TokenTTL:   time.Hour,
			BcryptCost: bcrypt.MinCost,
		},
		Users: config.UsersConfig{
			ElevatedUsers:     []string{"overlord"},
			ReservedUsernames: []string{"admin", "root", "superuser"},
		},
	}

	tokens, err := auth.NewTokenManager("handlers-test-secret", cfg.Security.TokenTTL)
	require.NoError(t, err)

	users := storage.NewUserStore(db)
	friends := storage.NewFriendshipStore(db)
	notes := storage.NewNoteStore(db)
	engine := authz.NewEngine(users, friends, zerolog.Nop())

	h := handlers.New(users, friends, notes, tokens, cfg, zerolog.Nop())
	server := api.NewServer(h,
		middleware.NewAuthenticator(tokens, zerolog.Nop()),
		middleware.NewGuards(engine),
		nil,
	)

	return &testEnv{router: server.Handler(), db: db}
}

// do issues a request against the router. A non-empty token is sent as a
// bearer credential; a non-nil body is JSON encoded.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}

func credentials(username, password string) map[string]string {
	return map[string]string{"username": username, "password": password}
}

// register creates an account with the shared test password and returns
// its id.
func (e *testEnv) register(t *testing.T, username string) int64 {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/register", "", credentials(username, testPassword))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody[struct {
		ID int64 `json:"id"`
	}](t, rec)
	return body.ID
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/login", "", credentials(username, password))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody[struct {
		AccessToken string `json:"access_token"`
	}](t, rec)
	require.NotEmpty(t, body.AccessToken)
	return body.AccessToken
}

// registerAndLogin is the common two-step for tests that just need an
// authenticated user.
func (e *testEnv) registerAndLogin(t *testing.T, username string) (int64, string) {
	t.Helper()
	id := e.register(t, username)
	return id, e.login(t, username, testPassword)
}

func userPath(id int64) string {
	return fmt.Sprintf("/users/%d", id)
}

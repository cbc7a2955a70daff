package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stockroom/apiserver/config"
	"github.com/stockroom/apiserver/internal/services"
	"github.com/stockroom/apiserver/internal/session"
	"github.com/stockroom/apiserver/internal/store"
	"github.com/stockroom/apiserver/types"
	"github.com/stretchr/testify/require"
)

// memUserRepo is an in-memory stand-in for the user store with the same
// uniqueness contract.
type memUserRepo struct {
	users  map[string]types.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]types.User), nextID: 1}
}

func (r *memUserRepo) GetByID(ctx context.Context, id int) (types.User, error) {
	for _, user := range r.users {
		if user.ID == id {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (types.User, error) {
	user, ok := r.users[username]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepo) Create(ctx context.Context, user types.User) (types.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return types.User{}, store.ErrConflict
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.Username] = user
	return user, nil
}

// memInventoryRepo mirrors the query semantics of the SQL repository:
// case-insensitive substring filter, whitelisted sort column, id tiebreak.
type memInventoryRepo struct {
	items  []types.InventoryItem
	nextID int
}

func newMemInventoryRepo() *memInventoryRepo {
	return &memInventoryRepo{nextID: 1}
}

func (r *memInventoryRepo) Insert(ctx context.Context, fields types.ItemFields) (types.InventoryItem, error) {
	item := types.InventoryItem{
		ID:       r.nextID,
		Name:     fields.Name,
		Quantity: fields.Quantity,
		Category: fields.Category,
		Price:    fields.Price,
	}
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

func (r *memInventoryRepo) List(ctx context.Context, namePattern, sortKey string) ([]types.InventoryItem, error) {
	items := make([]types.InventoryItem, 0, len(r.items))
	for _, item := range r.items {
		if namePattern != "" && !strings.Contains(strings.ToLower(item.Name), strings.ToLower(namePattern)) {
			continue
		}
		items = append(items, item)
	}

	column := store.ResolveSortColumn(sortKey)
	sort.SliceStable(items, func(i, j int) bool {
		switch column {
		case "category":
			if items[i].Category != items[j].Category {
				return items[i].Category < items[j].Category
			}
		case "price":
			if items[i].Price != items[j].Price {
				return items[i].Price < items[j].Price
			}
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (r *memInventoryRepo) Update(ctx context.Context, id int, fields types.ItemFields) error {
	for i, item := range r.items {
		if item.ID == id {
			r.items[i] = types.InventoryItem{
				ID:       id,
				Name:     fields.Name,
				Quantity: fields.Quantity,
				Category: fields.Category,
				Price:    fields.Price,
			}
			return nil
		}
	}
	return store.ErrNotFound
}

func (r *memInventoryRepo) Delete(ctx context.Context, id int) error {
	for i, item := range r.items {
		if item.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

const testCookieName = "session_token"

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	sessionCfg := config.SessionConfig{
		Backend:    "memory",
		TTL:        time.Hour,
		CookieName: testCookieName,
	}
	sessions := session.NewMemoryManager(sessionCfg.TTL)
	userService := services.NewUserService(newMemUserRepo())
	inventoryService := services.NewInventoryService(newMemInventoryRepo(), nil, zerolog.Nop())

	router := chi.NewRouter()
	router.Get("/healthz", Healthz)
	router.Route("/api", func(r chi.Router) {
		AuthRouter(r, userService, sessions, sessionCfg)
		r.Route("/inventory", func(r chi.Router) {
			r.Use(RequireSession(sessions, sessionCfg.CookieName))
			InventoryRouter(r, inventoryService)
		})
	})
	return router
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func doBearer(t *testing.T, router http.Handler, method, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func registerAndLogin(t *testing.T, router http.Handler, username, password string) *http.Cookie {
	t.Helper()

	resp := doJSON(t, router, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	resp = doJSON(t, router, http.MethodPost, "/api/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	for _, cookie := range resp.Result().Cookies() {
		if cookie.Name == testCookieName && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie in login response")
	return nil
}

func decodeItems(t *testing.T, resp *httptest.ResponseRecorder) []types.InventoryItem {
	t.Helper()
	var items []types.InventoryItem
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &items))
	return items
}

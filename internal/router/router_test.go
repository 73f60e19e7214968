package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-wtwr-api/config"
	"github.com/FACorreiaa/go-wtwr-api/internal/api/auth"
	"github.com/FACorreiaa/go-wtwr-api/internal/api/item"
	"github.com/FACorreiaa/go-wtwr-api/internal/api/user"
	"github.com/FACorreiaa/go-wtwr-api/internal/router"
	"github.com/FACorreiaa/go-wtwr-api/internal/types"
)

// memStore is an in-memory store shared by the fake repositories so the full
// request path (routing, validation, authentication, services, handlers) runs
// against consistent state.
type memStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*types.User
	items map[uuid.UUID]*types.ClothingItem
	likes map[uuid.UUID]map[uuid.UUID]bool
	order []uuid.UUID
}

func newMemStore() *memStore {
	return &memStore{
		users: make(map[uuid.UUID]*types.User),
		items: make(map[uuid.UUID]*types.ClothingItem),
		likes: make(map[uuid.UUID]map[uuid.UUID]bool),
	}
}

func (s *memStore) snapshot(itemID uuid.UUID) *types.ClothingItem {
	stored := s.items[itemID]
	likes := []uuid.UUID{}
	for userID := range s.likes[itemID] {
		likes = append(likes, userID)
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i].String() < likes[j].String() })
	copied := *stored
	copied.Likes = likes
	return &copied
}

type fakeAuthRepo struct{ store *memStore }

func (r *fakeAuthRepo) CreateUser(_ context.Context, name, avatar, email, passwordHash string) (*types.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			return nil, types.NewConflict("A user with this email already exists")
		}
	}
	now := time.Now()
	u := &types.User{ID: uuid.New(), Name: name, Avatar: avatar, Email: email,
		PasswordHash: passwordHash, CreatedAt: now, UpdatedAt: now}
	r.store.users[u.ID] = u
	copied := *u
	return &copied, nil
}

func (r *fakeAuthRepo) GetUserByEmail(_ context.Context, email string) (*types.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, u := range r.store.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, types.NewNotFound("User not found")
}

type fakeUserRepo struct{ store *memStore }

func (r *fakeUserRepo) GetUserByID(_ context.Context, userID uuid.UUID) (*types.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[userID]
	if !ok {
		return nil, types.NewNotFound("User not found")
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, userID uuid.UUID, params types.UpdateProfileParams) (*types.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	u, ok := r.store.users[userID]
	if !ok {
		return nil, types.NewNotFound("User not found")
	}
	if params.Name != nil {
		u.Name = *params.Name
	}
	if params.Avatar != nil {
		u.Avatar = *params.Avatar
	}
	u.UpdatedAt = time.Now()
	copied := *u
	return &copied, nil
}

type fakeItemRepo struct{ store *memStore }

func (r *fakeItemRepo) ListItems(_ context.Context) ([]types.ClothingItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	items := []types.ClothingItem{}
	for i := len(r.store.order) - 1; i >= 0; i-- {
		items = append(items, *r.store.snapshot(r.store.order[i]))
	}
	return items, nil
}

func (r *fakeItemRepo) GetItemByID(_ context.Context, itemID uuid.UUID) (*types.ClothingItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.items[itemID]; !ok {
		return nil, types.NewNotFound("Item not found")
	}
	return r.store.snapshot(itemID), nil
}

func (r *fakeItemRepo) CreateItem(_ context.Context, ownerID uuid.UUID, name, weather, imageURL string) (*types.ClothingItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	it := &types.ClothingItem{ID: uuid.New(), OwnerID: ownerID, Name: name,
		Weather: weather, ImageURL: imageURL, Likes: []uuid.UUID{}, CreatedAt: time.Now()}
	r.store.items[it.ID] = it
	r.store.likes[it.ID] = make(map[uuid.UUID]bool)
	r.store.order = append(r.store.order, it.ID)
	return r.store.snapshot(it.ID), nil
}

func (r *fakeItemRepo) DeleteItem(_ context.Context, itemID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.items[itemID]; !ok {
		return types.NewNotFound("Item not found")
	}
	delete(r.store.items, itemID)
	delete(r.store.likes, itemID)
	for i, id := range r.store.order {
		if id == itemID {
			r.store.order = append(r.store.order[:i], r.store.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeItemRepo) AddLike(_ context.Context, itemID, userID uuid.UUID) (*types.ClothingItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.items[itemID]; !ok {
		return nil, types.NewNotFound("Item not found")
	}
	r.store.likes[itemID][userID] = true
	return r.store.snapshot(itemID), nil
}

func (r *fakeItemRepo) RemoveLike(_ context.Context, itemID, userID uuid.UUID) (*types.ClothingItem, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.items[itemID]; !ok {
		return nil, types.NewNotFound("Item not found")
	}
	delete(r.store.likes[itemID], userID)
	return r.store.snapshot(itemID), nil
}

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtCfg := config.JWTConfig{SecretKey: "e2e-secret", TokenTTL: time.Hour, Issuer: "e2e"}
	store := newMemStore()

	authService := auth.NewAuthService(&fakeAuthRepo{store: store}, jwtCfg, logger)
	userService := user.NewUserService(&fakeUserRepo{store: store}, logger)
	itemService := item.NewItemService(&fakeItemRepo{store: store}, logger)

	return router.SetupRouter(&router.Config{
		AuthHandler:            auth.NewAuthHandler(authService, logger),
		UserHandler:            user.NewHandlerImpl(userService, logger),
		ItemHandler:            item.NewHandlerImpl(itemService, logger),
		AuthenticateMiddleware: auth.Authenticate(logger, jwtCfg),
	})
}

func do(t *testing.T, r chi.Router, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body), "body: %s", rr.Body.String())
	return body
}

func TestAPIScenario(t *testing.T) {
	r := newTestRouter(t)

	signup := func(name, email string) {
		rr := do(t, r, http.MethodPost, "/signup", "", map[string]string{
			"name": name, "avatar": "http://example.com/" + name + ".png",
			"email": email, "password": "secret1",
		})
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		assert.NotContains(t, rr.Body.String(), "password")
	}
	signin := func(email string) string {
		rr := do(t, r, http.MethodPost, "/signin", "", map[string]string{
			"email": email, "password": "secret1",
		})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		token, _ := decode(t, rr)["token"].(string)
		require.NotEmpty(t, token)
		return token
	}

	signup("alice", "alice@example.com")

	t.Run("DuplicateSignupConflicts", func(t *testing.T) {
		rr := do(t, r, http.MethodPost, "/signup", "", map[string]string{
			"name": "alice2", "avatar": "http://example.com/a2.png",
			"email": "alice@example.com", "password": "another",
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "A user with this email already exists", decode(t, rr)["message"])
	})

	t.Run("LoginFailuresAreIndistinguishable", func(t *testing.T) {
		wrongPwd := do(t, r, http.MethodPost, "/signin", "", map[string]string{
			"email": "alice@example.com", "password": "wrong",
		})
		unknown := do(t, r, http.MethodPost, "/signin", "", map[string]string{
			"email": "nobody@example.com", "password": "secret1",
		})
		assert.Equal(t, http.StatusUnauthorized, wrongPwd.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.JSONEq(t, wrongPwd.Body.String(), unknown.Body.String())
		assert.Equal(t, "Incorrect email or password", decode(t, wrongPwd)["message"])
	})

	aliceToken := signin("alice@example.com")

	t.Run("Profile", func(t *testing.T) {
		rr := do(t, r, http.MethodGet, "/users/me", aliceToken, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		body := decode(t, rr)
		assert.Equal(t, "alice@example.com", body["email"])
		assert.NotContains(t, rr.Body.String(), "password")

		// Timestamps keep the same camelCase convention as the rest of the payload
		assert.Contains(t, body, "createdAt")
		assert.Contains(t, body, "updatedAt")
		assert.NotContains(t, rr.Body.String(), "created_at")

		rr = do(t, r, http.MethodGet, "/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("UpdateProfile", func(t *testing.T) {
		rr := do(t, r, http.MethodPatch, "/users/me", aliceToken, map[string]string{"name": "Alice Prime"})
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		data := decode(t, rr)["data"].(map[string]any)
		assert.Equal(t, "Alice Prime", data["name"])
		assert.Equal(t, "http://example.com/alice.png", data["avatar"])

		// Schema violation on the optional field is still rejected
		rr = do(t, r, http.MethodPatch, "/users/me", aliceToken, map[string]string{"name": "A"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("ValidationRunsBeforeAuthentication", func(t *testing.T) {
		// No Authorization header at all: a bad body is still a 400, not a 401
		rr := do(t, r, http.MethodPost, "/items", "", map[string]string{
			"name": "Parka", "weather": "freezing", "imageUrl": "http://example.com/p.png",
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		// Same for a malformed id parameter
		rr = do(t, r, http.MethodDelete, "/items/not-a-uuid", "", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	var itemID string
	t.Run("CreateItem", func(t *testing.T) {
		body := map[string]string{"name": "Parka", "weather": "cold", "imageUrl": "http://example.com/p.png"}

		rr := do(t, r, http.MethodPost, "/items", "", body)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = do(t, r, http.MethodPost, "/items", aliceToken, body)
		require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		data := decode(t, rr)["data"].(map[string]any)
		itemID = data["id"].(string)
		assert.Equal(t, "cold", data["weather"])
		assert.Empty(t, data["likes"])
		assert.Contains(t, data, "imageUrl")
		assert.Contains(t, data, "createdAt")
		assert.NotContains(t, rr.Body.String(), "created_at")
	})

	signup("bob", "bob@example.com")
	bobToken := signin("bob@example.com")

	t.Run("LikesAreIdempotent", func(t *testing.T) {
		likeURL := fmt.Sprintf("/items/%s/likes", itemID)

		rr := do(t, r, http.MethodPut, likeURL, bobToken, nil)
		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
		data := decode(t, rr)["data"].(map[string]any)
		require.Len(t, data["likes"], 1)

		// Liking again does not duplicate the entry
		rr = do(t, r, http.MethodPut, likeURL, bobToken, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		data = decode(t, rr)["data"].(map[string]any)
		assert.Len(t, data["likes"], 1)

		rr = do(t, r, http.MethodDelete, likeURL, bobToken, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		data = decode(t, rr)["data"].(map[string]any)
		assert.Empty(t, data["likes"])

		// Unliking when no like exists is a successful no-op
		rr = do(t, r, http.MethodDelete, likeURL, bobToken, nil)
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("OnlyOwnerDeletes", func(t *testing.T) {
		rr := do(t, r, http.MethodDelete, "/items/"+itemID, bobToken, nil)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Equal(t, "You are not allowed to delete this item", decode(t, rr)["message"])

		rr = do(t, r, http.MethodDelete, "/items/"+itemID, aliceToken, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Item successfully deleted", decode(t, rr)["message"])

		// Gone from the public list
		rr = do(t, r, http.MethodGet, "/items", "", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Empty(t, decode(t, rr)["data"])

		// And a second delete is NotFound, not Forbidden, even for a non-owner
		rr = do(t, r, http.MethodDelete, "/items/"+itemID, bobToken, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("LikeMissingItem", func(t *testing.T) {
		rr := do(t, r, http.MethodPut, "/items/"+uuid.NewString()+"/likes", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Item not found", decode(t, rr)["message"])
	})

	t.Run("UnmatchedRoute", func(t *testing.T) {
		rr := do(t, r, http.MethodGet, "/nope", "", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, "Requested resource not found", decode(t, rr)["message"])
	})

	t.Run("MalformedJSONBody", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/signup", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

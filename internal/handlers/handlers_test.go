package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tavola-dev/tavola/db"
	"github.com/tavola-dev/tavola/internal/config"
	"github.com/tavola-dev/tavola/internal/router"
	"github.com/tavola-dev/tavola/internal/store"
)

func newTestRouter(t *testing.T, strict bool) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)

	dir := t.TempDir()

	st, err := store.NewFileStore(filepath.Join(dir, "data"))
	require.NoError(t, err)

	db.Store = st

	return router.NewRouter(&config.Config{
		DataDir:           filepath.Join(dir, "data"),
		UploadDir:         filepath.Join(dir, "uploads"),
		StrictOrderStatus: strict,
	})
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func doMultipart(t *testing.T, r http.Handler, method, path string, fields map[string]string, image []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}

	if image != nil {
		fw, err := mw.CreateFormFile("image", "dish.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}

	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())

	return v
}

func registration() map[string]string {
	return map[string]string{
		"name":       "Ana Torres",
		"email":      "ana@example.com",
		"address":    "Calle 1",
		"password":   "secret",
		"contact":    "555-0101",
		"nationalId": "0102030405",
	}
}

func TestUsersFlow(t *testing.T) {
	r := newTestRouter(t, true)

	w := doJSON(t, r, http.MethodPost, "/api/register", registration())
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/register", registration())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[map[string]string](t, w)["message"], "email")

	missing := registration()
	delete(missing, "address")
	missing["email"] = "other@example.com"
	w = doJSON(t, r, http.MethodPost, "/api/register", missing)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/login", map[string]string{"email": "ana@example.com", "password": "secret"})
	require.Equal(t, http.StatusOK, w.Code)
	login := decode[struct {
		User map[string]any `json:"user"`
	}](t, w)
	assert.Equal(t, "Ana Torres", login.User["name"])
	assert.NotContains(t, login.User, "password")

	w = doJSON(t, r, http.MethodPost, "/api/login", map[string]string{"email": "ana@example.com", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/change-password", map[string]string{
		"email": "ana@example.com", "oldPassword": "nope", "newPassword": "better",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/change-password", map[string]string{
		"email": "ana@example.com", "oldPassword": "secret", "newPassword": "better",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decode[[]map[string]any](t, w)
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "password")

	w = doJSON(t, r, http.MethodGet, "/api/users/ana@example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodDelete, "/api/users/ana@example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/users/ana@example.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/users/ana@example.com", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type dishResponse struct {
	Dish struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Image string  `json:"image"`
	} `json:"dish"`
}

func createDish(t *testing.T, r http.Handler) dishResponse {
	t.Helper()

	w := doMultipart(t, r, http.MethodPost, "/api/dishes", map[string]string{
		"name":        "Margherita",
		"price":       "10",
		"description": "Tomato and basil",
		"category":    "Pizza",
	}, []byte("png-bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decode[dishResponse](t, w)
}

func TestDishesFlow(t *testing.T) {
	r := newTestRouter(t, true)

	created := createDish(t, r)
	assert.NotEmpty(t, created.Dish.ID)
	assert.True(t, strings.HasPrefix(created.Dish.Image, "/uploads/"))

	w := doJSON(t, r, http.MethodGet, created.Dish.Image, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "png-bytes", w.Body.String())

	w = doMultipart(t, r, http.MethodPost, "/api/dishes", map[string]string{
		"name": "No image", "price": "5", "description": "x", "category": "y",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doMultipart(t, r, http.MethodPost, "/api/dishes", map[string]string{
		"name": "Bad price", "price": "ten", "description": "x", "category": "y",
	}, []byte("img"))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doMultipart(t, r, http.MethodPut, "/api/dishes/"+created.Dish.ID, map[string]string{
		"name": "Marinara", "price": "8", "description": "Garlic", "category": "Pizza",
	}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[dishResponse](t, w)
	assert.Equal(t, "Marinara", updated.Dish.Name)
	assert.Equal(t, created.Dish.Image, updated.Dish.Image)

	w = doMultipart(t, r, http.MethodPut, "/api/dishes/missing", map[string]string{"name": "x"}, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/dishes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = doJSON(t, r, http.MethodDelete, "/api/dishes/"+created.Dish.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/dishes/"+created.Dish.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type cartLine struct {
	DishID    string  `json:"dishId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Available bool    `json:"available"`
}

func TestCartFlow(t *testing.T) {
	r := newTestRouter(t, true)
	dish := createDish(t, r).Dish

	item := map[string]any{
		"dishId":      dish.ID,
		"name":        dish.Name,
		"price":       dish.Price,
		"image":       dish.Image,
		"description": "Tomato and basil",
		"quantity":    2,
	}

	w := doJSON(t, r, http.MethodGet, "/api/cart/u@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/cart/u@example.com", item)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	item["quantity"] = "3"
	w = doJSON(t, r, http.MethodPost, "/api/cart/u@example.com", item)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	item["quantity"] = 0
	w = doJSON(t, r, http.MethodPost, "/api/cart/u@example.com", item)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart/u@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lines := decode[[]cartLine](t, w)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.Equal(t, 10.0, lines[0].Price)
	assert.True(t, lines[0].Available)

	w = doJSON(t, r, http.MethodDelete, "/api/dishes/"+dish.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/cart/u@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	lines = decode[[]cartLine](t, w)
	require.Len(t, lines, 1)
	assert.False(t, lines[0].Available)
	assert.Equal(t, "Margherita", lines[0].Name)

	w = doJSON(t, r, http.MethodDelete, "/api/cart/u@example.com/other", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/cart/u@example.com/"+dish.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/cart/u@example.com", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/cart/nobody@example.com/"+dish.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

type orderResponse struct {
	Order struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		Status    string    `json:"status"`
		Total     float64   `json:"total"`
		CreatedAt time.Time `json:"createdAt"`
	} `json:"order"`
}

func placeOrder(t *testing.T, r http.Handler, email string) orderResponse {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"email":   email,
		"items":   []map[string]any{{"dishId": "d1", "quantity": 2}},
		"total":   20,
		"address": "Calle 1",
		"contact": "555-0101",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	return decode[orderResponse](t, w)
}

func TestOrdersFlow(t *testing.T) {
	r := newTestRouter(t, true)

	created := placeOrder(t, r, "u@example.com")
	assert.Equal(t, "Pending", created.Order.Status)
	assert.False(t, created.Order.CreatedAt.IsZero())

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{"email": "u@example.com", "total": 20})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/orders/u@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	w = doJSON(t, r, http.MethodGet, "/api/orders/other@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode[[]map[string]any](t, w), 1)

	path := "/api/orders/" + created.Order.ID + "/status"

	w = doJSON(t, r, http.MethodPut, path, map[string]string{"status": "Banana"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPut, path, map[string]string{"status": "Delivered"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPut, path, map[string]string{"status": "Preparing"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Preparing", decode[orderResponse](t, w).Order.Status)

	w = doJSON(t, r, http.MethodPut, "/api/orders/missing/status", map[string]string{"status": "Ready"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderKeepsItemsAsSent(t *testing.T) {
	r := newTestRouter(t, true)

	items := `[
		{"id":"d1","dishId":"d1","quantity":2,"category":"pasta","available":true},
		{"dishId":"d2","quantity":"2"}
	]`

	w := doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"email": "u@example.com",
		"items": json.RawMessage(items),
		"total": "35.5",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := decode[struct {
		Order struct {
			Items json.RawMessage `json:"items"`
			Total float64         `json:"total"`
		} `json:"order"`
	}](t, w)
	assert.JSONEq(t, items, string(created.Order.Items))
	assert.Equal(t, 35.5, created.Order.Total)

	w = doJSON(t, r, http.MethodGet, "/api/orders/u@example.com", nil)
	require.Equal(t, http.StatusOK, w.Code)

	stored := decode[[]struct {
		Items json.RawMessage `json:"items"`
	}](t, w)
	require.Len(t, stored, 1)
	assert.JSONEq(t, items, string(stored[0].Items))

	w = doJSON(t, r, http.MethodPost, "/api/orders", map[string]any{
		"email": "u@example.com",
		"items": "not a list",
		"total": 10,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrdersLegacyStatus(t *testing.T) {
	r := newTestRouter(t, false)

	created := placeOrder(t, r, "u@example.com")

	w := doJSON(t, r, http.MethodPut, "/api/orders/"+created.Order.ID+"/status", map[string]string{"status": "Banana"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Banana", decode[orderResponse](t, w).Order.Status)
}

func TestExports(t *testing.T) {
	r := newTestRouter(t, true)
	createDish(t, r)
	placeOrder(t, r, "u@example.com")

	for _, path := range []string{"/api/export/dishes", "/api/export/orders"} {
		w := doJSON(t, r, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, w.Code, path)
		assert.Contains(t, w.Header().Get("Content-Type"), "spreadsheetml")
		// xlsx files are zip archives
		assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")), path)
	}
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t, true)

	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, w)["status"])
}

func TestOrderUpdatesSocket(t *testing.T) {
	r := newTestRouter(t, false)

	srv := httptest.NewServer(r)
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/ws/orders/u@example.com"

	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	var welcome map[string]any
	require.NoError(t, conn.ReadJSON(&welcome))
	assert.Equal(t, "connected", welcome["type"])

	created := placeOrder(t, r, "u@example.com")
	placeOrder(t, r, "other@example.com")

	var update struct {
		Type  string `json:"type"`
		Order struct {
			ID     string `json:"id"`
			Status string `json:"status"`
		} `json:"order"`
	}
	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "order_updated", update.Type)
	assert.Equal(t, created.Order.ID, update.Order.ID)

	w := doJSON(t, r, http.MethodPut, "/api/orders/"+created.Order.ID+"/status", map[string]string{"status": "Ready"})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, conn.ReadJSON(&update))
	assert.Equal(t, "Ready", update.Order.Status)
}

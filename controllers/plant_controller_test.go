package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mpefaur/plant-vs-water/config"
	"github.com/mpefaur/plant-vs-water/models"
	"github.com/mpefaur/plant-vs-water/routes"
	"github.com/mpefaur/plant-vs-water/services"
	"github.com/mpefaur/plant-vs-water/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	config.DB = config.NewTestDB(t)
	return routes.SetupRouter()
}

func newUserToken(t *testing.T, email string) (uint, string) {
	t.Helper()
	user, err := services.NewAuthService(config.DB).Register(context.Background(), email, "hunter22", "Test User")
	require.NoError(t, err)
	token, err := utils.GenerateJWT(user.ID, user.Email)
	require.NoError(t, err)
	return user.ID, token
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreatePlantRequiresAuth(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/api/plants", "", gin.H{
		"name": "Monstera", "image_url": "https://img.example/a.jpg", "watering_interval": 7,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/plants", "not-a-jwt", gin.H{
		"name": "Monstera", "image_url": "https://img.example/a.jpg", "watering_interval": 7,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreatePlant(t *testing.T) {
	r := setupRouter(t)
	userID, token := newUserToken(t, "ana@example.com")

	w := doJSON(r, http.MethodPost, "/api/plants", token, gin.H{
		"name": "Monstera", "image_url": "https://img.example/a.jpg", "watering_interval": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var plant models.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plant))
	assert.NotEmpty(t, plant.ID)
	// Owner comes from the token, not the body.
	assert.Equal(t, userID, plant.UserID)
}

func TestCreatePlantValidation(t *testing.T) {
	r := setupRouter(t)
	_, token := newUserToken(t, "ana@example.com")

	for name, body := range map[string]gin.H{
		"missing name":     {"image_url": "https://img.example/a.jpg", "watering_interval": 7},
		"missing image":    {"name": "Monstera", "watering_interval": 7},
		"missing interval": {"name": "Monstera", "image_url": "https://img.example/a.jpg"},
		"bad interval":     {"name": "Monstera", "image_url": "https://img.example/a.jpg", "watering_interval": -1},
	} {
		w := doJSON(r, http.MethodPost, "/api/plants", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
	}

	var count int64
	config.DB.Model(&models.Plant{}).Count(&count)
	assert.Zero(t, count)
}

func TestGetPlantScopedToOwner(t *testing.T) {
	r := setupRouter(t)
	_, owner := newUserToken(t, "ana@example.com")
	_, intruder := newUserToken(t, "eve@example.com")

	w := doJSON(r, http.MethodPost, "/api/plants", owner, gin.H{
		"name": "Monstera", "image_url": "https://img.example/a.jpg", "watering_interval": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var plant models.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plant))

	w = doJSON(r, http.MethodGet, "/api/plants/"+plant.ID, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/plants/"+plant.ID, intruder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(r, http.MethodGet, "/api/plants/b65a2bd2-0000-4000-8000-000000000000", owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetPlantIncludesWateringStatus(t *testing.T) {
	r := setupRouter(t)
	userID, token := newUserToken(t, "ana@example.com")

	w := doJSON(r, http.MethodPost, "/api/plants", token, gin.H{
		"name": "Monstera", "image_url": "https://img.example/a.jpg", "watering_interval": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var plant models.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plant))

	// Never watered yet: the sentinel variant.
	w = doJSON(r, http.MethodGet, "/api/plants/"+plant.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		WateringStatus services.WateringStatus `json:"watering_status"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.WateringStatus.NeverWatered)
	assert.True(t, resp.WateringStatus.NeedsWater)

	// After a recent watering the plant no longer needs water.
	wateredAt := time.Now().Add(-1 * time.Hour)
	_, err := services.NewWateringService(config.DB, nil).Record(context.Background(), plant.ID, userID, nil, &wateredAt)
	require.NoError(t, err)

	w = doJSON(r, http.MethodGet, "/api/plants/"+plant.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.WateringStatus.NeverWatered)
	assert.False(t, resp.WateringStatus.NeedsWater)
	assert.Equal(t, 6, resp.WateringStatus.Days)
}

func TestUpdatePlantByPathParam(t *testing.T) {
	r := setupRouter(t)
	_, token := newUserToken(t, "ana@example.com")

	w := doJSON(r, http.MethodPost, "/api/plants", token, gin.H{
		"name": "Monstera", "image_url": "https://img.example/a.jpg", "watering_interval": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var plant models.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plant))

	w = doJSON(r, http.MethodPut, "/api/plants/"+plant.ID, token, gin.H{
		"name": "Monstera Deliciosa", "watering_interval": 10,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Monstera Deliciosa", updated.Name)
	assert.Equal(t, 10, updated.WateringInterval)

	w = doJSON(r, http.MethodPut, "/api/plants/"+plant.ID, token, gin.H{"name": "No Interval"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPut, "/api/plants/b65a2bd2-0000-4000-8000-000000000000", token, gin.H{
		"name": "Ghost", "watering_interval": 5,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePlant(t *testing.T) {
	r := setupRouter(t)
	_, token := newUserToken(t, "ana@example.com")

	w := doJSON(r, http.MethodPost, "/api/plants", token, gin.H{
		"name": "Monstera", "image_url": "https://img.example/a.jpg", "watering_interval": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var plant models.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plant))

	w = doJSON(r, http.MethodDelete, "/api/plants/"+plant.ID, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(r, http.MethodGet, "/api/plants/"+plant.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWaterPlantAndHistory(t *testing.T) {
	r := setupRouter(t)
	_, token := newUserToken(t, "ana@example.com")

	w := doJSON(r, http.MethodPost, "/api/plants", token, gin.H{
		"name": "Monstera", "image_url": "https://img.example/a.jpg", "watering_interval": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var plant models.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plant))

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/plants/%s/waterings", plant.ID), token, gin.H{
		"water_amount": 2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var event models.WateringEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	assert.Equal(t, plant.ID, event.PlantID)
	assert.WithinDuration(t, time.Now(), event.WateredAt, 5*time.Second)

	w = doJSON(r, http.MethodGet, fmt.Sprintf("/api/plants/%s/waterings", plant.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var events []models.WateringEvent
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, event.ID, events[0].ID)

	w = doJSON(r, http.MethodPost, fmt.Sprintf("/api/plants/%s/waterings", plant.ID), token, gin.H{
		"water_amount": -1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlantQRCode(t *testing.T) {
	r := setupRouter(t)
	t.Setenv("APP_BASE_URL", "https://plants.example.com")
	_, token := newUserToken(t, "ana@example.com")

	w := doJSON(r, http.MethodPost, "/api/plants", token, gin.H{
		"name": "Monstera", "image_url": "https://img.example/a.jpg", "watering_interval": 7,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var plant models.Plant
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &plant))

	w = doJSON(r, http.MethodGet, "/api/plants/"+plant.ID+"/qrcode", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	// PNG magic bytes.
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestHealthz(t *testing.T) {
	r := setupRouter(t)
	w := doJSON(r, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterAndLogin(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(r, http.MethodPost, "/auth/register", "", gin.H{
		"email": "ana@example.com", "password": "hunter22", "full_name": "Ana",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "ana@example.com", "password": "hunter22",
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)

	w = doJSON(r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "ana@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The issued token works against the protected API.
	w = doJSON(r, http.MethodGet, "/api/plants", resp.Token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

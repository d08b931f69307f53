package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jalvarez/washpoint-backend/internal/app/repository"
	"github.com/jalvarez/washpoint-backend/internal/app/service"
	"github.com/jalvarez/washpoint-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthControllerTest(t *testing.T) (*AuthController, *gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	businessRepo := repository.NewBusinessRepository(testDB)
	userRepo := repository.NewUserRepository(testDB)
	authService := service.NewAuthService(testDB, businessRepo, userRepo, nil, "test-secret", 15*time.Minute)
	authController := NewAuthController(authService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/auth/signup", authController.Signup)
	router.POST("/auth/login", authController.Login)

	return authController, router, testDB
}

func signupRequest(t *testing.T, router *gin.Engine, businessName, username, password string) *httptest.ResponseRecorder {
	payload, err := json.Marshal(SignupRequest{
		BusinessName: businessName,
		Username:     username,
		Password:     password,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func loginRequest(router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Signup_Success(t *testing.T) {
	_, router, testDB := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	w := signupRequest(t, router, "Acme Car Wash", "alice", "s3cret")

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "business_id")
}

func TestAuthController_Signup_ShortPassword(t *testing.T) {
	_, router, testDB := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	w := signupRequest(t, router, "Acme Car Wash", "alice", "abc")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_INVALID_INPUT")
}

func TestAuthController_Signup_DuplicateUsername(t *testing.T) {
	_, router, testDB := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	w := signupRequest(t, router, "Acme Car Wash", "alice", "s3cret")
	require.Equal(t, http.StatusCreated, w.Code)

	w = signupRequest(t, router, "Copycat Wash", "alice", "different")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_USERNAME_EXISTS")
}

func TestAuthController_Login_Success(t *testing.T) {
	_, router, testDB := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	w := signupRequest(t, router, "Acme Car Wash", "alice", "s3cret")
	require.Equal(t, http.StatusCreated, w.Code)

	w = loginRequest(router, "alice", "s3cret")
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.AccessToken)
	assert.Equal(t, "bearer", body.TokenType)
}

func TestAuthController_Login_WrongPassword(t *testing.T) {
	_, router, testDB := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	w := signupRequest(t, router, "Acme Car Wash", "alice", "s3cret")
	require.Equal(t, http.StatusCreated, w.Code)

	w = loginRequest(router, "alice", "wrong")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "AUTH_INVALID_CREDENTIALS")
}

func TestAuthController_Login_MissingFields(t *testing.T) {
	_, router, testDB := setupAuthControllerTest(t)
	defer db.CleanupTestDB(testDB)

	w := loginRequest(router, "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

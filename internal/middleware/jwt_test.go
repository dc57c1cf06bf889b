package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/Preethi-Heba/flight-booking-app/internal/utils"
)

const testSecret = "unit-test-secret"

func runJWT(t *testing.T, authHeader string) (*httptest.ResponseRecorder, interface{}) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/flights", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var captured interface{}
	next := func(c echo.Context) error {
		captured = c.Get("user_id")
		return c.NoContent(http.StatusOK)
	}
	err := JWTAuth(testSecret)(next)(c)
	assert.NoError(t, err)
	return rec, captured
}

func TestJWTAuth_ValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, 5)
	assert.NoError(t, err)

	rec, uid := runJWT(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	// Numeric JWT claims decode as float64.
	assert.Equal(t, float64(7), uid)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	rec, uid := runJWT(t, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uid)
}

func TestJWTAuth_MalformedToken(t *testing.T) {
	rec, uid := runJWT(t, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uid)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("some-other-secret", 7, 5)
	assert.NoError(t, err)

	rec, uid := runJWT(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uid)
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, -5)
	assert.NoError(t, err)

	rec, uid := runJWT(t, "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, uid)
}

package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/J-CamiloG/AppKit-API/internal/api/http/handlers"
	"github.com/J-CamiloG/AppKit-API/internal/config"
	"github.com/J-CamiloG/AppKit-API/internal/observability"
	"github.com/J-CamiloG/AppKit-API/internal/persistence"
	"github.com/J-CamiloG/AppKit-API/internal/repository"
	"github.com/J-CamiloG/AppKit-API/internal/service"
)

type envelope struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Errors  []string       `json:"errors"`
	User    map[string]any `json:"user"`
}

func newTestApp() *fiber.App {
	cfg := config.Config{
		App: config.AppConfig{Name: "AppKit API", Version: "1.0.0"},
		Auth: config.AuthConfig{
			JWTSecret:    "test-secret",
			TokenTTLDays: 7,
			BcryptCost:   bcrypt.MinCost,
		},
	}

	repo := repository.NewInMemoryUserRepository()
	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: repo})

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, 0)
	RegisterRoutes(app, RouteConfig{
		AppName: cfg.App.Name,
		Version: cfg.App.Version,
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, &persistence.Postgres{}),
		Auth:    handlers.NewAuthHandler(authService),
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, envelope, string) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	res, err := app.Test(req, -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return res.StatusCode, env, string(raw)
}

const juanBody = `{
	"fullName": "Juan Pérez",
	"email": "juan@email.com",
	"phone": "+57 300 123 4567",
	"password": "password123",
	"countryOfOrigin": "Colombia",
	"preferredLanguage": "es",
	"travelerType": "couple"
}`

func TestRegister_Success(t *testing.T) {
	app := newTestApp()

	status, env, raw := postJSON(t, app, "/api/register", juanBody)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Usuario registrado exitosamente", env.Message)

	assert.Equal(t, "Juan Pérez", env.User["fullName"])
	assert.Equal(t, "juan@email.com", env.User["email"])
	assert.Equal(t, "+57 300 123 4567", env.User["phone"])
	assert.Equal(t, "Colombia", env.User["countryOfOrigin"])
	assert.Equal(t, "es", env.User["preferredLanguage"])
	assert.Equal(t, "couple", env.User["travelerType"])
	assert.NotEmpty(t, env.User["id"])
	assert.NotEmpty(t, env.User["token"])

	// Neither the plaintext nor the hash may appear anywhere in the response.
	assert.NotContains(t, raw, "password123")
	assert.NotContains(t, raw, "passwordHash")
}

func TestRegister_DuplicateEmail(t *testing.T) {
	app := newTestApp()

	status, _, _ := postJSON(t, app, "/api/register", juanBody)
	require.Equal(t, fiber.StatusCreated, status)

	other := strings.Replace(juanBody, "+57 300 123 4567", "+34 600 000 000", 1)
	status, env, _ := postJSON(t, app, "/api/register", other)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Equal(t, "El email ya está registrado", env.Message)
	assert.Equal(t, []string{"email"}, env.Errors)
}

func TestRegister_DuplicatePhone(t *testing.T) {
	app := newTestApp()

	status, _, _ := postJSON(t, app, "/api/register", juanBody)
	require.Equal(t, fiber.StatusCreated, status)

	other := strings.Replace(juanBody, "juan@email.com", "otro@email.com", 1)
	status, env, _ := postJSON(t, app, "/api/register", other)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "El número de teléfono ya está registrado", env.Message)
	assert.Equal(t, []string{"phone"}, env.Errors)
}

func TestRegister_MissingTravelerType(t *testing.T) {
	app := newTestApp()

	body := `{
		"fullName": "Juan Pérez",
		"email": "juan@email.com",
		"phone": "+57 300 123 4567",
		"password": "password123",
		"countryOfOrigin": "Colombia",
		"preferredLanguage": "es"
	}`
	status, env, _ := postJSON(t, app, "/api/register", body)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, env.Success)
	assert.Contains(t, env.Errors, "travelerType")
	assert.Equal(t, "El tipo de viajero es requerido", env.Message)
}

func TestRegister_MalformedJSON(t *testing.T) {
	app := newTestApp()

	status, env, _ := postJSON(t, app, "/api/register", `{"fullName": `)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, env.Success)
}

func TestLogin_Success(t *testing.T) {
	app := newTestApp()

	status, _, _ := postJSON(t, app, "/api/register", juanBody)
	require.Equal(t, fiber.StatusCreated, status)

	status, env, _ := postJSON(t, app, "/api/login", `{"email":"juan@email.com","password":"password123"}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Login exitoso", env.Message)
	assert.Equal(t, "juan@email.com", env.User["email"])
	assert.NotEmpty(t, env.User["token"])
}

func TestLogin_WrongPassword(t *testing.T) {
	app := newTestApp()

	status, _, _ := postJSON(t, app, "/api/register", juanBody)
	require.Equal(t, fiber.StatusCreated, status)

	status, env, _ := postJSON(t, app, "/api/login", `{"email":"juan@email.com","password":"wrongpass"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.Equal(t, "Credenciales inválidas", env.Message)
	assert.Equal(t, []string{"email", "password"}, env.Errors)
}

func TestLogin_UnknownEmailSameShape(t *testing.T) {
	app := newTestApp()

	status, env, _ := postJSON(t, app, "/api/login", `{"email":"nadie@email.com","password":"password123"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Credenciales inválidas", env.Message)
	assert.Equal(t, []string{"email", "password"}, env.Errors)
}

func TestRouteNotFound(t *testing.T) {
	app := newTestApp()

	res, err := app.Test(httptest.NewRequest("GET", "/api/unknown", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.False(t, env.Success)
	assert.Equal(t, "Ruta no encontrada", env.Message)
	assert.Empty(t, env.Errors)
}

func TestWelcomeRoute(t *testing.T) {
	app := newTestApp()

	res, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	assert.True(t, bytes.Contains(raw, []byte("Bienvenido a AppKit API")))
}

package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	apphttp "github.com/jhoicas/Inventario-pos/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-pos/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = int64(17)
	testIssuer    = "inventario-pos-test"
	testExpMin    = 60
)

// tokenForRole devuelve el header Authorization de un usuario de prueba con el rol indicado.
func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// guardedApp expone GET /protected detrás de AuthMiddleware + RequireRole.
func guardedApp(allowed ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowed...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "role": apphttp.GetRole(c)})
		},
	)
	return app
}

func get(t *testing.T, app *fiber.App, authHeader string) (int, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	if resp.StatusCode != http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_RechazaCredenciales(t *testing.T) {
	noRole, err := pkgjwt.Generate(testJWTSecret, testUserID, "", testIssuer, testExpMin)
	require.NoError(t, err)
	otherSecret, err := pkgjwt.Generate("otro-secret", testUserID, apphttp.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		code   string
	}{
		{"sin header", "", http.StatusUnauthorized, "MISSING_TOKEN"},
		{"esquema distinto de Bearer", "Token abc", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", http.StatusUnauthorized, "INVALID_TOKEN"},
		{"firmado con otro secret", "Bearer " + otherSecret, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token sin rol", "Bearer " + noRole, http.StatusUnauthorized, "MISSING_ROLE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, guardedApp(apphttp.RoleAdmin), tt.header)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, body.Code)
		})
	}
}

func TestAuthMiddleware_CargaUsuarioYRol(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", tokenForRole(t, apphttp.RoleBodeguero))
	resp, err := guardedApp(apphttp.RoleBodeguero).Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		UserID int64  `json:"user_id"`
		Role   string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body.UserID)
	assert.Equal(t, apphttp.RoleBodeguero, body.Role)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		role    string
		status  int
	}{
		{"admin en ruta de admin", []string{apphttp.RoleAdmin}, apphttp.RoleAdmin, http.StatusOK},
		{"bodeguero en ruta de existencias", []string{apphttp.RoleAdmin, apphttp.RoleBodeguero}, apphttp.RoleBodeguero, http.StatusOK},
		{"vendedor en ruta de admin", []string{apphttp.RoleAdmin}, apphttp.RoleVendedor, http.StatusForbidden},
		{"bodeguero en ruta de ventas", []string{apphttp.RoleAdmin, apphttp.RoleVendedor}, apphttp.RoleBodeguero, http.StatusForbidden},
		{"rol desconocido", []string{apphttp.RoleAdmin}, "cajero", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := get(t, guardedApp(tt.allowed...), tokenForRole(t, tt.role))
			assert.Equal(t, tt.status, status)
			if tt.status == http.StatusForbidden {
				assert.Equal(t, "FORBIDDEN", body.Code)
				assert.Contains(t, body.Message, tt.role)
			}
		})
	}
}

// Los permisos del router: existencias para admin/bodeguero, ventas para admin/vendedor,
// reportes solo admin y los resúmenes para cualquier rol.
func TestRouter_PermisosPorRol(t *testing.T) {
	a := newAPI(t)
	tests := []struct {
		method, path, role string
		status             int
	}{
		{http.MethodPost, "/api/inventory/rebuild", apphttp.RoleVendedor, http.StatusForbidden},
		{http.MethodPost, "/api/movements/bulk", apphttp.RoleVendedor, http.StatusForbidden},
		{http.MethodPost, "/api/sales/bulk", apphttp.RoleBodeguero, http.StatusForbidden},
		{http.MethodGet, "/api/sale-groups/debtors", apphttp.RoleBodeguero, http.StatusForbidden},
		{http.MethodGet, "/api/reports/range?start=2024-03-01&end=2024-03-01", apphttp.RoleVendedor, http.StatusForbidden},
		{http.MethodGet, "/api/reports/range?start=2024-03-01&end=2024-03-01", apphttp.RoleAdmin, http.StatusOK},
		{http.MethodGet, "/api/inventory/summary", apphttp.RoleVendedor, http.StatusOK},
		{http.MethodGet, "/api/inventory/grouped", apphttp.RoleBodeguero, http.StatusOK},
		{http.MethodPost, "/api/inventory/rebuild", apphttp.RoleBodeguero, http.StatusOK},
		{http.MethodGet, "/api/sale-groups/debtors", apphttp.RoleVendedor, http.StatusOK},
		{http.MethodGet, "/api/movement-groups/warehouse/1", apphttp.RoleVendedor, http.StatusForbidden},
		{http.MethodGet, "/api/sale-groups/warehouse/1", apphttp.RoleBodeguero, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.role+" "+tt.method+" "+tt.path, func(t *testing.T) {
			resp := a.do(t, tt.method, tt.path, tt.role, nil)
			defer resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

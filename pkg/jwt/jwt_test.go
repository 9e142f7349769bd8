package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/Inventario-pos/pkg/jwt"
)

const secret = "test-secret"

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, 42, "vendedor", "inventario-pos", 5)
	require.NoError(t, err)

	claims, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "vendedor", claims.Role)
	assert.Equal(t, "inventario-pos", claims.Issuer)
	assert.Equal(t, "42", claims.Subject)
}

func TestParse_Errores(t *testing.T) {
	valid, err := pkgjwt.Generate(secret, 42, "admin", "inventario-pos", 5)
	require.NoError(t, err)
	expired, err := pkgjwt.Generate(secret, 42, "admin", "inventario-pos", -1)
	require.NoError(t, err)
	anonymous, err := pkgjwt.Generate(secret, 0, "admin", "inventario-pos", 5)
	require.NoError(t, err)

	tests := []struct {
		name, secret, token string
	}{
		{"expirado", secret, expired},
		{"secret incorrecto", "otro", valid},
		{"sin usuario actuante", secret, anonymous},
		{"secret vacío", "", valid},
		{"basura", secret, "abc.def.ghi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pkgjwt.Parse(tt.secret, tt.token)
			assert.Error(t, err)
		})
	}
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", 1, "admin", "x", 5)
	assert.Error(t, err)
}

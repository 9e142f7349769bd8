package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "info").Component("projection")
	log.Info().Int("rows", 3).Msg("reconstrucción completa")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "projection", entry["component"])
	assert.Equal(t, "info", entry["level"])
	assert.EqualValues(t, 3, entry["rows"])
}

func TestNivel_FiltraPorDebajoDelMinimo(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWriter(&buf, "warn")
	log.Info().Msg("no debe aparecer")
	assert.Zero(t, buf.Len())

	log.Warn().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestNop_NoEscribe(t *testing.T) {
	assert.NotPanics(t, func() { logger.Nop().Error().Msg("nada") })
}

func TestNivel_Parseo(t *testing.T) {
	tests := []struct {
		level      string
		debugShown bool
	}{
		{" DEBUG ", true},
		{"trace", true},
		{"info", false},
		{"", false},
		{"verboso", false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger.NewWriter(&buf, tt.level).Debug().Msg("detalle")
			assert.Equal(t, tt.debugShown, buf.Len() > 0)
		})
	}
}

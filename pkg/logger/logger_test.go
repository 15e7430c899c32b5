package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/smart-inventory/pkg/logger"
)

func TestNew_ProduccionEscribeJSON(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})

	log.Named("checkout").Info().Str("batch_id", "F-1").Msg("venta registrada")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "checkout", entry["component"])
	assert.Equal(t, "F-1", entry["batch_id"])
	assert.Equal(t, "venta registrada", entry["message"])
}

func TestNew_NivelFiltraDebug(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "warn", Output: &buf})

	log.Debug().Msg("no debe salir")
	log.Info().Msg("tampoco")
	assert.Empty(t, buf.String())

	log.Warn().Msg("sí")
	assert.Contains(t, buf.String(), `"sí"`)
}

func TestNop_NoPanica(t *testing.T) {
	assert.NotPanics(t, func() {
		logger.Nop().Error().Msg("descartado")
	})
}

package log

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupJSON(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	lvl := Setup(&buf, "debug", false)
	assert.Equal(t, zerolog.DebugLevel, lvl)

	log.Debug().Str("factor", "price").Msg("scored")

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "debug", rec["level"])
	assert.Equal(t, "price", rec["factor"])
	assert.Equal(t, "scored", rec["message"])
}

func TestSetupUnknownLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	lvl := Setup(&buf, "chatty", false)
	assert.Equal(t, zerolog.InfoLevel, lvl)
	assert.Contains(t, buf.String(), "unknown log level")
}

func TestSetupEmptyLevel(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.InfoLevel)

	var buf bytes.Buffer
	assert.Equal(t, zerolog.InfoLevel, Setup(&buf, "", true))
	assert.Empty(t, buf.String())
}

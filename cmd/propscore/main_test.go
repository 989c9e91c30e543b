package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawpanic/propscore/internal/config"
	"github.com/sawpanic/propscore/internal/scoring"
)

func testConfig() *config.Config {
	return &config.Config{LogLevel: "error", HTTPHost: "127.0.0.1", HTTPPort: 0}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(testConfig())

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

var referenceFlags = []string{
	"--price", "500000", "--area-m2", "150", "--price-per-m2", "3300",
	"--avg-price-per-m2", "3500", "--location-score", "80", "--school-rating", "9",
	"--size", "150", "--bedrooms", "4", "--bathrooms", "3",
}

func TestDemoCommand(t *testing.T) {
	out, err := run(t, "demo")
	require.NoError(t, err)
	assert.Equal(t, "Total Value-for-Money Score: 46.00\n", out)
}

func TestScoreFromFlags(t *testing.T) {
	out, err := run(t, append([]string{"score", "--format", "json"}, referenceFlags...)...)
	require.NoError(t, err)

	var b scoring.Breakdown
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.InDelta(t, 46.002, b.Total, 0.001)
}

func TestScoreExplicitDefaultsMatch(t *testing.T) {
	implicit, err := run(t, append([]string{"score", "--format", "json"}, referenceFlags...)...)
	require.NoError(t, err)

	args := append([]string{"score", "--format", "json",
		"--condition-score", "80", "--renovation-cost", "0",
		"--appreciation-rate", "3", "--crime-rate", "50"}, referenceFlags...)
	explicit, err := run(t, args...)
	require.NoError(t, err)

	assert.JSONEq(t, implicit, explicit)
}

func TestScoreMissingRequiredFlags(t *testing.T) {
	_, err := run(t, "score", "--price", "1")
	require.Error(t, err)
	assert.ErrorIs(t, err, scoring.ErrInvalidListing)
	assert.Contains(t, err.Error(), "--area-m2")
}

func TestScoreZeroAverageFails(t *testing.T) {
	args := append([]string{"score"}, referenceFlags...)
	args = append(args, "--avg-price-per-m2", "0")

	_, err := run(t, args...)
	assert.ErrorIs(t, err, scoring.ErrInvalidInput)
}

func TestScoreFromFileWithOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listing.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
price: 500000
area_m2: 150
price_per_m2: 3300
avg_price_per_m2: 3500
location_score: 80
school_rating: 9
size: 150
bedrooms: 4
bathrooms: 3
`), 0644))

	out, err := run(t, "score", "--file", path, "--format", "text", "--price-per-m2", "7000")
	require.NoError(t, err)
	// Price score drops to 0: 30 + 12.22 + 1.5
	assert.Contains(t, out, "Total Value-for-Money Score: 43.72")
}

func TestScoreWeightOverrides(t *testing.T) {
	args := append([]string{"score", "--format", "json", "--weight", "price=0,location=0.7"}, referenceFlags...)
	out, err := run(t, args...)
	require.NoError(t, err)

	var b scoring.Breakdown
	require.NoError(t, json.Unmarshal([]byte(out), &b))
	assert.InDelta(t, 70+12.216+1.5, b.Total, 0.001)

	_, err = run(t, append([]string{"score", "--weight", "price=0.9"}, referenceFlags...)...)
	assert.ErrorIs(t, err, scoring.ErrInvalidWeights)
}

func TestWeightsCommand(t *testing.T) {
	out, err := run(t, "weights")
	require.NoError(t, err)
	assert.Contains(t, out, "price         0.400")
	assert.Contains(t, out, "appreciation  0.000")
	assert.Contains(t, out, "active sum    1.000")
}

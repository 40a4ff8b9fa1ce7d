package data

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPriceCSV_ProcessedFormat(t *testing.T) {
	path := writeCSV(t, `Date,Heure,Mois,Jours,Prix
2024-01-01,0,January,Monday,45.10
2024-01-01,1,January,Monday,-3.25
2024-02-01,0,February,Thursday,80.00
`)

	obs, err := LoadPriceCSV(path)
	require.NoError(t, err)
	require.Len(t, obs, 3)

	assert.Equal(t, 2024, obs[0].Year())
	assert.Equal(t, time.January, obs[0].Month())
	assert.Equal(t, 45.10, obs[0].Price)
	assert.Equal(t, -3.25, obs[1].Price)
	assert.Equal(t, time.February, obs[2].Month())
}

func TestLoadPriceCSV_RawTimestampFormat(t *testing.T) {
	// 23:30 UTC on Jan 31 is already Feb 1 in Paris; the observation must be
	// bucketed into February.
	path := writeCSV(t, `Timestamp,Prix_EUR_MWh
2024-01-31T22:00:00Z,30.0
2024-01-31T23:30:00Z,31.5
`)

	obs, err := LoadPriceCSV(path)
	require.NoError(t, err)
	require.Len(t, obs, 2)
	assert.Equal(t, time.January, obs[0].Month())
	assert.Equal(t, time.February, obs[1].Month())
	assert.Equal(t, 1, obs[1].Timestamp.Day())
}

func TestLoadPriceCSV_DropsDuplicateTimestamps(t *testing.T) {
	path := writeCSV(t, `Date,Heure,Prix
2024-01-01,0,10.0
2024-01-01,0,99.0
`)

	obs, err := LoadPriceCSV(path)
	require.NoError(t, err)
	require.Len(t, obs, 1)
	assert.Equal(t, 10.0, obs[0].Price)
}

func TestLoadPriceCSV_RejectsMalformedRows(t *testing.T) {
	path := writeCSV(t, `Date,Heure,Prix
2024-01-01,0,not-a-number
`)
	_, err := LoadPriceCSV(path)
	assert.ErrorContains(t, err, "bad price")

	path = writeCSV(t, `Date,Heure,Prix
2024-01-01,25,10.0
`)
	_, err = LoadPriceCSV(path)
	assert.ErrorContains(t, err, "bad hour")
}

func TestLoadPriceCSV_RejectsUnknownHeader(t *testing.T) {
	path := writeCSV(t, "a,b,c\n1,2,3\n")
	_, err := LoadPriceCSV(path)
	assert.Error(t, err)
}

func TestWriteProcessedCSV_RoundTrip(t *testing.T) {
	src := writeCSV(t, `Date,Heure,Prix
2024-03-05,7,12.34
2024-03-05,8,-1.00
`)
	obs, err := LoadPriceCSV(src)
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteProcessedCSV(out, obs))

	back, err := LoadPriceCSV(out)
	require.NoError(t, err)
	require.Len(t, back, len(obs))
	for i := range obs {
		assert.True(t, obs[i].Timestamp.Equal(back[i].Timestamp))
		assert.Equal(t, obs[i].Price, back[i].Price)
	}
}

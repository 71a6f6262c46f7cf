package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/riskibarqy/ft5-league/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_FetchReadsConfiguredFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "calendario.json"), []byte(`[]`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "players-2025.json"), []byte(`[{"jugador":"Ryu"}]`), 0o600))

	source := NewSource(dir, map[usecase.Document]string{
		usecase.DocumentPlayers: "players-2025.json",
	})

	raw, err := source.Fetch(context.Background(), usecase.DocumentCalendar)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	raw, err = source.Fetch(context.Background(), usecase.DocumentPlayers)
	require.NoError(t, err)
	assert.Equal(t, `[{"jugador":"Ryu"}]`, string(raw))
}

func TestSource_FetchMissingFile(t *testing.T) {
	t.Parallel()

	source := NewSource(t.TempDir(), nil)
	_, err := source.Fetch(context.Background(), usecase.DocumentStandings)
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSource_FetchCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewSource(t.TempDir(), nil).Fetch(ctx, usecase.DocumentCalendar)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSource_Path(t *testing.T) {
	t.Parallel()

	source := NewSource("data", map[usecase.Document]string{
		usecase.DocumentStandings: "/srv/league/standings.json",
	})

	got, err := source.Path(usecase.DocumentCalendar)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("data", "calendario.json"), got)

	got, err = source.Path(usecase.DocumentStandings)
	require.NoError(t, err)
	assert.Equal(t, "/srv/league/standings.json", got)

	_, err = source.Path(usecase.Document("unknown"))
	require.ErrorIs(t, err, errUnknownDocument)
}

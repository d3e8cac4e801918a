package models

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceDirectories(t *testing.T) {
	t.Run("default layout", func(t *testing.T) {
		dirs := DefaultSourceDirectories("data")

		dir, err := dirs.Directory(SourceMomentum)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("data", "Momentum_stock_date"), dir)

		assert.Equal(t, []Source{SourceMarket, SourceMomentum}, dirs.Sources())
	})

	t.Run("unknown source", func(t *testing.T) {
		dirs := DefaultSourceDirectories(".")

		_, err := dirs.Directory("bogus")
		assert.ErrorIs(t, err, ErrInvalidSource)
		assert.Equal(t, "Invalid source 'bogus'", err.Error())
	})

	t.Run("input map is copied", func(t *testing.T) {
		input := map[Source]string{"market": "a"}
		dirs, err := NewSourceDirectories(input)
		require.NoError(t, err)

		input["market"] = "b"
		input["other"] = "c"

		dir, err := dirs.Directory("market")
		require.NoError(t, err)
		assert.Equal(t, "a", dir)

		_, err = dirs.Directory("other")
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("empty config", func(t *testing.T) {
		_, err := NewSourceDirectories(nil)
		assert.Error(t, err)

		_, err = NewSourceDirectories(map[Source]string{"market": ""})
		assert.Error(t, err)
	})
}

func TestServerConfigSourceDirectories(t *testing.T) {
	config := NewDefaultServerConfig()
	config.DataRoot = "/srv/data"
	config.Sources["abs"] = "/mnt/abs"

	dirs, err := config.SourceDirectories()
	require.NoError(t, err)

	dir, err := dirs.Directory(SourceMarket)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/data", "market_data"), dir)

	dir, err = dirs.Directory("abs")
	require.NoError(t, err)
	assert.Equal(t, "/mnt/abs", dir)
}

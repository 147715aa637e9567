package open

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	for _, prefix := range []string{"", "sqlite://"} {
		store, backend, err := Open(context.Background(), prefix+filepath.Join(t.TempDir(), "roster.db"))
		require.NoError(t, err)
		assert.Equal(t, BackendSQLite, backend)
		require.NoError(t, store.Close())
	}
}

func TestOpenEmptyURL(t *testing.T) {
	_, _, err := Open(context.Background(), "")
	assert.Error(t, err)
}

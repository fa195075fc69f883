package services

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tavola-dev/tavola/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	passwordCost = bcrypt.MinCost
	os.Exit(m.Run())
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	st, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)

	return st
}

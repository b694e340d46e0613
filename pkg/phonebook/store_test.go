package phonebook

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func TestNewStore(t *testing.T) {
	s := NewStore(nil)
	require.NoError(t, s.Attach(types.Config{
		Driver: types.DriverSQLite,
		Params: map[string]string{"database": filepath.Join(t.TempDir(), "pb.db")},
	}))
	defer s.Detach()

	id, err := s.Insert("Jane Doe", "555-1234", "jane@x.com")
	require.NoError(t, err)

	got, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", got.Email)

	require.NoError(t, s.Detach())
	_, err = s.List()
	assert.ErrorIs(t, err, types.ErrStoreDetached)
}

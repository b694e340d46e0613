package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/phonebook/pkg/types"
)

func TestRebind(t *testing.T) {
	pg, err := dialectFor(types.DriverPostgres)
	require.NoError(t, err)
	lite, err := dialectFor(types.DriverSQLite)
	require.NoError(t, err)

	assert.Equal(t, "UPDATE contacts SET name = $1, phone = $2, email = $3 WHERE id = $4", pg.rebind(updateContact))
	assert.Equal(t, updateContact, lite.rebind(updateContact))
}

func TestDialectFor_Unknown(t *testing.T) {
	_, err := dialectFor("mysql")
	assert.ErrorIs(t, err, types.ErrDriverUnknown)
}

func TestPostgresDSN(t *testing.T) {
	tests := []struct {
		name    string
		params  map[string]string
		want    string
		wantErr bool
	}{
		{
			name: "database key becomes dbname, keys sorted",
			params: map[string]string{
				"host": "localhost", "port": "5432", "database": "phonebook",
				"user": "postgres", "password": "secret",
			},
			want: "dbname=phonebook host=localhost password=secret port=5432 user=postgres",
		},
		{
			name:   "values with spaces and quotes are quoted",
			params: map[string]string{"password": `it's a \secret`},
			want:   `password='it\'s a \\secret'`,
		},
		{
			name:   "empty value is quoted",
			params: map[string]string{"password": ""},
			want:   "password=''",
		},
		{
			name:    "bad key is rejected",
			params:  map[string]string{"bad key": "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := postgresDSN(types.Config{Driver: types.DriverPostgres, Params: tt.params})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSQLiteDSN(t *testing.T) {
	got, err := sqliteDSN(types.Config{Params: map[string]string{"database": "/tmp/pb.db"}})
	require.NoError(t, err)
	assert.Equal(t, "/tmp/pb.db?_pragma=busy_timeout(5000)", got)

	got, err = sqliteDSN(types.Config{Params: map[string]string{"dbname": "x.db", "busy_timeout": "100"}})
	require.NoError(t, err)
	assert.Equal(t, "x.db?_pragma=busy_timeout(100)", got)

	got, err = sqliteDSN(types.Config{})
	require.NoError(t, err)
	assert.Equal(t, "phonebook.db?_pragma=busy_timeout(5000)", got)

	_, err = sqliteDSN(types.Config{Params: map[string]string{"busy_timeout": "soon"}})
	assert.Error(t, err)
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
	assert.Equal(t, "plain", escapeLike("plain"))
}

package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMySQLDSN(t *testing.T) {
	cases := []struct {
		name string
		in   string
		user string
		pass string
		want string
	}{
		{
			name: "native dsn untouched",
			in:   "app:secret@tcp(db:3306)/users?parseTime=true",
			want: "app:secret@tcp(db:3306)/users?parseTime=true",
		},
		{
			name: "url with credentials",
			in:   "mysql://app:secret@db:3306/users",
			want: "app:secret@tcp(db:3306)/users?charset=utf8mb4&parseTime=true",
		},
		{
			name: "jdbc url with overrides and jdbc params",
			in:   "jdbc:mysql://db:3306/users?useSSL=false&serverTimezone=UTC&characterEncoding=utf8&useUnicode=true",
			user: "root",
			pass: "pw",
			want: "root:pw@tcp(db:3306)/users?charset=utf8&loc=UTC&parseTime=true&tls=false",
		},
		{
			name: "query credentials",
			in:   "mysql://db:3306/users?user=u&password=p&parseTime=false",
			want: "u:p@tcp(db:3306)/users?charset=utf8mb4&parseTime=false",
		},
		{
			name: "empty",
			in:   "  ",
			want: "",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeMySQLDSN(tc.in, tc.user, tc.pass))
		})
	}
}

func TestMaskDSN(t *testing.T) {
	assert.Equal(t, "app:****@tcp(db:3306)/users", MaskDSN("app:secret@tcp(db:3306)/users"))
	assert.Equal(t, "host=db dbname=users", MaskDSN("host=db dbname=users"))
}

func TestNewGorm_UnsupportedDriver(t *testing.T) {
	_, err := NewGorm(Opts{Driver: "oracle"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}

func TestNewMongo_DatabaseFromURI(t *testing.T) {
	c, db, err := NewMongo(MongoOpts{URI: "mongodb://localhost:27017/mern-tutorial", Database: "fallback"})
	require.NoError(t, err)
	defer c.Disconnect(context.Background())
	assert.Equal(t, "mern-tutorial", db)

	c2, db2, err := NewMongo(MongoOpts{URI: "mongodb://localhost:27017", Database: "fallback"})
	require.NoError(t, err)
	defer c2.Disconnect(context.Background())
	assert.Equal(t, "fallback", db2)
}

func TestNewMongo_InvalidURI(t *testing.T) {
	_, _, err := NewMongo(MongoOpts{URI: "postgres://nope"})
	assert.Error(t, err)
}

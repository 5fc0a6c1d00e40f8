package dialect_test

import (
	"testing"

	"github.com/IvanStoilov/sequelize-auto/dialect"
	"github.com/IvanStoilov/sequelize-auto/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDialect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "postgres", in: "postgres", want: "postgres"},
		{name: "mysql", in: "mysql", want: "mysql"},
		{name: "mariadb_alias", in: "mariadb", want: "mysql"},
		{name: "mssql", in: "mssql", want: "mssql"},
		{name: "sqlserver_alias", in: "sqlserver", want: "mssql"},
		{name: "sqlite", in: "sqlite", want: "sqlite"},
		{name: "sqlite3_alias", in: "SQLite3", want: "sqlite"},
		{name: "unknown_falls_back_to_postgres", in: "oracle", want: "postgres"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := dialect.GetDialect(tt.in)
			require.NotNil(t, d)
			assert.Equal(t, tt.want, d.Name())
		})
	}
}

func TestDialectFlags(t *testing.T) {
	t.Parallel()

	assert.True(t, dialect.GetDialect("postgres").HasSchema())
	assert.True(t, dialect.GetDialect("mssql").HasSchema())
	assert.False(t, dialect.GetDialect("mysql").HasSchema())
	assert.False(t, dialect.GetDialect("sqlite").HasSchema())

	for _, name := range []string{"postgres", "mysql", "mssql"} {
		assert.True(t, dialect.GetDialect(name).CanAliasPK(), "dialect %q", name)
	}
	assert.False(t, dialect.GetDialect("sqlite").CanAliasPK())
}

func TestPostgresIsSerialKey(t *testing.T) {
	t.Parallel()

	d := dialect.GetDialect("postgres")

	tests := []struct {
		name string
		col  *schema.Column
		want bool
	}{
		{
			name: "auto_increment_flag",
			col:  &schema.Column{Name: "id", Type: "integer", AutoIncrement: true},
			want: true,
		},
		{
			name: "nextval_default",
			col:  &schema.Column{Name: "id", Type: "integer", Default: "nextval('users_id_seq'::regclass)"},
			want: true,
		},
		{
			name: "plain_default",
			col:  &schema.Column{Name: "count", Type: "integer", Default: "0"},
			want: false,
		},
		{
			name: "no_default",
			col:  &schema.Column{Name: "name", Type: "varchar(20)"},
			want: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, d.IsSerialKey(tt.col))
		})
	}
}

func TestMysqlIsSerialKey(t *testing.T) {
	t.Parallel()

	d := dialect.GetDialect("mysql")
	assert.True(t, d.IsSerialKey(&schema.Column{Name: "id", Type: "int", AutoIncrement: true}))
	assert.False(t, d.IsSerialKey(&schema.Column{Name: "id", Type: "int", Default: "nextval('x'::regclass)"}))
}

package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTestDBConfig(t *testing.T) {
	t.Run("defaults to local test database port 55432", func(t *testing.T) {
		t.Setenv("TEST_DB_HOST", "")
		t.Setenv("TEST_DB_PORT", "")
		t.Setenv("TEST_DB_USER", "")

		cfg := DefaultTestDBConfig()
		assert.Equal(t, "localhost", cfg.Host)
		assert.Equal(t, "55432", cfg.Port)
		assert.Equal(t, "batisuivi", cfg.User)
	})

	t.Run("respects TEST_DB_PORT environment variable", func(t *testing.T) {
		t.Setenv("TEST_DB_PORT", "5432")
		assert.Equal(t, "5432", DefaultTestDBConfig().Port)
	})

	t.Run("renders a postgres DSN", func(t *testing.T) {
		t.Setenv("DB_SSL_MODE", "")
		cfg := TestDBConfig{Host: "db", Port: "5432", User: "u", Password: "p", DBName: "n"}
		assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", cfg.DSN())
	})
}

func TestGenerateSchemaName(t *testing.T) {
	a, b := generateSchemaName(), generateSchemaName()
	assert.Regexp(t, `^t_[0-9a-f]{8}$`, a)
	assert.NotEqual(t, a, b)
}

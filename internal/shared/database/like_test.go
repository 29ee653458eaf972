package database_test

import (
	"testing"

	"go-directory/internal/shared/database"

	"github.com/stretchr/testify/assert"
)

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%acme%", database.ContainsPattern("acme"))
	assert.Equal(t, `%50\%\_off%`, database.ContainsPattern("50%_off"))
	assert.Equal(t, `%a\\b%`, database.ContainsPattern(`a\b`))
	assert.Equal(t, "%%", database.ContainsPattern(""))
}

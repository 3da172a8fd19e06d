package tourpackage

import (
	"os"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Выбираемые колонки должны существовать в таблице packages из миграции,
// иначе каждый GetByID падает на первом же запросе.
func TestPackageColumns_MatchMigrationSchema(t *testing.T) {
	ddl, err := os.ReadFile("../../../../migrations/001_init.sql")
	require.NoError(t, err)

	table := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS packages \((.+?)\);`).
		FindSubmatch(ddl)
	require.NotNil(t, table, "packages table not found in migration")

	declared := map[string]bool{}
	for _, line := range strings.Split(string(table[1]), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			declared[fields[0]] = true
		}
	}

	for _, col := range packageColumns {
		assert.True(t, declared[col], "column %q is not declared in migration", col)
	}
}

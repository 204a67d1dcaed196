package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableDefinitions_Order(t *testing.T) {
	// every table must be created after the tables it references
	position := map[string]int{}
	for i, stmt := range TableDefinitions {
		for _, name := range TableNames {
			if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+name+" ") {
				position[name] = i
			}
		}
	}
	assert.Len(t, position, len(TableNames))

	for _, stmt := range TableDefinitions {
		if !strings.HasPrefix(stmt, "CREATE TABLE") {
			continue
		}
		for _, name := range TableNames {
			if strings.Contains(stmt, "REFERENCES "+name+"(") {
				owner := strings.Fields(stmt)[5]
				assert.LessOrEqual(t, position[name], position[owner], "%s references %s", owner, name)
			}
		}
	}
}

func TestTableDefinitions_RoleConstraint(t *testing.T) {
	for _, role := range []string{"respondent", "coach", "trainer", "admin", "partner"} {
		assert.Contains(t, TableDefinitions[0], "'"+role+"'")
	}
}

func TestAuthTriggerDefinitions(t *testing.T) {
	assert.Len(t, AuthTriggerDefinitions, 3)
	assert.Contains(t, AuthTriggerDefinitions[0], "handle_new_user")
	assert.Contains(t, AuthTriggerDefinitions[2], "AFTER INSERT ON auth.users")
}

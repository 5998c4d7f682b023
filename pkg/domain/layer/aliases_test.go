package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAliasSetExtend(t *testing.T) {
	base := DefaultAliases()
	extended := base.Extend(map[string]string{" Cuenta ": "Code"}, nil, map[string]string{"sueldo": "cost"})

	assert.Equal(t, "code", extended.Financial["cuenta"])
	assert.Equal(t, "cost", extended.Employees["sueldo"])
	assert.Equal(t, base.Roles, extended.Roles)
	_, leaked := base.Financial["cuenta"]
	assert.False(t, leaked, "defaults must not be mutated")
}

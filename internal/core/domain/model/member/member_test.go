package member_test

import (
	"strings"
	"testing"

	"deliveryhub/internal/core/domain/model/kernel"
	"deliveryhub/internal/core/domain/model/member"
	"deliveryhub/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMember(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("valid member", func(t *testing.T) {
		m, err := member.NewMember(id, "  Dana Rivers ", "dana@example.com", member.RoleDelivery)

		require.NoError(t, err)
		require.NoError(t, m.Validate())
		assert.True(t, m.ID().IsEqual(id))
		assert.Equal(t, "Dana Rivers", m.Name())
		assert.Equal(t, "dana@example.com", m.Email())
		assert.Equal(t, member.RoleDelivery, m.Role())
	})

	t.Run("email is optional", func(t *testing.T) {
		m, err := member.NewMember(id, "Sam", "", member.RoleCustomer)
		require.NoError(t, err)
		assert.Empty(t, m.Email())
	})

	t.Run("aggregates errors", func(t *testing.T) {
		_, err := member.NewMember(kernel.UUID{}, " ", "not-an-email", member.RoleUnknown)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, member.ErrNameIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("name too long", func(t *testing.T) {
		_, err := member.NewMember(id, strings.Repeat("x", 121), "", member.RoleAdmin)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestRole(t *testing.T) {
	for _, name := range []string{"customer", "delivery", "admin"} {
		role, err := member.ParseRole(name)
		require.NoError(t, err)
		assert.Equal(t, name, role.String())
	}

	_, err := member.ParseRole("courier")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	require.Error(t, member.RoleUnknown.Validate())
	assert.Equal(t, "unknown", member.Role(9).String())
}

func TestNewPrincipal(t *testing.T) {
	id := kernel.NewUUID()

	p, err := member.NewPrincipal(id, member.RoleCustomer)
	require.NoError(t, err)
	assert.True(t, p.Is(member.RoleCustomer))
	assert.False(t, p.Is(member.RoleAdmin))

	_, err = member.NewPrincipal(id, member.RoleUnknown)
	require.Error(t, err)
	_, err = member.NewPrincipal(kernel.UUID{}, member.RoleAdmin)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

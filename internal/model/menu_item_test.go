package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRestrictionZeroValueIsPublic(t *testing.T) {
	var r Restriction
	assert.True(t, r.IsPublic())
	assert.Nil(t, r.Roles())
	assert.False(t, r.Allows("Admin"))
}

func TestRestrictionAllows(t *testing.T) {
	r := RestrictedTo("Admin", "Doctor")
	assert.False(t, r.IsPublic())
	assert.True(t, r.Allows("Doctor"))
	assert.False(t, r.Allows("Nurse"))

	// Empty restriction is not public and allows nobody.
	empty := RestrictedTo()
	assert.False(t, empty.IsPublic())
	assert.False(t, empty.Allows("Admin"))
}

func TestRestrictionColumnRoundTrip(t *testing.T) {
	value, err := Public().Value()
	require.NoError(t, err)
	assert.Nil(t, value, "public restrictions must be stored as NULL")

	var scanned Restriction
	require.NoError(t, scanned.Scan(nil))
	assert.True(t, scanned.IsPublic())

	value, err = RestrictedTo("Doctor").Value()
	require.NoError(t, err)
	require.NotNil(t, value)

	require.NoError(t, scanned.Scan(value))
	assert.False(t, scanned.IsPublic())
	assert.True(t, scanned.Allows("Doctor"))

	// The empty set survives the round trip without collapsing to public.
	value, err = RestrictedTo().Value()
	require.NoError(t, err)
	require.NotNil(t, value)

	require.NoError(t, scanned.Scan(value))
	assert.False(t, scanned.IsPublic())
}

func TestRestrictionJSON(t *testing.T) {
	public, err := json.Marshal(Public())
	require.NoError(t, err)
	assert.Equal(t, "null", string(public))

	restricted, err := json.Marshal(RestrictedTo("Admin"))
	require.NoError(t, err)
	assert.Equal(t, `["Admin"]`, string(restricted))

	var r Restriction
	require.NoError(t, json.Unmarshal([]byte("null"), &r))
	assert.True(t, r.IsPublic())

	require.NoError(t, json.Unmarshal([]byte(`[]`), &r))
	assert.False(t, r.IsPublic())
	assert.False(t, r.Allows("Admin"))

	require.NoError(t, json.Unmarshal([]byte(`["Doctor"]`), &r))
	assert.True(t, r.Allows("Doctor"))
}

// The request shape handlers bind: an absent field must stay public.
func TestRestrictionAbsentFieldStaysPublic(t *testing.T) {
	var req struct {
		Title        string      `json:"title"`
		AllowedRoles Restriction `json:"allowed_roles"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Public Item"}`), &req))
	assert.True(t, req.AllowedRoles.IsPublic())
}

func TestRoleSetContains(t *testing.T) {
	roles := RoleSet{"Admin", "Doctor"}
	assert.True(t, roles.Contains("Admin"))
	assert.False(t, roles.Contains("Nurse"))
	assert.False(t, RoleSet{}.Contains("Admin"))
}

func TestRoleSetColumnRoundTrip(t *testing.T) {
	value, err := RoleSet{"Admin"}.Value()
	require.NoError(t, err)
	require.NotNil(t, value)

	var scanned RoleSet
	require.NoError(t, scanned.Scan(value))
	assert.True(t, scanned.Contains("Admin"))

	// A nil set is stored as an empty array, never as NULL.
	value, err = RoleSet(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), value)

	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}

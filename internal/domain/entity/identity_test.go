package entity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseID(t *testing.T) {
	cases := []struct {
		in      string
		want    ID
		wantErr bool
	}{
		{in: "42", want: 42},
		{in: " 7 ", want: 7},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "12abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "1.5", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseID(tc.in)
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIDEqual(t *testing.T) {
	assert.True(t, ID(7).Equal(7))
	assert.False(t, ID(7).Equal(9))
	assert.False(t, ID(0).Equal(0), "zero id must never match")
}

func TestIDUnmarshalAcceptsStringAndNumber(t *testing.T) {
	var body struct {
		A ID `json:"a"`
		B ID `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"42","b":42}`), &body))
	assert.True(t, body.A.Equal(body.B))

	assert.Error(t, json.Unmarshal([]byte(`{"a":"4x"}`), &body))
	assert.Error(t, json.Unmarshal([]byte(`{"a":1.5}`), &body))
}

func TestParseRole(t *testing.T) {
	assert.Equal(t, RoleSuperAdmin, ParseRole("super_admin"))
	assert.Equal(t, RoleITAdmin, ParseRole("it_admin"))
	assert.Equal(t, RoleNormalUser, ParseRole("SUPER_ADMIN"))
	assert.Equal(t, RoleNormalUser, ParseRole(""))

	assert.True(t, RoleSuperAdmin.CanModifyAnyEvent())
	assert.False(t, RoleITAdmin.CanModifyAnyEvent())
	assert.True(t, RoleITAdmin.Moderates())
	assert.False(t, RoleNormalUser.Moderates())
}

package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matias-dev/api-rest/internal/app/models"
)

func TestAuthorize_SelfOrAdmin(t *testing.T) {
	cases := []struct {
		name      string
		rol       models.Rol
		subjectID string
		targetID  string
		want      bool
	}{
		{"user accessing own resource", models.RolUser, "42", "42", true},
		{"user accessing other resource", models.RolUser, "42", "43", false},
		{"admin accessing any resource", models.RolAdmin, "1", "99", true},
		{"unknown role with matching id", models.RolUnknown, "42", "42", false},
		{"unknown role", models.RolUnknown, "42", "43", false},
		{"empty subject id", models.RolUser, "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Authorize(tc.rol, tc.subjectID, tc.targetID, PolicySelfOrAdmin)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAuthorize_AdminOnly(t *testing.T) {
	assert.True(t, Authorize(models.RolAdmin, "1", "", PolicyAdminOnly))
	assert.False(t, Authorize(models.RolUser, "1", "", PolicyAdminOnly))
	assert.False(t, Authorize(models.RolUnknown, "1", "", PolicyAdminOnly))
}

func TestAuthorize_UnknownPolicyDenies(t *testing.T) {
	assert.False(t, Authorize(models.RolAdmin, "1", "1", Policy(99)))
}

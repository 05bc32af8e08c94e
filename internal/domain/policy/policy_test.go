package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/biblioteca-api/internal/domain/entity"
	"github.com/jhoicas/biblioteca-api/internal/domain/policy"
)

var (
	owner    = policy.Actor{ID: "u1", Role: entity.RoleUser}
	stranger = policy.Actor{ID: "u2", Role: entity.RoleUser}
	admin    = policy.Actor{ID: "adm", Role: entity.RoleAdmin}
)

func TestDecide(t *testing.T) {
	pending := policy.Resource{OwnerID: "u1", IsApproved: false}
	approved := policy.Resource{OwnerID: "u1", IsApproved: true}

	cases := []struct {
		name              string
		actor             policy.Actor
		res               policy.Resource
		action            policy.Action
		patchSetsApproval bool
		wantAllowed       bool
		wantReason        string
	}{
		// Update: propiedad
		{"dueño edita su feedback pendiente", owner, pending, policy.ActionUpdate, false, true, ""},
		{"no-dueño no puede editar", stranger, pending, policy.ActionUpdate, false, false, policy.ReasonNotOwnerUpdate},
		{"admin edita feedback ajeno", admin, pending, policy.ActionUpdate, false, true, ""},

		// Update: congelación por aprobación
		{"dueño no edita feedback aprobado", owner, approved, policy.ActionUpdate, false, false, policy.ReasonApprovedFrozen},
		{"admin sí edita feedback aprobado", admin, approved, policy.ActionUpdate, false, true, ""},

		// Update: el flag de aprobación es exclusivo de admin
		{"dueño no toca isApproved", owner, pending, policy.ActionUpdate, true, false, policy.ReasonApprovalIsAdmin},
		{"admin toca isApproved", admin, pending, policy.ActionUpdate, true, true, ""},

		// Delete: propiedad sin congelación
		{"dueño borra su feedback pendiente", owner, pending, policy.ActionDelete, false, true, ""},
		{"dueño borra su feedback aprobado", owner, approved, policy.ActionDelete, false, true, ""},
		{"no-dueño no puede borrar", stranger, approved, policy.ActionDelete, false, false, policy.ReasonNotOwnerDelete},
		{"admin borra feedback ajeno", admin, approved, policy.ActionDelete, false, true, ""},

		// Approve/Reject: solo admin, incluso siendo dueño
		{"dueño no aprueba su propio feedback", owner, pending, policy.ActionApprove, false, false, policy.ReasonAdminOnly},
		{"admin aprueba", admin, pending, policy.ActionApprove, false, true, ""},
		{"dueño no rechaza", owner, approved, policy.ActionReject, false, false, policy.ReasonAdminOnly},
		{"admin rechaza", admin, approved, policy.ActionReject, false, true, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := policy.Decide(tc.actor, tc.res, tc.action, tc.patchSetsApproval)
			assert.Equal(t, tc.wantAllowed, d.Allowed, "Allowed no coincide")
			assert.Equal(t, tc.wantReason, d.Reason, "Reason no coincide")
		})
	}
}

func TestActorIsAdmin(t *testing.T) {
	assert.True(t, admin.IsAdmin())
	assert.False(t, owner.IsAdmin())
	assert.False(t, policy.Actor{ID: "x", Role: "user"}.IsAdmin(),
		"el nombre de rol es sensible a mayúsculas")
}

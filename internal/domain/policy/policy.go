// Package policy implementa la política de autorización sobre Feedback como
// función de decisión pura: sin I/O, sin dependencias, evaluable en tests de
// forma aislada. El caller resuelve el recurso antes de invocarla.
package policy

import "github.com/jhoicas/biblioteca-api/internal/domain/entity"

// Action es la mutación solicitada sobre un Feedback.
type Action int

const (
	ActionUpdate Action = iota
	ActionDelete
	ActionApprove
	ActionReject
)

// Actor es el llamador autenticado: id + nombre de rol (USER | ADMIN).
type Actor struct {
	ID   string
	Role string
}

// IsAdmin indica el bypass administrativo.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// Resource es la vista mínima del Feedback que la política necesita.
type Resource struct {
	OwnerID    string
	IsApproved bool
}

// Decision es el resultado: permitido, o denegado con razón específica.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// Razones de denegación (texto de cara al cliente, contrato estable).
const (
	ReasonNotOwnerUpdate  = "You can only update your own feedback"
	ReasonNotOwnerDelete  = "You can only delete your own feedback"
	ReasonApprovedFrozen  = "Cannot update approved feedback"
	ReasonApprovalIsAdmin = "Only admins can change approval status"
	ReasonAdminOnly       = "Admin access required"
)

// Decide evalúa, en orden, las reglas de autorización para la acción dada.
// patchSetsApproval indica si el patch de un update menciona isApproved
// (regla 5: cambiar el flag de aprobación es exclusivo de ADMIN, con
// independencia de la propiedad).
func Decide(actor Actor, res Resource, action Action, patchSetsApproval bool) Decision {
	isOwner := actor.ID == res.OwnerID
	isAdmin := actor.IsAdmin()

	switch action {
	case ActionApprove, ActionReject:
		// Aprobar/rechazar es exclusivo de ADMIN, sea o no dueño.
		if !isAdmin {
			return deny(ReasonAdminOnly)
		}
		return allow()

	case ActionDelete:
		if !isOwner && !isAdmin {
			return deny(ReasonNotOwnerDelete)
		}
		// La congelación por aprobación NO aplica al borrado: el dueño puede
		// eliminar su feedback aprobado.
		return allow()

	case ActionUpdate:
		if !isOwner && !isAdmin {
			return deny(ReasonNotOwnerUpdate)
		}
		// Aprobación congela la edición de contenido para el dueño no-admin.
		if isOwner && !isAdmin && res.IsApproved {
			return deny(ReasonApprovedFrozen)
		}
		if patchSetsApproval && !isAdmin {
			return deny(ReasonApprovalIsAdmin)
		}
		return allow()
	}
	return deny(ReasonAdminOnly)
}

package entity

import "time"

// Role rol de un usuario. Enumeración cerrada: cualquier otro valor es inválido.
type Role string

const (
	RoleManager  Role = "manager"
	RoleMechanic Role = "mechanic"
	RoleCustomer Role = "customer"
)

// Capability acción autorizable sobre la API. Las comprobaciones de rol se
// hacen siempre vía Role.Can, nunca comparando strings sueltos en handlers.
type Capability string

const (
	CapAssignJobs      Capability = "assign_jobs"      // asignar/cancelar citas, ver tablero
	CapWorkJobs        Capability = "work_jobs"        // iniciar, agregar partes/mano de obra, completar
	CapManageInventory Capability = "manage_inventory" // crear/editar/eliminar ítems, ver low-stock
	CapViewInventory   Capability = "view_inventory"   // consultar catálogo
	CapManageSettings  Capability = "manage_settings"
	CapSubmitFeedback  Capability = "submit_feedback"
)

// Valid indica si el rol pertenece a la enumeración.
func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleMechanic, RoleCustomer:
		return true
	}
	return false
}

// Can indica si el rol está autorizado para la capacidad dada.
func (r Role) Can(c Capability) bool {
	switch c {
	case CapAssignJobs, CapManageInventory, CapManageSettings:
		return r == RoleManager
	case CapWorkJobs:
		return r == RoleMechanic
	case CapViewInventory:
		return r == RoleManager || r == RoleMechanic
	case CapSubmitFeedback:
		return r == RoleCustomer
	}
	return false
}

// User usuario del sistema (manager, mecánico o cliente).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt, nunca en claro después de persistir
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

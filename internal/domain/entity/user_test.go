package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
)

func TestRole_Valid(t *testing.T) {
	assert.True(t, entity.RoleManager.Valid())
	assert.True(t, entity.RoleMechanic.Valid())
	assert.True(t, entity.RoleCustomer.Valid())
	assert.False(t, entity.Role("admin").Valid(), "la enumeración es cerrada")
	assert.False(t, entity.Role("").Valid())
}

func TestRole_Can(t *testing.T) {
	cases := []struct {
		role entity.Role
		cap  entity.Capability
		want bool
	}{
		{entity.RoleManager, entity.CapAssignJobs, true},
		{entity.RoleManager, entity.CapManageInventory, true},
		{entity.RoleManager, entity.CapManageSettings, true},
		{entity.RoleManager, entity.CapViewInventory, true},
		{entity.RoleManager, entity.CapWorkJobs, false},
		{entity.RoleManager, entity.CapSubmitFeedback, false},

		{entity.RoleMechanic, entity.CapWorkJobs, true},
		{entity.RoleMechanic, entity.CapViewInventory, true},
		{entity.RoleMechanic, entity.CapAssignJobs, false},
		{entity.RoleMechanic, entity.CapManageInventory, false},

		{entity.RoleCustomer, entity.CapSubmitFeedback, true},
		{entity.RoleCustomer, entity.CapWorkJobs, false},
		{entity.RoleCustomer, entity.CapViewInventory, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.role.Can(tc.cap),
			"rol %s, capacidad %s", tc.role, tc.cap)
	}
}

func TestAppointmentStatus_Terminal(t *testing.T) {
	assert.False(t, entity.StatusScheduled.Terminal())
	assert.False(t, entity.StatusInProgress.Terminal())
	assert.True(t, entity.StatusCompleted.Terminal())
	assert.True(t, entity.StatusCancelled.Terminal())
}

func TestAppointment_IsAssignedTo(t *testing.T) {
	mech := "mech-1"
	appt := &entity.Appointment{AssignedMechanic: &mech}
	assert.True(t, appt.IsAssignedTo("mech-1"))
	assert.False(t, appt.IsAssignedTo("mech-2"))
	assert.False(t, (&entity.Appointment{}).IsAssignedTo("mech-1"))
}

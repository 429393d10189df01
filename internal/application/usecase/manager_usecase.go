package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Taller-api/internal/application/dto"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

// ManagerUseCase operaciones del manager que no tocan el ciclo de vida de
// las citas: plantel de mecánicos y tablero de estadísticas. Asignar y
// cancelar citas vive en jobs.UseCase.
type ManagerUseCase struct {
	users repository.UserRepository
	appts repository.AppointmentRepository
}

// NewManagerUseCase construye el caso de uso.
func NewManagerUseCase(users repository.UserRepository, appts repository.AppointmentRepository) *ManagerUseCase {
	return &ManagerUseCase{users: users, appts: appts}
}

// ListMechanics mecánicos del taller ordenados por nombre.
func (uc *ManagerUseCase) ListMechanics(ctx context.Context) ([]*entity.User, error) {
	return uc.users.ListByRole(entity.RoleMechanic)
}

// CreateMechanic alta de un mecánico con contraseña bcrypt.
func (uc *ManagerUseCase) CreateMechanic(ctx context.Context, in dto.CreateMechanicRequest) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email y password son obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.users.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: el email ya está registrado", domain.ErrDuplicate)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	mechanic := &entity.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         entity.RoleMechanic,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.users.Create(mechanic); err != nil {
		return nil, err
	}
	return mechanic, nil
}

// DashboardStats conteos globales de citas más tamaños de plantel.
type DashboardStats struct {
	Appointments entity.AppointmentStats
	Customers    int
	Mechanics    int
}

// Dashboard arma las estadísticas del tablero del manager.
func (uc *ManagerUseCase) Dashboard(ctx context.Context) (*DashboardStats, error) {
	apptStats, err := uc.appts.CountByStatus("")
	if err != nil {
		return nil, err
	}
	customers, err := uc.users.CountByRole(entity.RoleCustomer)
	if err != nil {
		return nil, err
	}
	mechanics, err := uc.users.CountByRole(entity.RoleMechanic)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		Appointments: *apptStats,
		Customers:    customers,
		Mechanics:    mechanics,
	}, nil
}

package repository

import "github.com/jhoicas/Taller-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	// GetByIDAndRole devuelve el usuario solo si además tiene el rol dado
	// (nil, nil si no existe o el rol no coincide).
	GetByIDAndRole(id string, role entity.Role) (*entity.User, error)
	ListByRole(role entity.Role) ([]*entity.User, error)
	CountByRole(role entity.Role) (int, error)
}

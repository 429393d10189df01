package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Taller-api/internal/application/jobs"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
)

var _ jobs.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta funciones dentro de una transacción con el repositorio
// de citas atado a la tx. GetForUpdate dentro de fn bloquea la fila de la
// cita, así que dos mutaciones concurrentes sobre el mismo job se serializan.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con el repo atado a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(appts repository.AppointmentRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewAppointmentRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

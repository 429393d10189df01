package jobs_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/jobs"
	"github.com/jhoicas/Taller-api/internal/domain"
	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/repository"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeApptRepo repositorio de citas en memoria. failAddPart simula un fallo
// de persistencia al guardar una línea de repuesto.
type fakeApptRepo struct {
	mu          sync.Mutex
	appts       map[string]*entity.Appointment
	failAddPart bool
}

func newFakeApptRepo() *fakeApptRepo {
	return &fakeApptRepo{appts: make(map[string]*entity.Appointment)}
}

func cloneAppt(a *entity.Appointment) *entity.Appointment {
	if a == nil {
		return nil
	}
	c := *a
	c.PartsUsed = append([]entity.PartUsage(nil), a.PartsUsed...)
	c.LaborItems = append([]entity.LaborItem(nil), a.LaborItems...)
	if a.AssignedMechanic != nil {
		m := *a.AssignedMechanic
		c.AssignedMechanic = &m
	}
	return &c
}

func (r *fakeApptRepo) Create(appt *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appts[appt.ID] = cloneAppt(appt)
	return nil
}

func (r *fakeApptRepo) GetByID(id string) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneAppt(r.appts[id]), nil
}

func (r *fakeApptRepo) GetForUpdate(id string) (*entity.Appointment, error) {
	return r.GetByID(id)
}

func (r *fakeApptRepo) ListByMechanic(mechanicID string) ([]*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Appointment
	for _, a := range r.appts {
		if a.AssignedMechanic != nil && *a.AssignedMechanic == mechanicID {
			out = append(out, cloneAppt(a))
		}
	}
	return out, nil
}

func (r *fakeApptRepo) ListUnassigned() ([]*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Appointment
	for _, a := range r.appts {
		if a.AssignedMechanic == nil && a.Status == entity.StatusScheduled {
			out = append(out, cloneAppt(a))
		}
	}
	return out, nil
}

func (r *fakeApptRepo) SetMechanic(id, mechanicID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appts[id].AssignedMechanic = &mechanicID
	return nil
}

func (r *fakeApptRepo) MarkStarted(id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.appts[id]
	a.Status = entity.StatusInProgress
	a.StartedAt = &at
	return nil
}

func (r *fakeApptRepo) AddPartUsage(usage *entity.PartUsage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAddPart {
		return fmt.Errorf("fallo simulado de escritura")
	}
	a := r.appts[usage.AppointmentID]
	a.PartsUsed = append(a.PartsUsed, *usage)
	return nil
}

func (r *fakeApptRepo) AddLaborItem(item *entity.LaborItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.appts[item.AppointmentID]
	a.LaborItems = append(a.LaborItems, *item)
	return nil
}

func (r *fakeApptRepo) MarkCompleted(id string, subtotal, finalCost decimal.Decimal, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a := r.appts[id]
	a.Status = entity.StatusCompleted
	a.Subtotal = decimal.NewNullDecimal(subtotal)
	a.FinalCost = decimal.NewNullDecimal(finalCost)
	a.FinishedAt = &at
	return nil
}

func (r *fakeApptRepo) MarkCancelled(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.appts[id].Status = entity.StatusCancelled
	return nil
}

func (r *fakeApptRepo) CountByStatus(mechanicID string) (*entity.AppointmentStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := &entity.AppointmentStats{}
	for _, a := range r.appts {
		if mechanicID != "" && (a.AssignedMechanic == nil || *a.AssignedMechanic != mechanicID) {
			continue
		}
		stats.Total++
		switch a.Status {
		case entity.StatusScheduled:
			stats.Scheduled++
		case entity.StatusInProgress:
			stats.InProgress++
		case entity.StatusCompleted:
			stats.Completed++
		case entity.StatusCancelled:
			stats.Cancelled++
		}
		if a.AssignedMechanic == nil {
			stats.Unassigned++
		}
	}
	return stats, nil
}

// fakeTxRunner serializa las transacciones con un mutex, igual que el
// bloqueo de fila serializa las mutaciones por cita en PostgreSQL.
type fakeTxRunner struct {
	mu   sync.Mutex
	repo *fakeApptRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(appts repository.AppointmentRepository) error) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return fn(t.repo)
}

// fakeInventoryRepo catálogo de repuestos en memoria con deducción atómica.
type fakeInventoryRepo struct {
	mu    sync.Mutex
	items map[string]*entity.InventoryItem
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: make(map[string]*entity.InventoryItem)}
}

func (r *fakeInventoryRepo) Create(item *entity.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *item
	r.items[item.ID] = &c
	return nil
}

func (r *fakeInventoryRepo) GetByID(id string) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, ok := r.items[id]; ok {
		c := *item
		return &c, nil
	}
	return nil, nil
}

func (r *fakeInventoryRepo) GetByName(name string) (*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, item := range r.items {
		if item.Name == name {
			c := *item
			return &c, nil
		}
	}
	return nil, nil
}

func (r *fakeInventoryRepo) List() ([]*entity.InventoryItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.InventoryItem
	for _, item := range r.items {
		c := *item
		out = append(out, &c)
	}
	return out, nil
}

func (r *fakeInventoryRepo) Update(item *entity.InventoryItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *item
	r.items[item.ID] = &c
	return nil
}

func (r *fakeInventoryRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeInventoryRepo) DeductStock(itemID string, quantity int) (*entity.StockSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: ítem %s", domain.ErrNotFound, itemID)
	}
	if item.Quantity < quantity {
		return nil, fmt.Errorf("%w: disponible %d, solicitado %d", domain.ErrInsufficientStock, item.Quantity, quantity)
	}
	item.Quantity -= quantity
	return &entity.StockSnapshot{
		InventoryItemID: item.ID,
		Name:            item.Name,
		SalePrice:       item.SalePrice,
	}, nil
}

func (r *fakeInventoryRepo) RestoreStock(itemID string, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[itemID]
	if !ok {
		return fmt.Errorf("%w: ítem %s", domain.ErrNotFound, itemID)
	}
	item.Quantity += quantity
	return nil
}

func (r *fakeInventoryRepo) ListLowStock() ([]*entity.InventoryItem, error) {
	return nil, nil
}

// fakeUserRepo usuarios en memoria.
type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIDAndRole(id string, role entity.Role) (*entity.User, error) {
	u := r.users[id]
	if u == nil || u.Role != role {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepo) ListByRole(role entity.Role) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) CountByRole(role entity.Role) (int, error) {
	n := 0
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

// fakeNotifier registra los despachos en un canal para sincronizar con la
// goroutine de notificación.
type fakeNotifier struct {
	err error
	ch  chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{ch: make(chan string, 8)}
}

func (n *fakeNotifier) NotifyJobCompleted(ctx context.Context, appt *entity.Appointment) error {
	n.ch <- appt.ID
	return n.err
}

// waitForDispatch espera la notificación de la cita o falla por timeout.
func (n *fakeNotifier) waitForDispatch(t *testing.T) string {
	t.Helper()
	select {
	case id := <-n.ch:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("la notificación de completación nunca se despachó")
		return ""
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture
// ──────────────────────────────────────────────────────────────────────────────

const (
	mechanicID = "mech-1"
	customerID = "cust-1"
	brakePads  = "item-brake-pads"
)

type fixture struct {
	uc       *jobs.UseCase
	appts    *fakeApptRepo
	inv      *fakeInventoryRepo
	users    *fakeUserRepo
	notifier *fakeNotifier
}

func newFixture() *fixture {
	appts := newFakeApptRepo()
	inv := newFakeInventoryRepo()
	users := &fakeUserRepo{users: map[string]*entity.User{
		mechanicID: {ID: mechanicID, Name: "Luis", Email: "luis@taller.test", Role: entity.RoleMechanic},
		customerID: {ID: customerID, Name: "Ana", Email: "ana@cliente.test", Role: entity.RoleCustomer},
	}}
	notifier := newFakeNotifier()
	// El ledger es el caso de uso real de inventario sobre el repo fake,
	// igual que en el cableado de producción.
	ledger := inventory.NewUseCase(inv)
	uc := jobs.NewUseCase(&fakeTxRunner{repo: appts}, appts, users, ledger, notifier, logger.Nop())
	return &fixture{uc: uc, appts: appts, inv: inv, users: users, notifier: notifier}
}

func (f *fixture) seedAppointment(id string, status entity.AppointmentStatus, mechanic string, discount bool) {
	appt := &entity.Appointment{
		ID:               id,
		CustomerID:       customerID,
		VehicleID:        "veh-1",
		ServiceType:      "Frenos",
		Date:             time.Now(),
		TimeSlot:         "10:00",
		Status:           status,
		DiscountEligible: discount,
	}
	if mechanic != "" {
		appt.AssignedMechanic = &mechanic
		if status == entity.StatusInProgress {
			now := time.Now()
			appt.StartedAt = &now
		}
	}
	_ = f.appts.Create(appt)
}

func (f *fixture) seedBrakePads(stock int) {
	_ = f.inv.Create(&entity.InventoryItem{
		ID:                brakePads,
		Name:              "Pastillas de freno",
		Quantity:          stock,
		Unit:              "units",
		CostPrice:         decimal.NewFromFloat(12.50),
		SalePrice:         decimal.NewFromFloat(20.00),
		LowStockThreshold: 5,
	})
}

func (f *fixture) stockOf(t *testing.T, itemID string) int {
	t.Helper()
	item, err := f.inv.GetByID(itemID)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida completo
// ──────────────────────────────────────────────────────────────────────────────

func TestLifecycle_Completo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedAppointment("appt-1", entity.StatusScheduled, "", true)
	f.seedBrakePads(10)

	// Asignar
	appt, err := f.uc.Assign(ctx, "appt-1", mechanicID)
	require.NoError(t, err)
	require.NotNil(t, appt.AssignedMechanic)
	assert.Equal(t, mechanicID, *appt.AssignedMechanic)

	// Iniciar
	appt, err = f.uc.Start(ctx, "appt-1", mechanicID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusInProgress, appt.Status)
	assert.NotNil(t, appt.StartedAt)

	// 2 pastillas a $20.00 + mano de obra $50.00
	appt, err = f.uc.AddPart(ctx, "appt-1", mechanicID, brakePads, 2)
	require.NoError(t, err)
	require.Len(t, appt.PartsUsed, 1)
	assert.Equal(t, "Pastillas de freno", appt.PartsUsed[0].Name)
	assert.True(t, appt.PartsUsed[0].SalePrice.Equal(decimal.NewFromFloat(20.00)),
		"la línea debe congelar el precio de venta al momento del consumo")
	assert.Equal(t, 8, f.stockOf(t, brakePads))

	appt, err = f.uc.AddLabor(ctx, "appt-1", mechanicID, "Cambio de pastillas", decimal.NewFromFloat(50.00))
	require.NoError(t, err)
	require.Len(t, appt.LaborItems, 1)

	// Completar: subtotal 90.00, con descuento del 5% → 85.50
	appt, err = f.uc.Complete(ctx, "appt-1", mechanicID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, appt.Status)
	require.True(t, appt.Subtotal.Valid)
	require.True(t, appt.FinalCost.Valid)
	assert.Equal(t, "90.00", appt.Subtotal.Decimal.StringFixed(2))
	assert.Equal(t, "85.50", appt.FinalCost.Decimal.StringFixed(2))
	assert.NotNil(t, appt.FinishedAt)

	// La notificación se despacha después del cierre
	assert.Equal(t, "appt-1", f.notifier.waitForDispatch(t))

	// Los totales quedaron persistidos
	stored, err := f.appts.GetByID("appt-1")
	require.NoError(t, err)
	assert.Equal(t, "85.50", stored.FinalCost.Decimal.StringFixed(2))
}

func TestComplete_SinDescuento(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedAppointment("appt-1", entity.StatusInProgress, mechanicID, false)
	f.seedBrakePads(10)

	_, err := f.uc.AddPart(ctx, "appt-1", mechanicID, brakePads, 2)
	require.NoError(t, err)
	_, err = f.uc.AddLabor(ctx, "appt-1", mechanicID, "Cambio de pastillas", decimal.NewFromFloat(50.00))
	require.NoError(t, err)

	appt, err := f.uc.Complete(ctx, "appt-1", mechanicID)
	require.NoError(t, err)
	assert.Equal(t, "90.00", appt.Subtotal.Decimal.StringFixed(2))
	assert.Equal(t, "90.00", appt.FinalCost.Decimal.StringFixed(2),
		"sin elegibilidad el total final es el subtotal")
	f.notifier.waitForDispatch(t)
}

// ──────────────────────────────────────────────────────────────────────────────
// Asignación
// ──────────────────────────────────────────────────────────────────────────────

func TestAssign_MecanicoInexistente(t *testing.T) {
	f := newFixture()
	f.seedAppointment("appt-1", entity.StatusScheduled, "", false)

	_, err := f.uc.Assign(context.Background(), "appt-1", "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssign_ClienteNoEsMecanico(t *testing.T) {
	f := newFixture()
	f.seedAppointment("appt-1", entity.StatusScheduled, "", false)

	// El usuario existe pero su rol es customer
	_, err := f.uc.Assign(context.Background(), "appt-1", customerID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAssign_YaAsignada(t *testing.T) {
	f := newFixture()
	f.seedAppointment("appt-1", entity.StatusScheduled, mechanicID, false)

	_, err := f.uc.Assign(context.Background(), "appt-1", mechanicID)
	assert.ErrorIs(t, err, domain.ErrAlreadyAssigned,
		"reasignar nunca sobreescribe en silencio")
}

// ──────────────────────────────────────────────────────────────────────────────
// Guardas de transición y autorización
// ──────────────────────────────────────────────────────────────────────────────

func TestStart_SoloElMecanicoAsignado(t *testing.T) {
	f := newFixture()
	f.seedAppointment("appt-1", entity.StatusScheduled, mechanicID, false)

	_, err := f.uc.Start(context.Background(), "appt-1", "otro-mecanico")
	assert.ErrorIs(t, err, domain.ErrNotAuthorized)
}

func TestStart_DobleStart(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedAppointment("appt-1", entity.StatusScheduled, mechanicID, false)

	_, err := f.uc.Start(ctx, "appt-1", mechanicID)
	require.NoError(t, err)

	_, err = f.uc.Start(ctx, "appt-1", mechanicID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"un segundo start debe rechazarse, no repetirse")
}

func TestAddPart_AntesDeIniciar(t *testing.T) {
	f := newFixture()
	f.seedAppointment("appt-1", entity.StatusScheduled, mechanicID, false)
	f.seedBrakePads(10)

	_, err := f.uc.AddPart(context.Background(), "appt-1", mechanicID, brakePads, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 10, f.stockOf(t, brakePads),
		"la guarda de estado debe evaluarse antes de tocar inventario")
}

func TestAddPart_CitaCompletada(t *testing.T) {
	f := newFixture()
	f.seedAppointment("appt-1", entity.StatusCompleted, mechanicID, false)
	f.seedBrakePads(10)

	_, err := f.uc.AddPart(context.Background(), "appt-1", mechanicID, brakePads, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 10, f.stockOf(t, brakePads))
}

func TestAddLabor_Validaciones(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedAppointment("appt-1", entity.StatusInProgress, mechanicID, false)

	_, err := f.uc.AddLabor(ctx, "appt-1", mechanicID, "   ", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "descripción vacía")

	_, err = f.uc.AddLabor(ctx, "appt-1", mechanicID, "Diagnóstico", decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "costo negativo")

	_, err = f.uc.AddLabor(ctx, "appt-1", mechanicID, "Diagnóstico", decimal.Zero)
	assert.NoError(t, err, "costo cero es válido (cortesía)")
}

func TestComplete_DobleComplete(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedAppointment("appt-1", entity.StatusInProgress, mechanicID, false)

	_, err := f.uc.Complete(ctx, "appt-1", mechanicID)
	require.NoError(t, err)
	f.notifier.waitForDispatch(t)

	_, err = f.uc.Complete(ctx, "appt-1", mechanicID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition,
		"un segundo complete no debe facturar dos veces")

	select {
	case id := <-f.notifier.ch:
		t.Fatalf("no debe despacharse una segunda notificación (llegó %s)", id)
	case <-time.After(100 * time.Millisecond):
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Stock insuficiente y compensación
// ──────────────────────────────────────────────────────────────────────────────

func TestAddPart_StockInsuficiente(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedAppointment("appt-1", entity.StatusInProgress, mechanicID, false)
	f.seedBrakePads(5)

	// Consumir todo el stock disponible
	_, err := f.uc.AddPart(ctx, "appt-1", mechanicID, brakePads, 5)
	require.NoError(t, err)
	assert.Equal(t, 0, f.stockOf(t, brakePads))

	// La siguiente unidad debe rechazarse sin dejar el stock negativo
	_, err = f.uc.AddPart(ctx, "appt-1", mechanicID, brakePads, 1)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 0, f.stockOf(t, brakePads))

	appt, err := f.appts.GetByID("appt-1")
	require.NoError(t, err)
	assert.Len(t, appt.PartsUsed, 1, "el rechazo no debe agregar línea a la cita")
}

func TestAddPart_CantidadInvalida(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedAppointment("appt-1", entity.StatusInProgress, mechanicID, false)
	f.seedBrakePads(10)

	for _, qty := range []int{0, -3} {
		_, err := f.uc.AddPart(ctx, "appt-1", mechanicID, brakePads, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad %d", qty)
	}
	assert.Equal(t, 10, f.stockOf(t, brakePads))
}

func TestAddPart_CompensacionRestauraStock(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedAppointment("appt-1", entity.StatusInProgress, mechanicID, false)
	f.seedBrakePads(10)
	f.appts.failAddPart = true

	_, err := f.uc.AddPart(ctx, "appt-1", mechanicID, brakePads, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDependencyFailure)
	assert.Equal(t, 10, f.stockOf(t, brakePads),
		"el stock descontado debe restaurarse cuando la línea no se pudo guardar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Notificación desacoplada
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_FalloDeNotificacionNoRevierte(t *testing.T) {
	f := newFixture()
	f.notifier.err = fmt.Errorf("smtp caído")
	f.seedAppointment("appt-1", entity.StatusInProgress, mechanicID, false)

	appt, err := f.uc.Complete(context.Background(), "appt-1", mechanicID)
	require.NoError(t, err, "la completación no depende del envío de la factura")
	assert.Equal(t, entity.StatusCompleted, appt.Status)
	f.notifier.waitForDispatch(t)

	stored, err := f.appts.GetByID("appt-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, stored.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancelación
// ──────────────────────────────────────────────────────────────────────────────

func TestCancel_DesdeScheduled(t *testing.T) {
	f := newFixture()
	f.seedAppointment("appt-1", entity.StatusScheduled, "", false)

	appt, err := f.uc.Cancel(context.Background(), "appt-1")
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, appt.Status)
}

func TestCancel_EnProgresoSeRechaza(t *testing.T) {
	f := newFixture()
	f.seedAppointment("appt-1", entity.StatusInProgress, mechanicID, false)

	_, err := f.uc.Cancel(context.Background(), "appt-1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: el stock jamás queda negativo
// ──────────────────────────────────────────────────────────────────────────────

func TestAddPart_ConcurrenciaAgotaStockSinNegativos(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.seedAppointment("appt-1", entity.StatusInProgress, mechanicID, false)
	f.seedBrakePads(10)

	const workers = 20
	var wg sync.WaitGroup
	var okCount, insufficientCount int64
	var mu sync.Mutex

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.AddPart(ctx, "appt-1", mechanicID, brakePads, 1)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				okCount++
			case errors.Is(err, domain.ErrInsufficientStock):
				insufficientCount++
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 10, okCount, "deben aceptarse exactamente 10 unidades")
	assert.EqualValues(t, workers-10, insufficientCount)
	assert.Equal(t, 0, f.stockOf(t, brakePads))

	appt, err := f.appts.GetByID("appt-1")
	require.NoError(t, err)
	assert.Len(t, appt.PartsUsed, 10, "cada deducción aceptada tiene su línea")
}

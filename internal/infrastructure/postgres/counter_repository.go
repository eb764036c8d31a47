package postgres

import (
	"context"
	"fmt"

	"github.com/flowgrid/flowgrid-api/internal/domain/repository"
)

var _ repository.CounterRepository = (*CounterRepo)(nil)

// CounterRepo implementación del puerto CounterRepository sobre PostgreSQL.
type CounterRepo struct {
	q Querier
}

// NewCounterRepository construye el adaptador de contadores. Pasar pool o tx (Querier).
func NewCounterRepository(q Querier) *CounterRepo {
	return &CounterRepo{q: q}
}

// Next incrementa y devuelve el contador en una sola sentencia. El upsert
// crea el contador en 1 la primera vez; dos llamadas concurrentes nunca
// reciben el mismo valor.
func (r *CounterRepo) Next(name string) (int64, error) {
	var value int64
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO counters (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		RETURNING value`, name,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("next counter %q: %w", name, err)
	}
	return value, nil
}

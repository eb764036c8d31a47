package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flowgrid/flowgrid-api/internal/domain/entity"
)

// CanTransitionOrder implementa la progresión lineal
// pending → processing → shipped → completed, con cancelled como único escape.
func TestCanTransitionOrder(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{entity.OrderStatusPending, entity.OrderStatusProcessing, true},
		{entity.OrderStatusPending, entity.OrderStatusShipped, true}, // saltar etapas hacia adelante es válido
		{entity.OrderStatusProcessing, entity.OrderStatusShipped, true},
		{entity.OrderStatusShipped, entity.OrderStatusCompleted, true},
		{entity.OrderStatusPending, entity.OrderStatusCancelled, true},
		{entity.OrderStatusShipped, entity.OrderStatusCancelled, true},

		{entity.OrderStatusProcessing, entity.OrderStatusPending, false}, // no se retrocede
		{entity.OrderStatusCompleted, entity.OrderStatusCancelled, false},
		{entity.OrderStatusCancelled, entity.OrderStatusPending, false},
		{entity.OrderStatusCancelled, entity.OrderStatusProcessing, false},
		{entity.OrderStatusCompleted, entity.OrderStatusShipped, false},
		{"desconocido", entity.OrderStatusShipped, false},
	}
	for _, tc := range cases {
		got := entity.CanTransitionOrder(tc.from, tc.to)
		assert.Equalf(t, tc.want, got, "%s → %s", tc.from, tc.to)
	}
}

func TestCanTransitionOrder_MismoEstadoEsNoOp(t *testing.T) {
	for _, s := range []string{
		entity.OrderStatusPending, entity.OrderStatusProcessing,
		entity.OrderStatusShipped, entity.OrderStatusCompleted, entity.OrderStatusCancelled,
	} {
		assert.Truef(t, entity.CanTransitionOrder(s, s), "%s → %s", s, s)
	}
}

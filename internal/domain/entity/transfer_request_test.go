package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/invorya/pos-api/internal/domain"
	"github.com/invorya/pos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Máquina de estados de TransferRequest:
//
//	pending  -> approved | rejected
//	approved -> completed
//
// rejected y completed son terminales; ninguna transición es reversible.
// ──────────────────────────────────────────────────────────────────────────────

func TestTransferRequest_TransicionesValidas(t *testing.T) {
	cases := []struct {
		nombre string
		desde  string
		hacia  string
	}{
		{"pending a approved", entity.TransferStatusPending, entity.TransferStatusApproved},
		{"pending a rejected", entity.TransferStatusPending, entity.TransferStatusRejected},
		{"approved a completed", entity.TransferStatusApproved, entity.TransferStatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			req := &entity.TransferRequest{Status: tc.desde}
			require.True(t, req.CanTransition(tc.hacia))
			require.NoError(t, req.Transition(tc.hacia))
			assert.Equal(t, tc.hacia, req.Status, "la transición debe mutar el estado")
		})
	}
}

func TestTransferRequest_TransicionesInvalidas(t *testing.T) {
	cases := []struct {
		nombre string
		desde  string
		hacia  string
	}{
		{"pending a completed salta la aprobación", entity.TransferStatusPending, entity.TransferStatusCompleted},
		{"approved a rejected ya no se puede rechazar", entity.TransferStatusApproved, entity.TransferStatusRejected},
		{"approved a approved no es re-aprobable", entity.TransferStatusApproved, entity.TransferStatusApproved},
		{"rejected es terminal", entity.TransferStatusRejected, entity.TransferStatusApproved},
		{"completed es terminal", entity.TransferStatusCompleted, entity.TransferStatusPending},
		{"completed no se re-recibe", entity.TransferStatusCompleted, entity.TransferStatusCompleted},
	}
	for _, tc := range cases {
		t.Run(tc.nombre, func(t *testing.T) {
			req := &entity.TransferRequest{Status: tc.desde}
			assert.False(t, req.CanTransition(tc.hacia))

			err := req.Transition(tc.hacia)
			require.ErrorIs(t, err, domain.ErrInvalidStateTransition)
			assert.Equal(t, tc.desde, req.Status, "una transición ilegal no debe tocar el estado")
		})
	}
}

func TestValidTransferStatus(t *testing.T) {
	for _, s := range []string{"pending", "approved", "rejected", "completed"} {
		assert.True(t, entity.ValidTransferStatus(s), s)
	}
	assert.False(t, entity.ValidTransferStatus("in_transit"))
	assert.False(t, entity.ValidTransferStatus(""))
}

func TestValidMovementType(t *testing.T) {
	for _, mt := range []string{"sale", "purchase", "adjustment", "transfer", "return"} {
		assert.True(t, entity.ValidMovementType(mt), mt)
	}
	assert.False(t, entity.ValidMovementType("theft"))
	assert.False(t, entity.ValidMovementType(""))
}

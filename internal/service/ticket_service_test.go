package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Muratozbk/support-desk/internal/errs"
	"github.com/Muratozbk/support-desk/internal/model"
)

func TestTicketCreate_SetsOwnerAndNewStatus(t *testing.T) {
	db := newTestDB(t)
	uid := seedUser(t, db, "alice", false)
	svc := NewTicketService(db)

	ticket, err := svc.Create(context.Background(), uid, "Laptop", "Won't boot")
	require.NoError(t, err)
	assert.NotEmpty(t, ticket.ID)
	assert.Equal(t, uid, ticket.Owner)
	assert.Equal(t, model.TicketStatusNew, ticket.Status)
	assert.Equal(t, "Laptop", ticket.Product)

	got, err := svc.Get(context.Background(), uid, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, got.ID)
}

func TestTicketCreate_RequiresProductAndDescription(t *testing.T) {
	db := newTestDB(t)
	uid := seedUser(t, db, "alice", false)
	svc := NewTicketService(db)

	cases := []struct {
		name    string
		product string
		desc    string
	}{
		{"empty product", "", "desc"},
		{"empty description", "Laptop", ""},
		{"both empty", "", ""},
		{"whitespace only", "   ", "\t"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uid, tc.product, tc.desc)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
		})
	}
}

func TestTicketGet_NotFoundBeforeOwnership(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "alice", false)
	other := seedUser(t, db, "bob", false)
	svc := NewTicketService(db)

	ticket, err := svc.Create(context.Background(), owner, "Laptop", "Won't boot")
	require.NoError(t, err)

	// Existing ticket, foreign caller: unauthorized.
	_, err = svc.Get(context.Background(), other, ticket.ID)
	assert.ErrorIs(t, err, errs.ErrNotOwner)

	// Missing ticket: not-found for everyone, owner included.
	_, err = svc.Get(context.Background(), owner, "no-such-id")
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)
	_, err = svc.Get(context.Background(), other, "no-such-id")
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)
}

func TestTicketMutations_ByNonOwnerFail(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "alice", false)
	other := seedUser(t, db, "bob", false)
	svc := NewTicketService(db)

	ticket, err := svc.Create(context.Background(), owner, "Laptop", "Won't boot")
	require.NoError(t, err)

	product := "Phone"
	_, err = svc.Update(context.Background(), other, ticket.ID, TicketPatch{Product: &product})
	assert.ErrorIs(t, err, errs.ErrNotOwner)

	_, err = svc.Close(context.Background(), other, ticket.ID)
	assert.ErrorIs(t, err, errs.ErrNotOwner)

	err = svc.Delete(context.Background(), other, ticket.ID)
	assert.ErrorIs(t, err, errs.ErrNotOwner)

	// Nothing changed for the owner.
	got, err := svc.Get(context.Background(), owner, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", got.Product)
	assert.Equal(t, model.TicketStatusNew, got.Status)
}

func TestTicketMutations_MissingTicketIsNotFound(t *testing.T) {
	db := newTestDB(t)
	uid := seedUser(t, db, "alice", false)
	svc := NewTicketService(db)

	product := "Phone"
	_, err := svc.Update(context.Background(), uid, "missing", TicketPatch{Product: &product})
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)

	_, err = svc.Close(context.Background(), uid, "missing")
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)

	err = svc.Delete(context.Background(), uid, "missing")
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)
}

func TestTicketUpdate_WhitelistedPatch(t *testing.T) {
	db := newTestDB(t)
	uid := seedUser(t, db, "alice", false)
	svc := NewTicketService(db)

	ticket, err := svc.Create(context.Background(), uid, "Laptop", "Won't boot")
	require.NoError(t, err)

	product := "Desktop"
	status := model.TicketStatusOpen
	got, err := svc.Update(context.Background(), uid, ticket.ID, TicketPatch{
		Product: &product,
		Status:  &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Desktop", got.Product)
	assert.Equal(t, model.TicketStatusOpen, got.Status)
	assert.Equal(t, "Won't boot", got.Description)
	assert.Equal(t, uid, got.Owner)

	// Persisted, not just in-memory.
	reloaded, err := svc.Get(context.Background(), uid, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Desktop", reloaded.Product)
	assert.Equal(t, model.TicketStatusOpen, reloaded.Status)
}

func TestTicketUpdate_RejectsInvalidValues(t *testing.T) {
	db := newTestDB(t)
	uid := seedUser(t, db, "alice", false)
	svc := NewTicketService(db)

	ticket, err := svc.Create(context.Background(), uid, "Laptop", "Won't boot")
	require.NoError(t, err)

	blank := "  "
	_, err = svc.Update(context.Background(), uid, ticket.ID, TicketPatch{Product: &blank})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = svc.Update(context.Background(), uid, ticket.ID, TicketPatch{Description: &blank})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	bogus := model.TicketStatus("resolved")
	_, err = svc.Update(context.Background(), uid, ticket.ID, TicketPatch{Status: &bogus})
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	// The rejected patches left the record untouched.
	got, err := svc.Get(context.Background(), uid, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", got.Product)
	assert.Equal(t, model.TicketStatusNew, got.Status)
}

func TestTicketUpdate_EmptyPatchIsNoop(t *testing.T) {
	db := newTestDB(t)
	uid := seedUser(t, db, "alice", false)
	svc := NewTicketService(db)

	ticket, err := svc.Create(context.Background(), uid, "Laptop", "Won't boot")
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), uid, ticket.ID, TicketPatch{})
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, got.ID)
	assert.Equal(t, "Laptop", got.Product)
}

func TestTicketClose_Idempotent(t *testing.T) {
	db := newTestDB(t)
	uid := seedUser(t, db, "alice", false)
	svc := NewTicketService(db)

	ticket, err := svc.Create(context.Background(), uid, "Laptop", "Won't boot")
	require.NoError(t, err)

	closed, err := svc.Close(context.Background(), uid, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusClosed, closed.Status)

	again, err := svc.Close(context.Background(), uid, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusClosed, again.Status)

	got, err := svc.Get(context.Background(), uid, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketStatusClosed, got.Status)
}

func TestTicketList_OnlyOwnTickets(t *testing.T) {
	db := newTestDB(t)
	alice := seedUser(t, db, "alice", false)
	bob := seedUser(t, db, "bob", false)
	svc := NewTicketService(db)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), alice, "Laptop", "Won't boot")
		require.NoError(t, err)
	}
	_, err := svc.Create(context.Background(), bob, "Phone", "Cracked screen")
	require.NoError(t, err)

	items, err := svc.List(context.Background(), alice)
	require.NoError(t, err)
	assert.Len(t, items, 3)
	for _, item := range items {
		assert.Equal(t, alice, item.Owner)
	}

	empty, err := svc.List(context.Background(), seedUser(t, db, "carol", false))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTicketDelete_RemovesTicketAndNotes(t *testing.T) {
	db := newTestDB(t)
	uid := seedUser(t, db, "alice", false)
	svc := NewTicketService(db)
	notes := NewNoteService(db)

	ticket, err := svc.Create(context.Background(), uid, "Laptop", "Won't boot")
	require.NoError(t, err)
	_, err = notes.Create(context.Background(), uid, ticket.ID, "Checked power cable")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), uid, ticket.ID))

	_, err = svc.Get(context.Background(), uid, ticket.ID)
	assert.ErrorIs(t, err, errs.ErrTicketNotFound)

	var count int64
	require.NoError(t, db.Model(&model.Note{}).Where("ticket_id = ?", ticket.ID).Count(&count).Error)
	assert.Zero(t, count)
}

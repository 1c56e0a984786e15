package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Muratozbk/support-desk/internal/errs"
	"github.com/Muratozbk/support-desk/internal/model"
)

// TicketServicer is the ticket lifecycle contract consumed by handlers
// (kept as an interface so tests can substitute the implementation).
type TicketServicer interface {
	List(ctx context.Context, uid string) ([]model.Ticket, error)
	Get(ctx context.Context, uid, id string) (*model.Ticket, error)
	Create(ctx context.Context, uid, product, description string) (*model.Ticket, error)
	Update(ctx context.Context, uid, id string, patch TicketPatch) (*model.Ticket, error)
	Close(ctx context.Context, uid, id string) (*model.Ticket, error)
	Delete(ctx context.Context, uid, id string) error
}

// TicketPatch is the set of fields a caller may change on a ticket. Owner and
// id are deliberately not part of it.
type TicketPatch struct {
	Product     *string
	Description *string
	Status      *model.TicketStatus
}

type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

// loadOwned fetches a ticket and verifies the caller owns it. The existence
// check runs before the ownership check: a missing ticket is always
// ErrTicketNotFound, regardless of who asks.
func loadOwned(ctx context.Context, db *gorm.DB, uid, id string) (*model.Ticket, error) {
	var t model.Ticket
	if err := db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrTicketNotFound
		}
		return nil, err
	}
	if t.Owner != uid {
		return nil, errs.ErrNotOwner
	}
	return &t, nil
}

// List returns the caller's tickets, most recent first.
func (s *TicketService) List(ctx context.Context, uid string) ([]model.Ticket, error) {
	var items []model.Ticket
	err := s.db.WithContext(ctx).
		Where("owner = ?", uid).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (s *TicketService) Get(ctx context.Context, uid, id string) (*model.Ticket, error) {
	return loadOwned(ctx, s.db, uid, id)
}

// Create inserts a new ticket owned by uid with status "new". Product and
// description are required and must be non-blank.
func (s *TicketService) Create(ctx context.Context, uid, product, description string) (*model.Ticket, error) {
	product = strings.TrimSpace(product)
	description = strings.TrimSpace(description)
	if product == "" || description == "" {
		return nil, errs.ErrInvalidInput
	}
	t := &model.Ticket{
		ID:          uuid.NewString(),
		Owner:       uid,
		Product:     product,
		Description: description,
		Status:      model.TicketStatusNew,
	}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// Update applies a whitelisted patch to an owned ticket. Required fields may
// not be blanked out, and status must stay inside the known set — no write
// can leave a ticket with an undefined status.
func (s *TicketService) Update(ctx context.Context, uid, id string, patch TicketPatch) (*model.Ticket, error) {
	t, err := loadOwned(ctx, s.db, uid, id)
	if err != nil {
		return nil, err
	}
	changes := make(map[string]interface{})
	if patch.Product != nil {
		p := strings.TrimSpace(*patch.Product)
		if p == "" {
			return nil, errs.ErrInvalidInput
		}
		changes["product"] = p
		t.Product = p
	}
	if patch.Description != nil {
		d := strings.TrimSpace(*patch.Description)
		if d == "" {
			return nil, errs.ErrInvalidInput
		}
		changes["description"] = d
		t.Description = d
	}
	if patch.Status != nil {
		if !model.ValidStatus(*patch.Status) {
			return nil, errs.ErrInvalidInput
		}
		changes["status"] = string(*patch.Status)
		t.Status = *patch.Status
	}
	if len(changes) == 0 {
		return t, nil
	}
	if err := s.db.WithContext(ctx).Model(t).Updates(changes).Error; err != nil {
		return nil, err
	}
	return t, nil
}

// Close forces status to "closed" and nothing else. Closing an already
// closed ticket succeeds and leaves it closed.
func (s *TicketService) Close(ctx context.Context, uid, id string) (*model.Ticket, error) {
	status := model.TicketStatusClosed
	return s.Update(ctx, uid, id, TicketPatch{Status: &status})
}

// Delete removes an owned ticket together with its notes.
func (s *TicketService) Delete(ctx context.Context, uid, id string) error {
	if _, err := loadOwned(ctx, s.db, uid, id); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The FK cascade covers this on Postgres; the explicit delete keeps
		// the behavior on stores without the constraint applied.
		if err := tx.Where("ticket_id = ?", id).Delete(&model.Note{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Ticket{}, "id = ?", id).Error
	})
}

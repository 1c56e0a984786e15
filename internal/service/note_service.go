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

// NoteServicer is the note sub-resource contract consumed by handlers.
type NoteServicer interface {
	List(ctx context.Context, uid, ticketID string) ([]model.Note, error)
	Create(ctx context.Context, uid, ticketID, text string) (*model.Note, error)
}

// NoteService manages notes attached to tickets. Both operations gate on
// ticket ownership, mirroring the ticket service checks.
type NoteService struct {
	db *gorm.DB
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{db: db}
}

// List returns the notes of a ticket the caller owns, oldest first.
func (s *NoteService) List(ctx context.Context, uid, ticketID string) ([]model.Note, error) {
	if _, err := loadOwned(ctx, s.db, uid, ticketID); err != nil {
		return nil, err
	}
	var notes []model.Note
	err := s.db.WithContext(ctx).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&notes).Error
	return notes, err
}

// Create attaches a note to a ticket the caller owns. The is_staff flag is
// read from the author's user record, not from the request.
func (s *NoteService) Create(ctx context.Context, uid, ticketID, text string) (*model.Note, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.ErrInvalidInput
	}
	if _, err := loadOwned(ctx, s.db, uid, ticketID); err != nil {
		return nil, err
	}
	var author model.User
	if err := s.db.WithContext(ctx).First(&author, "id = ?", uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrUserNotFound
		}
		return nil, err
	}
	n := &model.Note{
		ID:       uuid.NewString(),
		TicketID: ticketID,
		Author:   uid,
		Text:     text,
		IsStaff:  author.IsStaff,
	}
	if err := s.db.WithContext(ctx).Create(n).Error; err != nil {
		return nil, err
	}
	return n, nil
}

package model

import "time"

type TicketStatus string

const (
	TicketStatusNew    TicketStatus = "new"
	TicketStatusOpen   TicketStatus = "open"
	TicketStatusClosed TicketStatus = "closed"
)

// ValidStatus reports whether s is one of the known ticket statuses.
func ValidStatus(s TicketStatus) bool {
	switch s {
	case TicketStatusNew, TicketStatusOpen, TicketStatusClosed:
		return true
	}
	return false
}

// User is an account that can authenticate and own tickets.
type User struct {
	ID           string `gorm:"type:char(36);primaryKey" json:"id"`
	Name         string `gorm:"type:varchar(255);not null" json:"name"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	IsStaff      bool   `gorm:"not null;default:false" json:"is_staff"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Ticket is a support request owned by exactly one user. Owner is set at
// creation and never changes.
type Ticket struct {
	ID          string       `gorm:"type:char(36);primaryKey" json:"id"`
	Owner       string       `gorm:"type:char(36);index;not null" json:"owner"`
	Product     string       `gorm:"type:varchar(255);not null" json:"product"`
	Description string       `gorm:"type:text;not null" json:"description"`
	Status      TicketStatus `gorm:"type:varchar(32);index;not null;default:'new'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Ticket) TableName() string { return "tickets" }

// Note is a free-text annotation attached to a ticket. IsStaff is copied
// from the author's user record at creation, never taken from the request.
type Note struct {
	ID       string `gorm:"type:char(36);primaryKey" json:"id"`
	TicketID string `gorm:"type:char(36);index;not null" json:"ticket_id"`
	Author   string `gorm:"type:char(36);index;not null" json:"author"`
	Text     string `gorm:"type:text;not null" json:"text"`
	IsStaff  bool   `gorm:"not null;default:false" json:"is_staff"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Note) TableName() string { return "notes" }

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies who authored a turn
type Role string

// Turn roles
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn represents one entry in a conversation log
type Turn struct {
	ID        uuid.UUID `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Detail    any       `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserTurn creates a turn authored by the user
func NewUserTurn(content string) Turn {
	return newTurn(RoleUser, content, nil)
}

// NewAssistantTurn creates a turn authored by the assistant with an optional detail payload
func NewAssistantTurn(content string, detail any) Turn {
	return newTurn(RoleAssistant, content, detail)
}

func newTurn(role Role, content string, detail any) Turn {
	return Turn{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		Detail:    detail,
		CreatedAt: time.Now().UTC(),
	}
}

// IsUser reports whether the turn was authored by the user
func (t Turn) IsUser() bool {
	return t.Role == RoleUser
}

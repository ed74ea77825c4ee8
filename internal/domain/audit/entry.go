package audit

import (
	"encoding/json"

	"github.com/debtledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Action represents the kind of mutation an audit entry records
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// IsValid returns true if the action is known
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// Entry is an append-only record of one mutation: who changed what, with
// before/after images. Entries are never updated; they are deleted only
// when a restore intentionally clears the log.
type Entry struct {
	shared.BaseEntity
	UserID    *uuid.UUID
	Action    Action
	TableName string
	RecordID  string
	OldData   json.RawMessage
	NewData   json.RawMessage
}

// NewEntry creates an audit entry. oldData/newData may be nil; non-nil
// values must marshal to JSON.
func NewEntry(userID uuid.UUID, action Action, tableName, recordID string, oldData, newData any) (*Entry, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Unknown audit action")
	}
	if tableName == "" || recordID == "" {
		return nil, shared.NewDomainError("INVALID_TARGET", "Table name and record ID are required")
	}

	e := &Entry{
		BaseEntity: shared.NewBaseEntity(),
		Action:     action,
		TableName:  tableName,
		RecordID:   recordID,
	}
	if userID != uuid.Nil {
		e.UserID = &userID
	}

	var err error
	if e.OldData, err = marshalImage(oldData); err != nil {
		return nil, err
	}
	if e.NewData, err = marshalImage(newData); err != nil {
		return nil, err
	}
	return e, nil
}

func marshalImage(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	if raw, ok := v.(json.RawMessage); ok {
		return raw, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_IMAGE", "Audit image is not serializable")
	}
	return data, nil
}

// ContainsCredential reports whether either image carries a password
// field. Used when re-importing historical audit data from a backup.
func (e *Entry) ContainsCredential() bool {
	return imageHasField(e.OldData, "password") || imageHasField(e.NewData, "password")
}

func imageHasField(raw json.RawMessage, field string) bool {
	if len(raw) == 0 {
		return false
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return false
	}
	_, ok := m[field]
	return ok
}

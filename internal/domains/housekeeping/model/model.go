package model

import (
	"strings"

	"innkeep/shared/constant"
	"innkeep/shared/failure"
	"innkeep/shared/model"
)

const (
	TableName  = "housekeeping_tasks"
	EntityName = "housekeeping_task"

	FieldID       = "id"
	FieldRoomID   = "room_id"
	FieldKind     = "kind"
	FieldNotes    = "notes"
	FieldStatus   = "status"
	FieldAssignee = "assignee"
)

type Kind string

const (
	KindCleaning    Kind = "cleaning"
	KindMaintenance Kind = "maintenance"
)

func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindCleaning:
		return KindCleaning, nil
	case KindMaintenance:
		return KindMaintenance, nil
	default:
		return constant.Empty, failure.BadRequestFromString("unknown task kind: " + s) //nolint:wrapcheck
	}
}

func (k Kind) String() string {
	return string(k)
}

type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusOpen:
		return StatusOpen, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusDone:
		return StatusDone, nil
	default:
		return constant.Empty, failure.BadRequestFromString("unknown task status: " + s) //nolint:wrapcheck
	}
}

func (s Status) String() string {
	return string(s)
}

type Task struct {
	ID       string `db:"id"`
	RoomID   string `db:"room_id"`
	Kind     Kind   `db:"kind"`
	Notes    string `db:"notes"`
	Status   Status `db:"status"`
	Assignee string `db:"assignee"`

	model.Metadata
}

package models

// Status is the workflow state of a task. Tasks cycle through the three
// known states; values outside the set are tolerated in storage and
// normalized by Next.
type Status string

// Known task statuses
const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// DefaultStatus is the status assigned to new tasks when none is chosen
const DefaultStatus = StatusTodo

// Statuses lists the known statuses in workflow order
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

// Next returns the status that follows s in the cycle
// todo -> doing -> done -> todo. The function is total: any
// unrecognized value advances to todo.
func (s Status) Next() Status {
	switch s {
	case StatusTodo:
		return StatusDoing
	case StatusDoing:
		return StatusDone
	default:
		return StatusTodo
	}
}

// IsValid reports whether s is one of the known statuses
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

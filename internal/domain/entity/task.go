package entity

// TaskStatus is the lifecycle state of an editorial task.
type TaskStatus string

const (
	TaskOpen   TaskStatus = "OPEN"
	TaskClosed TaskStatus = "CLOSED"
)

// Task is an editorial assignment an article can be written against. Closing
// is a one-way transition; the fee freezes with it.
type Task struct {
	id     int64
	title  string
	author int64
	editor int64
	fee    int64
	status TaskStatus
}

// TaskState is the field snapshot used by the task factory.
type TaskState struct {
	ID     int64
	Title  string
	Author int64
	Editor int64
	Fee    int64
	Status TaskStatus
}

// NewTask returns an open task.
func NewTask(title string, author, editor, fee int64) *Task {
	return RestoreTask(TaskState{Title: title, Author: author, Editor: editor, Fee: fee, Status: TaskOpen})
}

// RestoreTask rehydrates a task from a snapshot.
func RestoreTask(s TaskState) *Task {
	return &Task{id: s.ID, title: s.Title, author: s.Author, editor: s.Editor, fee: s.Fee, status: s.Status}
}

// State returns a snapshot of the task for serialization.
func (t *Task) State() TaskState {
	return TaskState{ID: t.id, Title: t.title, Author: t.author, Editor: t.editor, Fee: t.fee, Status: t.status}
}

func (t *Task) ID() int64          { return t.id }
func (t *Task) Title() string      { return t.title }
func (t *Task) Author() int64      { return t.author }
func (t *Task) Editor() int64      { return t.editor }
func (t *Task) Fee() int64         { return t.fee }
func (t *Task) Status() TaskStatus { return t.status }

// IsOpen reports whether the task is still open.
func (t *Task) IsOpen() bool { return t.status == TaskOpen }

// Close completes the task.
func (t *Task) Close() error {
	if t.status == TaskClosed {
		return Conflictf("task %d is already closed", t.id)
	}
	t.status = TaskClosed
	return nil
}

// SetFee changes the fee of an open task.
func (t *Task) SetFee(fee int64) error {
	if t.status == TaskClosed {
		return Forbiddenf("fee of closed task %d cannot change", t.id)
	}
	t.fee = fee
	return nil
}

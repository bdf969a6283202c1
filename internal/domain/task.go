package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Difficulty is the enumerated effort level of a Task.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// Task validation errors
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwnerID  = errors.New("task owner ID cannot be empty")
	ErrEmptyTaskTitle    = errors.New("task title cannot be empty")
	ErrInvalidDifficulty = errors.New("invalid task difficulty")
)

// Task is a to-do record owned by a single account.
// Done has two states, pending (false) and done (true); ToggleDone is the
// only transition between them.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	IsDone      bool       `json:"is_done"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NewTask creates a pending Task owned by ownerID.
// Returns an error if validation fails.
func NewTask(ownerID uuid.UUID, title, description string, difficulty Difficulty) (*Task, error) {
	task := &Task{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		Title:       title,
		Description: description,
		Difficulty:  difficulty,
		IsDone:      false,
		CreatedAt:   time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}
	if t.OwnerID == uuid.Nil {
		return ErrEmptyTaskOwnerID
	}
	if t.Title == "" {
		return ErrEmptyTaskTitle
	}
	if !t.Difficulty.IsValid() {
		return ErrInvalidDifficulty
	}
	return nil
}

// Overwrite replaces the mutable content fields in place and revalidates.
// The done flag is left untouched.
func (t *Task) Overwrite(title, description string, difficulty Difficulty) error {
	t.Title = title
	t.Description = description
	t.Difficulty = difficulty
	return t.Validate()
}

// ToggleDone flips the done flag. Applying it twice restores the original state.
func (t *Task) ToggleDone() {
	t.IsDone = !t.IsDone
}

// IsValid reports whether d is one of the known difficulty levels.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return true
	default:
		return false
	}
}

package domain

// Task represents a unit of work owned by exactly one user.
// Tasks start out not completed with priority 0 unless stated otherwise.
type Task struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Priority  int    `json:"priority"`
	Completed bool   `json:"completed"`
	UserID    int64  `json:"user_id"`
	Slug      string `json:"slug"`
}

// NewTask creates a new Task owned by the given user with its slug derived
// from the title. The ID is assigned by the store on insert and Completed
// always starts false.
// Returns an error if validation fails.
func NewTask(title, content string, priority int, userID int64) (*Task, error) {
	task := &Task{
		Title:    title,
		Content:  content,
		Priority: priority,
		UserID:   userID,
		Slug:     Slugify(title),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrEmptyTitle
	}

	if t.UserID <= 0 {
		return ErrMissingOwner
	}

	return nil
}

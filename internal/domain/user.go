package domain

// User represents a registered user of the task manager.
// A user owns zero or more tasks.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Age       int    `json:"age"`
	Slug      string `json:"slug"`
}

// NewUser creates a new User with its slug derived from the username.
// The ID is assigned by the store on insert. The slug is immutable after
// creation; updates never touch it.
// Returns an error if validation fails.
func NewUser(username, firstname, lastname string, age int) (*User, error) {
	user := &User{
		Username:  username,
		Firstname: firstname,
		Lastname:  lastname,
		Age:       age,
		Slug:      Slugify(username),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.Username == "" {
		return ErrEmptyUsername
	}

	if u.Age < 0 {
		return ErrInvalidAge
	}

	return nil
}

package models

// Member represents a chat member known to the bot
type Member struct {
	// ID is the platform user ID of the member
	ID string

	// Username is the member's handle, if they have one
	Username string

	// FirstName is the member's first name
	FirstName string

	// LastName is the member's last name, if known
	LastName string
}

// DisplayName returns the member's human-readable name
func (m *Member) DisplayName() string {
	name := m.FirstName
	if m.LastName != "" {
		name += " " + m.LastName
	}
	if name == "" {
		name = m.Username
	}
	return name
}

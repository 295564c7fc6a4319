package entity

// ContactKind is the channel a contact address belongs to.
type ContactKind string

const (
	ContactMail     ContactKind = "MAIL"
	ContactPhone    ContactKind = "PHONE"
	ContactTelegram ContactKind = "TELEGRAM"
)

// Contact is one delivery address of a user. Contacts are removed together
// with their owner when an account is hard-deleted.
type Contact struct {
	id     int64
	userID int64
	kind   ContactKind
	value  string
}

// ContactState is the field snapshot used by the contact factory.
type ContactState struct {
	ID     int64
	UserID int64
	Kind   ContactKind
	Value  string
}

// RestoreContact rehydrates a contact from a snapshot.
func RestoreContact(s ContactState) *Contact {
	return &Contact{id: s.ID, userID: s.UserID, kind: s.Kind, value: s.Value}
}

// State returns a snapshot of the contact for serialization.
func (c *Contact) State() ContactState {
	return ContactState{ID: c.id, UserID: c.userID, Kind: c.kind, Value: c.value}
}

func (c *Contact) ID() int64         { return c.id }
func (c *Contact) UserID() int64     { return c.userID }
func (c *Contact) Kind() ContactKind { return c.kind }
func (c *Contact) Value() string     { return c.value }

// SetValue changes the contact address.
func (c *Contact) SetValue(value string) error {
	if value == "" {
		return Validationf("contact value must not be empty")
	}
	c.value = value
	return nil
}

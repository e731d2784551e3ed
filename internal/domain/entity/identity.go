package entity

// Identity is the caller as reported by the identity provider's session token.
type Identity struct {
	UserID         string
	EmailAddresses []string
}

// PrimaryEmail returns the first email address of the identity.
func (i *Identity) PrimaryEmail() (string, bool) {
	if i == nil || len(i.EmailAddresses) == 0 {
		return "", false
	}
	return i.EmailAddresses[0], true
}

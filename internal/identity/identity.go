package identity

// Identity is the resolved caller of a request. The HTTP layer builds it from a
// verified token (or guest header) and passes it explicitly into services.
type Identity struct {
	UserID       string
	Email        string
	Name         string
	Guest        bool
	AppMetadata  map[string]any
	UserMetadata map[string]any
}

// Valid reports whether the identity carries a usable user ID.
func (id Identity) Valid() bool {
	return id.UserID != ""
}

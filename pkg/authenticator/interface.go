package authenticator

// TokenEngine signs and verifies an arbitrary claim object T.
type TokenEngine[T any] interface {
	Generate(sub string, obj T) (string, error)
	Verify(token string) (T, error)
}

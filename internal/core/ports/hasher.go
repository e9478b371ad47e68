package ports

// CredentialHasher is the one-way secret hashing collaborator. Hash failures
// are infrastructure faults (bad cost configuration), never business
// outcomes; Verify is total for well-formed input.
type CredentialHasher interface {
	Hash(secret string) (string, error)
	Verify(secret, hash string) bool
}

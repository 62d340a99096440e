package ports

import "context"

// CredentialStore resolves secrets such as API keys and tokens.
type CredentialStore interface {
	// Get returns the value of key, asking the user for it when it is not
	// stored yet.
	Get(ctx context.Context, key string) (string, error)
}

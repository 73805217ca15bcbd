package persistence

// TokenSealer protects integration tokens at rest. The secret package
// provides the real implementation.
type TokenSealer interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// plainSealer stores tokens as given. Used when no key is configured.
type plainSealer struct{}

func (plainSealer) Seal(plaintext string) (string, error) { return plaintext, nil }
func (plainSealer) Open(sealed string) (string, error)    { return sealed, nil }

func sealerOrPlain(s TokenSealer) TokenSealer {
	if s == nil {
		return plainSealer{}
	}
	return s
}

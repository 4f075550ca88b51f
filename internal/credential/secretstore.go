package credential

import (
	"context"
	"fmt"

	"github.com/viant/scy/cred/secret"
)

// SecretStore resolves credentials through scy secret resources. Each name
// maps to a secret URL such as "~/.secret/openai.json|blowfish://default".
type SecretStore struct {
	URLs    map[string]string
	secrets *secret.Service
}

func NewSecretStore(urls map[string]string) *SecretStore {
	return &SecretStore{URLs: urls, secrets: secret.New()}
}

func (s *SecretStore) Lookup(ctx context.Context, name string) (string, error) {
	url, ok := s.URLs[name]
	if !ok || url == "" {
		return "", ErrNotFound
	}

	key, err := s.secrets.GeyKey(ctx, url)
	if err != nil {
		return "", fmt.Errorf("secret %s: %w", url, err)
	}
	if key.Secret == "" {
		return "", ErrNotFound
	}
	return key.Secret, nil
}

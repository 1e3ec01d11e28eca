package aws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

const (
	// SecretPrefix namespaces every storefront secret in Secrets Manager.
	SecretPrefix = "storefront/"

	defaultSecretTTL = 15 * time.Minute
)

var ErrSecretEmpty = errors.New("secret has no string value")

type secretValueAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

type cachedSecret struct {
	value   string
	fetched time.Time
}

// SecretsClient resolves storefront settings such as JWT_SECRET from
// Secrets Manager. Values are cached for ttl.
type SecretsClient struct {
	api   secretValueAPI
	ttl   time.Duration
	now   func() time.Time
	mu    sync.Mutex
	cache map[string]cachedSecret
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return newSecretsClient(secretsmanager.NewFromConfig(cfg), defaultSecretTTL, time.Now)
}

func newSecretsClient(api secretValueAPI, ttl time.Duration, now func() time.Time) *SecretsClient {
	return &SecretsClient{api: api, ttl: ttl, now: now, cache: make(map[string]cachedSecret)}
}

// SecretID maps a setting name to its Secrets Manager id. Names that already
// carry a path are used as they are.
func SecretID(name string) string {
	if strings.Contains(name, "/") {
		return name
	}
	return SecretPrefix + name
}

// GetSecret returns the value stored for name. A secret stored as a JSON
// object is read by the key name, so one secret can hold several settings.
func (s *SecretsClient) GetSecret(ctx context.Context, name string) (string, error) {
	id := SecretID(name)

	s.mu.Lock()
	if c, ok := s.cache[id]; ok && s.now().Sub(c.fetched) < s.ttl {
		s.mu.Unlock()
		return c.value, nil
	}
	s.mu.Unlock()

	out, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(id)})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", id, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %s: %w", id, ErrSecretEmpty)
	}

	value := settingValue(*out.SecretString, name[strings.LastIndex(name, "/")+1:])
	if value == "" {
		return "", fmt.Errorf("secret %s: %w", id, ErrSecretEmpty)
	}

	s.mu.Lock()
	s.cache[id] = cachedSecret{value: value, fetched: s.now()}
	s.mu.Unlock()
	return value, nil
}

// Invalidate drops the cached value so the next read hits Secrets Manager.
func (s *SecretsClient) Invalidate(name string) {
	s.mu.Lock()
	delete(s.cache, SecretID(name))
	s.mu.Unlock()
}

func settingValue(raw, key string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		var fields map[string]string
		if err := json.Unmarshal([]byte(raw), &fields); err == nil {
			return strings.TrimSpace(fields[key])
		}
	}
	return raw
}

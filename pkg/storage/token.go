package storage

import (
	"context"
	"errors"
)

var (
	ErrNoToken = errors.New("not logged in")
)

// TokenStore keeps the auth token under KeyToken, separate from the entries.
type TokenStore struct {
	kv KV
}

func NewTokenStore(kv KV) *TokenStore {
	return &TokenStore{kv: kv}
}

func (s *TokenStore) Token(ctx context.Context) (string, error) {
	token, err := s.kv.Get(ctx, KeyToken)
	if errors.Is(err, ErrKeyNotFound) {
		return "", ErrNoToken
	}
	return token, err
}

func (s *TokenStore) SaveToken(ctx context.Context, token string) error {
	return s.kv.Put(ctx, KeyToken, token)
}

func (s *TokenStore) ClearToken(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyToken)
}

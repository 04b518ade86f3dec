package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"shopfront/pkg/domain"
)

// Store persists the session's two entries, token and user, across
// runs. ok is false when either entry is missing; a present but
// undecodable user entry is an error so callers can fail open.
type Store interface {
	Load() (token string, user domain.User, ok bool, err error)
	Save(token string, user domain.User) error
	Clear() error
}

const (
	tokenEntry = "token"
	userEntry  = "user"
)

// FileStore keeps the session entries as two files under a base
// directory. This is the default backend.
type FileStore struct {
	basePath string
}

// NewFileStore creates the base directory if missing.
func NewFileStore(basePath string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("session base path is required")
	}
	if err := os.MkdirAll(basePath, 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{basePath: basePath}, nil
}

func (s *FileStore) Load() (string, domain.User, bool, error) {
	tokenData, err := os.ReadFile(filepath.Join(s.basePath, tokenEntry))
	if os.IsNotExist(err) {
		return "", domain.User{}, false, nil
	}
	if err != nil {
		return "", domain.User{}, false, fmt.Errorf("read token: %w", err)
	}
	userData, err := os.ReadFile(filepath.Join(s.basePath, userEntry))
	if os.IsNotExist(err) {
		return "", domain.User{}, false, nil
	}
	if err != nil {
		return "", domain.User{}, false, fmt.Errorf("read user: %w", err)
	}
	var user domain.User
	if err := json.Unmarshal(userData, &user); err != nil {
		return "", domain.User{}, false, fmt.Errorf("decode user: %w", err)
	}
	token := strings.TrimSpace(string(tokenData))
	if token == "" {
		return "", domain.User{}, false, nil
	}
	return token, user, true, nil
}

func (s *FileStore) Save(token string, user domain.User) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.basePath, tokenEntry), []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.basePath, userEntry), userData, 0o600); err != nil {
		return fmt.Errorf("write user: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	for _, entry := range []string{tokenEntry, userEntry} {
		if err := os.Remove(filepath.Join(s.basePath, entry)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove %s: %w", entry, err)
		}
	}
	return nil
}

// RedisStore keeps the session entries in Redis, for setups where the
// client runs on more than one host.
type RedisStore struct {
	client *redis.Client
}

const redisKeyPrefix = "shopfront:session:"

// NewRedisStore builds a Redis-backed session store.
func NewRedisStore(addr, password string) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
		}),
	}
}

func (s *RedisStore) Load() (string, domain.User, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	token, err := s.client.Get(ctx, redisKeyPrefix+tokenEntry).Result()
	if err == redis.Nil {
		return "", domain.User{}, false, nil
	}
	if err != nil {
		return "", domain.User{}, false, fmt.Errorf("read token: %w", err)
	}
	userData, err := s.client.Get(ctx, redisKeyPrefix+userEntry).Result()
	if err == redis.Nil {
		return "", domain.User{}, false, nil
	}
	if err != nil {
		return "", domain.User{}, false, fmt.Errorf("read user: %w", err)
	}
	var user domain.User
	if err := json.Unmarshal([]byte(userData), &user); err != nil {
		return "", domain.User{}, false, fmt.Errorf("decode user: %w", err)
	}
	if token == "" {
		return "", domain.User{}, false, nil
	}
	return token, user, true, nil
}

func (s *RedisStore) Save(token string, user domain.User) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, redisKeyPrefix+tokenEntry, token, 0)
	pipe.Set(ctx, redisKeyPrefix+userEntry, userData, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := s.client.Del(ctx, redisKeyPrefix+tokenEntry, redisKeyPrefix+userEntry).Err(); err != nil && err != redis.Nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// MemoryStore keeps the session entries in memory only. Used in tests
// and ephemeral runs.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  string
	set   bool
}

// NewMemoryStore constructs an empty in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (string, domain.User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || s.token == "" {
		return "", domain.User{}, false, nil
	}
	var user domain.User
	if err := json.Unmarshal([]byte(s.user), &user); err != nil {
		return "", domain.User{}, false, fmt.Errorf("decode user: %w", err)
	}
	return s.token, user, true, nil
}

func (s *MemoryStore) Save(token string, user domain.User) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.user = string(userData)
	s.set = true
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.token = ""
	s.user = ""
	s.set = false
	s.mu.Unlock()
	return nil
}

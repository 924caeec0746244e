package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store hands out the single live Session per chat id. Implementations must
// return the same pointer for concurrent lookups of the same user.
type Store interface {
	Get(chatID int64) (*Session, bool)
	GetOrCreate(chatID int64) *Session
	Touch(s *Session)
	Delete(chatID int64)
}

// CacheStore keeps sessions in an expiring in-memory cache, so abandoned
// dialogues age out instead of accumulating for the process lifetime.
type CacheStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func NewCacheStore(ttl, purgeInterval time.Duration) *CacheStore {
	return &CacheStore{cache: cache.New(ttl, purgeInterval)}
}

func (s *CacheStore) Get(chatID int64) (*Session, bool) {
	if x, found := s.cache.Get(key(chatID)); found {
		return x.(*Session), true
	}
	return nil, false
}

func (s *CacheStore) GetOrCreate(chatID int64) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if x, found := s.cache.Get(key(chatID)); found {
		return x.(*Session)
	}
	sess := &Session{ChatID: chatID, Stage: StageAwaitingName}
	s.cache.Set(key(chatID), sess, cache.DefaultExpiration)
	return sess
}

// Touch refreshes the TTL after the session was mutated.
func (s *CacheStore) Touch(sess *Session) {
	s.cache.Set(key(sess.ChatID), sess, cache.DefaultExpiration)
}

func (s *CacheStore) Delete(chatID int64) {
	s.cache.Delete(key(chatID))
}

func key(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

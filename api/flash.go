package api

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const (
	flashCookie = "flash"
	flashTTL    = 5 * time.Minute
)

const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash is a one-shot message shown on the next page load
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// flashStore keeps pending messages server side. The browser only holds a
// random key in the flash cookie.
type flashStore struct {
	mu    sync.Mutex
	cache *cache.Cache
}

func newFlashStore() *flashStore {
	return &flashStore{cache: cache.New(flashTTL, 10*time.Minute)}
}

func (s *flashStore) add(w http.ResponseWriter, r *http.Request, level, message string) {
	key := ""
	if c, err := r.Cookie(flashCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			key = c.Value
		}
	}
	if key == "" {
		key = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookie,
			Value:    key,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var pending []Flash
	if v, ok := s.cache.Get(key); ok {
		pending = v.([]Flash)
	}
	pending = append(pending, Flash{Level: level, Message: message})
	s.cache.Set(key, pending, cache.DefaultExpiration)
}

// pop returns and forgets the pending messages of the requesting client
func (s *flashStore) pop(r *http.Request) []Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return []Flash{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(c.Value)
	if !ok {
		return []Flash{}
	}
	s.cache.Delete(c.Value)
	return v.([]Flash)
}

package database

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

func NewMemcached(timeout time.Duration, servers ...string) *memcache.Client {
	client := memcache.New(servers...)
	if timeout > 0 {
		client.Timeout = timeout
	}
	return client
}

package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UploadRateLimitKey returns the counter key for a client's upload quota in a
// given fixed window.
func (r *CacheKeyStruct) UploadRateLimitKey(clientIP string, window int64) string {
	return fmt.Sprintf("ratelimit:upload:%s:%d", clientIP, window)
}

var CacheKey = NewCacheKeyStruct()

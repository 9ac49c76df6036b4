package service

import (
	"fmt"
	"time"
)

const (
	userCacheTTL = 5 * time.Minute
	jobCacheTTL  = 5 * time.Minute
)

func userCacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

func jobCacheKey(id uint) string {
	return fmt.Sprintf("job:%d", id)
}

package model

import "github.com/google/uuid"

type CacheStatus = string

const (
	CacheLoading   CacheStatus = "LOADING"
	CacheActive    CacheStatus = "ACTIVE"
	CacheCompleted CacheStatus = "COMPLETED"
	CacheCleanup   CacheStatus = "CLEANUP"
)

// CacheMetadata governs whether clients may read a room's pool.
// cacheComplete flips to true only after every entry is confirmed written.
type CacheMetadata struct {
	RoomID        uuid.UUID
	TotalItems    int
	CacheComplete bool
	Status        CacheStatus
	RoomCapacity  int
	Filter        FilterCriteria
}

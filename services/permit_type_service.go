package services

import (
	"errors"
	"fmt"
	"permit-management-api/config"
	"permit-management-api/models"
	"strings"
	"sync"
	"time"
)

var (
	permitTypeCacheMu sync.RWMutex
	permitTypeCache   *permitTypeCacheEntry
	permitTypeTTL     = 5 * time.Minute
)

type permitTypeCacheEntry struct {
	types     []models.PermitType
	byID      map[string]models.PermitType
	fetchedAt time.Time
}

func loadPermitTypes(force bool) (*permitTypeCacheEntry, error) {
	permitTypeCacheMu.RLock()
	cached := permitTypeCache
	permitTypeCacheMu.RUnlock()

	if cached != nil && !force && time.Since(cached.fetchedAt) < permitTypeTTL {
		return cached, nil
	}

	permitTypeCacheMu.Lock()
	defer permitTypeCacheMu.Unlock()

	if permitTypeCache != nil && !force && time.Since(permitTypeCache.fetchedAt) < permitTypeTTL {
		return permitTypeCache, nil
	}

	var rows []models.PermitType
	if err := config.DB.Where("is_active = ?", true).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load permit types: %w", err)
	}

	byID := make(map[string]models.PermitType, len(rows))
	for _, permitType := range rows {
		if permitType.ID == "" {
			continue
		}
		byID[permitType.ID] = permitType
	}

	entry := &permitTypeCacheEntry{
		types:     rows,
		byID:      byID,
		fetchedAt: time.Now(),
	}
	permitTypeCache = entry
	return entry, nil
}

// ClearPermitTypeCache invalidates the in-memory permit type cache.
func ClearPermitTypeCache() {
	permitTypeCacheMu.Lock()
	defer permitTypeCacheMu.Unlock()
	permitTypeCache = nil
}

// GetPermitTypes returns all active permit types with caching support.
func GetPermitTypes() ([]models.PermitType, error) {
	entry, err := loadPermitTypes(false)
	if err != nil {
		return nil, err
	}
	return entry.types, nil
}

// GetPermitTypeByID returns the permit type with the given identifier.
func GetPermitTypeByID(id string) (*models.PermitType, error) {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, errors.New("permit type id is required")
	}

	entry, err := loadPermitTypes(false)
	if err != nil {
		return nil, err
	}

	if permitType, ok := entry.byID[trimmed]; ok {
		return &permitType, nil
	}

	// Force refresh cache once before giving up
	entry, err = loadPermitTypes(true)
	if err != nil {
		return nil, err
	}

	if permitType, ok := entry.byID[trimmed]; ok {
		return &permitType, nil
	}

	return nil, fmt.Errorf("permit type '%s' not found", trimmed)
}

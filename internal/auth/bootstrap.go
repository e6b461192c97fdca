package auth

import (
	"sync"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"carehub/internal/model"
)

// BootstrapGuard tracks whether an active superuser exists. While none
// does, the superuser-only permission gate passes unconditionally so the
// first superuser can be created; once one exists the escape closes.
//
// The answer is cached process-wide instead of queried per request.
// Invalidation rule: re-check after any superuser is created, and after
// any superuser is deleted or blocked.
type BootstrapGuard struct {
	db *gorm.DB

	mu     sync.Mutex
	known  bool
	exists bool
}

// NewBootstrapGuard builds a guard over the given database.
func NewBootstrapGuard(db *gorm.DB) *BootstrapGuard {
	return &BootstrapGuard{db: db}
}

// SuperuserExists reports whether an active superuser account exists,
// querying the database only when the cached answer is stale. On query
// failure the guard reports true, keeping the escape hatch closed.
func (g *BootstrapGuard) SuperuserExists() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.known {
		return g.exists
	}

	var count int64
	err := g.db.Model(&model.User{}).
		Where("role = ? AND status = ?", model.RoleSuperuser, model.UserStatusActive).
		Count(&count).Error
	if err != nil {
		log.Error().Err(err).Msg("superuser existence check failed")
		return true
	}

	g.known = true
	g.exists = count > 0
	return g.exists
}

// MarkSuperuserCreated records that an active superuser now exists.
func (g *BootstrapGuard) MarkSuperuserCreated() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.known = true
	g.exists = true
}

// Invalidate forces a re-check on the next call. Invoked after a
// superuser is deleted or blocked.
func (g *BootstrapGuard) Invalidate() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.known = false
}

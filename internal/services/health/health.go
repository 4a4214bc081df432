package health

import (
	"context"
	"database/sql"
	"time"
)

const pingTimeout = 2 * time.Second

// Service encapsulates health-related checks. DB may be nil when the API runs
// on in-memory storage.
type Service struct {
	DB *sql.DB
}

// NewService constructs a new health service.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db}
}

// Status reports liveness plus the state of the database connection.
func (s *Service) Status(ctx context.Context) map[string]any {
	out := map[string]any{"ok": true}
	if s.DB == nil {
		out["database"] = "memory"
		return out
	}
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		out["ok"] = false
		out["database"] = "unreachable"
		return out
	}
	out["database"] = "ok"
	return out
}

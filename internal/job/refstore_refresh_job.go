package job

import (
	"Bulletin/internal/pkg/refstore"
	"context"
	log "log/slog"
)

// RefStoreRefreshJob 周期重建板块/关键词快照
type RefStoreRefreshJob struct {
	store *refstore.Store
}

func NewRefStoreRefreshJob(store *refstore.Store) *RefStoreRefreshJob {
	return &RefStoreRefreshJob{
		store: store,
	}
}

func (s *RefStoreRefreshJob) Run() {
	ctx := context.Background()
	if err := s.store.Refresh(ctx); err != nil {
		log.Error("refresh reference snapshot error", "err", err)
	}
}

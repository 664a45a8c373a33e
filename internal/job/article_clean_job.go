package job

import (
	"Bulletin/internal/model"
	"Bulletin/internal/pkg/consts"
	"Bulletin/internal/pkg/redis"
	"Bulletin/internal/repository"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

// ArticleCleanupJob 周期清除 DELETED 状态的文章行。
// 用分布式锁保证整个集群同一时刻只有一个实例在跑。
type ArticleCleanupJob struct {
	articleRepo repository.ArticleRepo
}

func NewArticleCleanupJob(articleRepo repository.ArticleRepo) *ArticleCleanupJob {
	return &ArticleCleanupJob{
		articleRepo: articleRepo,
	}
}

func (s *ArticleCleanupJob) Run() {
	ctx := context.Background()
	log.Info("start article cleanup job")

	lockUUID := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.ArticleCleanupLock, lockUUID, 10*time.Minute, 1)
	if err != nil {
		log.Error("acquire cleanup lock error", "err", err)
		return
	}
	if !ok {
		log.Info("cleanup lock held by another instance, skip")
		return
	}
	defer redis.UnLock(ctx, consts.ArticleCleanupLock, lockUUID)

	deleted, err := s.articleRepo.DeleteWhereStatus(ctx, model.StatusDeleted)
	if err != nil {
		log.Error("article cleanup job error", "err", err)
		return
	}

	if deleted > 0 {
		log.Info("article cleanup job finished", "deleted_count", deleted)
	}
}

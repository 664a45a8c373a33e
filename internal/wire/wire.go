package wire

import (
	"Bulletin/internal/api"
	"Bulletin/internal/api/config"
	"Bulletin/internal/api/handler"
	"Bulletin/internal/job"
	"Bulletin/internal/pkg/cron"
	"Bulletin/internal/pkg/kafka"
	"Bulletin/internal/pkg/refstore"
	"Bulletin/internal/repository"
	"Bulletin/internal/service"
	"context"
	log "log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
	Producer     *kafka.Producer
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	articleRepo := repository.NewArticleRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	keywordRepo := repository.NewKeywordRepository(db)

	// 启动时加载一次板块/关键词快照，失败只告警，由定时任务兜底
	refStore := refstore.NewStore(boardRepo, keywordRepo)
	if err := refStore.Refresh(context.Background()); err != nil {
		log.Warn("初始加载参照数据失败，等待定时刷新", "err", err)
	}

	producer, err := kafka.NewProducer(cfg)
	if err != nil {
		return nil, err
	}

	articleService := service.NewArticleService(articleRepo, keywordRepo, refStore, producer)
	searchService := service.NewSearchService(articleRepo)
	boardService := service.NewBoardService(refStore)

	handlers := &api.HandlersGroup{
		ArticleHandler: handler.NewArticleHandler(articleService, searchService),
		BoardHandler:   handler.NewBoardHandler(boardService),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, articleRepo)
	if err != nil {
		return nil, err
	}

	cleanupJob := job.NewArticleCleanupJob(articleRepo)
	refreshJob := job.NewRefStoreRefreshJob(refStore)
	cronMgr := cron.NewCronManager(cleanupJob, refreshJob)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
		Producer:     producer,
	}, nil
}

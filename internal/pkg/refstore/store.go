package refstore

import (
	"Bulletin/internal/model"
	"Bulletin/internal/repository"
	"context"
	log "log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// Snapshot 板块与关键词的不可变快照，整体替换、绝不原地修改
type Snapshot struct {
	Boards   map[string]model.Board
	Keywords map[string]model.Keyword
	LoadedAt time.Time
}

// Store 读多写少的引用数据缓存。读方通过原子指针拿到当前快照，
// 刷新构建新快照后一次性换入，读方永不阻塞。
type Store struct {
	snap atomic.Pointer[Snapshot]

	refreshMu   sync.Mutex
	boardRepo   repository.BoardRepo
	keywordRepo repository.KeywordRepo
}

func NewStore(boardRepo repository.BoardRepo, keywordRepo repository.KeywordRepo) *Store {
	s := &Store{
		boardRepo:   boardRepo,
		keywordRepo: keywordRepo,
	}
	s.snap.Store(&Snapshot{
		Boards:   map[string]model.Board{},
		Keywords: map[string]model.Keyword{},
	})
	return s
}

// Refresh 重建并换入新快照，同一时刻只允许一个刷新在途
func (s *Store) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	boards, err := s.boardRepo.GetAllBoards(ctx)
	if err != nil {
		return err
	}
	keywords, err := s.keywordRepo.GetAllKeywords(ctx)
	if err != nil {
		return err
	}

	next := &Snapshot{
		Boards:   make(map[string]model.Board, len(boards)),
		Keywords: make(map[string]model.Keyword, len(keywords)),
		LoadedAt: time.Now(),
	}
	for _, b := range boards {
		next.Boards[b.ID] = *b
	}
	for _, kw := range keywords {
		next.Keywords[kw.ID] = *kw
	}

	s.snap.Store(next)
	log.InfoContext(ctx, "引用数据快照已刷新",
		"boards", len(next.Boards), "keywords", len(next.Keywords))
	return nil
}

// Snapshot 当前快照，调用方只读
func (s *Store) Snapshot() *Snapshot {
	return s.snap.Load()
}

// Board 按 ID 查板块，返回值是副本
func (s *Store) Board(id string) (model.Board, bool) {
	b, ok := s.snap.Load().Boards[id]
	return b, ok
}

// Keyword 按 ID 查关键词，返回值是副本
func (s *Store) Keyword(id string) (model.Keyword, bool) {
	kw, ok := s.snap.Load().Keywords[id]
	return kw, ok
}

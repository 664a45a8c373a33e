package consts

const (
	ArticleInfoKey = "article:info:"
)

const (
	ArticleCleanupLock = "lock:article:cleanup"
)

package util

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/goccy/go-json"
)

// ErrCursorMalformed 游标无法解码或字段缺失
var ErrCursorMalformed = errors.New("cursor malformed")

// ArticleCursor 排序键 (created_at, id) 上最后可见行的取值
type ArticleCursor struct {
	CreatedAt int64  `json:"created_at"` // UnixMilli
	ID        string `json:"id"`
}

// EncodeArticleCursor 将最后一行的排序键编码为 Base64 字符串
func EncodeArticleCursor(createdAt time.Time, id string) string {
	b, _ := json.Marshal(ArticleCursor{
		CreatedAt: createdAt.UnixMilli(),
		ID:        id,
	})
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeArticleCursor 将前端传来的 Base64 字符串解码为排序键。
// 空串表示从头开始，返回 (nil, nil)；其余任何畸形输入在执行查询前报错。
func DecodeArticleCursor(cursor string) (*ArticleCursor, error) {
	if cursor == "" {
		return nil, nil
	}
	b, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		return nil, ErrCursorMalformed
	}
	var c ArticleCursor
	if err = json.Unmarshal(b, &c); err != nil {
		return nil, ErrCursorMalformed
	}
	if c.CreatedAt <= 0 || c.ID == "" {
		return nil, ErrCursorMalformed
	}
	return &c, nil
}

// Time 还原排序键中的时间分量
func (c *ArticleCursor) Time() time.Time {
	return time.UnixMilli(c.CreatedAt)
}

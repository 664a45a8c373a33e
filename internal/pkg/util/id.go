package util

import (
	"github.com/google/uuid"
)

// NewArticleID 生成全局唯一且按时间有序的文章 ID（UUIDv7，36 字符）
func NewArticleID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

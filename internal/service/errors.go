package service

import (
	"Bulletin/internal/model"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrArticleNotFound  = errors.New("文章不存在")
	ErrBoardNotFound    = errors.New("板块不存在")
	ErrKeywordNotFound  = errors.New("关键词不存在")
	ErrKeywordNotUsable = errors.New("关键词不属于该板块")
	ErrStatusInvalid    = errors.New("文章状态不合法")
	ErrCursorInvalid    = errors.New("分页游标无效")
	ErrVersionConflict  = errors.New("文章已被并发修改，请重试")
	ErrMissingWriter    = errors.New("缺少写作者标识")
	UnauthorizedError   = errors.New("权限不足")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:              BadRequest,
	model.ErrArticleFieldInvalid: BadRequest,
	model.ErrEventPeriodInvalid:  BadRequest,
	ErrArticleNotFound:           NotFound,
	ErrBoardNotFound:             NotFound,
	ErrKeywordNotFound:           NotFound,
	ErrKeywordNotUsable:          BadRequest,
	ErrStatusInvalid:             BadRequest,
	ErrCursorInvalid:             BadRequest,
	ErrVersionConflict:           Conflict,
	ErrMissingWriter:             Unauthorized,
	UnauthorizedError:            Unauthorized,
	UnExpectedError:              InternalServerError,
}

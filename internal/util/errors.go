package util

import "errors"

var (
	ErrUserNotFound      = errors.New("用户不存在")
	ErrEmailRegistered   = errors.New("该邮箱已被注册")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrExamNotFound      = errors.New("exam not found")
	ErrPaperNotFound     = errors.New("test paper not found")
	ErrNoActivePaper     = errors.New("exam has no active test paper")
	ErrAttemptNotFound   = errors.New("attempt not found")
	ErrDuplicateAttempt  = errors.New("attempt already recorded")
	ErrProfileNotFound   = errors.New("student profile not found")
	ErrMaxAttemptsExceed = errors.New("max attempts for this exam reached")
)

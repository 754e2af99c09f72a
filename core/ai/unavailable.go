package ai

import (
	"context"

	"github.com/Wenqiii/pkvgo/core/errors"
)

// unavailableService AI未配置时的占位实现
// 摘要/分析子任务直接失败，本地要点提取仍然可用，条目照常完成
type unavailableService struct{}

// NewUnavailableService 创建占位AI服务
func NewUnavailableService() ContentService {
	return unavailableService{}
}

func (unavailableService) Summarize(ctx context.Context, text string) (string, error) {
	return "", errors.New(errors.ErrModelNotConfigured, "chat model is not configured")
}

func (unavailableService) Analyze(ctx context.Context, text string) (*Analysis, error) {
	return nil, errors.New(errors.ErrModelNotConfigured, "chat model is not configured")
}

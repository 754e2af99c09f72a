package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/gogf/gf/v2/frame/g"
)

// ValidateConfiguration validates all required configuration items
func ValidateConfiguration(ctx context.Context) error {
	var missingConfigs []string
	var warnings []string

	// 验证数据库配置
	dbHost := g.Cfg().MustGet(ctx, "database.default.host", "").String()
	dbPort := g.Cfg().MustGet(ctx, "database.default.port", "").String()
	dbUser := g.Cfg().MustGet(ctx, "database.default.user", "").String()
	dbName := g.Cfg().MustGet(ctx, "database.default.name", "").String()

	if dbHost == "" {
		missingConfigs = append(missingConfigs, "database.default.host")
	}
	if dbPort == "" {
		missingConfigs = append(missingConfigs, "database.default.port")
	}
	if dbUser == "" {
		missingConfigs = append(missingConfigs, "database.default.user")
	}
	if dbName == "" {
		missingConfigs = append(missingConfigs, "database.default.name")
	}

	// 验证存储配置，storage.type 决定需要哪组配置
	storageType := g.Cfg().MustGet(ctx, "storage.type", "local").String()
	if storageType == "rustfs" {
		rustfsEndpoint := g.Cfg().MustGet(ctx, "rustfs.endpoint", "").String()
		rustfsAccessKey := g.Cfg().MustGet(ctx, "rustfs.accessKey", "").String()
		rustfsSecretKey := g.Cfg().MustGet(ctx, "rustfs.secretKey", "").String()

		if rustfsEndpoint == "" {
			missingConfigs = append(missingConfigs, "rustfs.endpoint")
		}
		if rustfsAccessKey == "" {
			missingConfigs = append(missingConfigs, "rustfs.accessKey")
		}
		if rustfsSecretKey == "" {
			missingConfigs = append(missingConfigs, "rustfs.secretKey")
		}
	} else if storageType != "local" {
		missingConfigs = append(missingConfigs, fmt.Sprintf("storage.type (got %q, want rustfs or local)", storageType))
	}

	// 验证 AI 配置，缺失时只告警：内容增强会降级但上传不受影响
	aiAPIKey := g.Cfg().MustGet(ctx, "ai.apiKey", "").String()
	aiBaseURL := g.Cfg().MustGet(ctx, "ai.baseURL", "").String()
	aiModel := g.Cfg().MustGet(ctx, "ai.model", "").String()

	if aiAPIKey == "" {
		warnings = append(warnings, "ai.apiKey is not set")
	}
	if aiBaseURL == "" {
		warnings = append(warnings, "ai.baseURL is not set")
	}
	if aiModel == "" {
		warnings = append(warnings, "ai.model is not set")
	}

	// 输出警告信息
	if len(warnings) > 0 {
		g.Log().Warningf(ctx, "Configuration warnings:\n- %s", strings.Join(warnings, "\n- "))
	}

	// 检查是否有缺失的必需配置
	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configuration items:\n- %s\n\nPlease check your config.yaml file and ensure all required settings are properly configured", strings.Join(missingConfigs, "\n- "))
	}

	// 输出成功信息
	g.Log().Info(ctx, "✓ All required configuration items are present")

	return nil
}

// AIConfigured reports whether the chat model settings are complete
func AIConfigured(ctx context.Context) bool {
	return g.Cfg().MustGet(ctx, "ai.apiKey", "").String() != "" &&
		g.Cfg().MustGet(ctx, "ai.model", "").String() != ""
}

// GetChatModelConfig 从配置装配 eino openai ChatModel 配置
func GetChatModelConfig(ctx context.Context) *openai.ChatModelConfig {
	return &openai.ChatModelConfig{
		BaseURL: g.Cfg().MustGet(ctx, "ai.baseURL", "").String(),
		APIKey:  g.Cfg().MustGet(ctx, "ai.apiKey", "").String(),
		Model:   g.Cfg().MustGet(ctx, "ai.model", "").String(),
	}
}

package ai

import (
	"context"
	"strings"

	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/bytedance/sonic"
	"github.com/cloudwego/eino-ext/components/model/openai"
	einoModel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/gogf/gf/v2/frame/g"
)

// Analysis AI结构化内容分析结果
type Analysis struct {
	Subject    string   `json:"subject"`     // 内容所属学科/主题
	Topics     []string `json:"topics"`      // 涉及的具体知识点
	Difficulty string   `json:"difficulty"`  // 难度: beginner/intermediate/advanced
	Language   string   `json:"language"`    // 内容语言
	ReadingMin int      `json:"reading_min"` // 预估阅读时长（分钟）
}

// ContentService AI内容生成服务
type ContentService interface {
	Summarize(ctx context.Context, text string) (string, error)
	Analyze(ctx context.Context, text string) (*Analysis, error)
}

// 送入模型的文本上限，超长内容截断（保留前部）
const maxPromptRunes = 8000

// einoContentService 基于 eino ChatModel 的内容生成服务
type einoContentService struct {
	chatModel einoModel.BaseChatModel
}

// NewContentService 创建AI内容生成服务
func NewContentService(ctx context.Context, baseURL, apiKey, modelName string) (ContentService, error) {
	if apiKey == "" || modelName == "" {
		return nil, errors.New(errors.ErrModelNotConfigured, "ai.apiKey and ai.model are required")
	}

	cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Model:   modelName,
	})
	if err != nil {
		return nil, errors.Newf(errors.ErrModelNotConfigured, "failed to create chat model: %v", err)
	}

	return &einoContentService{chatModel: cm}, nil
}

const summarizeSystemPrompt = `你是一个学习资料整理助手。请为用户提供的资料生成一段简洁的摘要。

要求：
1. 摘要控制在200字以内
2. 突出资料的核心内容和结论
3. 使用与资料相同的语言
4. 直接输出摘要正文，不要任何前缀或解释`

const analyzeSystemPrompt = `你是一个学习资料分析助手。分析用户提供的资料并输出JSON，字段如下：
{"subject": "学科或主题", "topics": ["知识点1", "知识点2"], "difficulty": "beginner|intermediate|advanced", "language": "语言", "reading_min": 预估阅读分钟数}

只输出JSON，不要markdown代码块，不要任何解释。`

// Summarize 生成内容摘要
func (s *einoContentService) Summarize(ctx context.Context, text string) (string, error) {
	messages := []*schema.Message{
		schema.SystemMessage(summarizeSystemPrompt),
		schema.UserMessage(truncateRunes(text, maxPromptRunes)),
	}

	resp, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", errors.Newf(errors.ErrLLMCallFailed, "summarize call failed: %v", err)
	}

	summary := strings.TrimSpace(resp.Content)
	if summary == "" {
		return "", errors.New(errors.ErrLLMBadResponse, "summarize returned empty content")
	}
	return summary, nil
}

// Analyze 生成结构化内容分析
func (s *einoContentService) Analyze(ctx context.Context, text string) (*Analysis, error) {
	messages := []*schema.Message{
		schema.SystemMessage(analyzeSystemPrompt),
		schema.UserMessage(truncateRunes(text, maxPromptRunes)),
	}

	resp, err := s.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, errors.Newf(errors.ErrLLMCallFailed, "analyze call failed: %v", err)
	}

	payload := stripCodeFence(resp.Content)

	var analysis Analysis
	if err := sonic.Unmarshal([]byte(payload), &analysis); err != nil {
		g.Log().Warningf(ctx, "analyze response is not valid JSON: %v, raw: %.200s", err, resp.Content)
		return nil, errors.Newf(errors.ErrLLMBadResponse, "failed to parse analyze response: %v", err)
	}
	return &analysis, nil
}

// truncateRunes 按rune截断文本
func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

// stripCodeFence 去掉模型偶尔包裹的markdown代码块
func stripCodeFence(content string) string {
	out := strings.TrimSpace(content)
	if strings.HasPrefix(out, "```") {
		out = strings.TrimPrefix(out, "```json")
		out = strings.TrimPrefix(out, "```")
		out = strings.TrimSuffix(out, "```")
		out = strings.TrimSpace(out)
	}
	return out
}

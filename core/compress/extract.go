package compress

import (
	"bytes"
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/cloudwego/eino-ext/components/document/parser/pdf"
	"github.com/cloudwego/eino/components/document/parser"
)

// TextExtractor 按格式提取纯文本，供下游AI增强使用
// 提取失败或不支持的格式不应阻断上传流程，由引擎降级处理
type TextExtractor interface {
	Extract(ctx context.Context, data []byte, fileName string) (string, error)
}

// pdfExtractor 基于 eino pdf parser 的PDF文本提取
type pdfExtractor struct {
	parser parser.Parser
}

// NewPDFExtractor 创建PDF文本提取器
func NewPDFExtractor(ctx context.Context) (TextExtractor, error) {
	p, err := pdf.NewPDFParser(ctx, &pdf.Config{})
	if err != nil {
		return nil, errors.Newf(errors.ErrTextExtractFailed, "failed to create pdf parser: %v", err)
	}
	return &pdfExtractor{parser: p}, nil
}

func (x *pdfExtractor) Extract(ctx context.Context, data []byte, fileName string) (string, error) {
	docs, err := x.parser.Parse(ctx, bytes.NewReader(data))
	if err != nil {
		return "", errors.Newf(errors.ErrTextExtractFailed, "pdf parse failed for %s: %v", fileName, err)
	}

	var sb strings.Builder
	for _, doc := range docs {
		if doc == nil || doc.Content == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(doc.Content)
	}
	return strings.TrimSpace(sb.String()), nil
}

// plainTextExtractor 文本文件按UTF-8原样提取
type plainTextExtractor struct{}

func (plainTextExtractor) Extract(ctx context.Context, data []byte, fileName string) (string, error) {
	if !utf8.Valid(data) {
		return "", errors.Newf(errors.ErrTextExtractFailed, "file %s is not valid UTF-8 text", fileName)
	}
	return string(data), nil
}

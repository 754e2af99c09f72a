package compress

import (
	"context"

	"github.com/Wenqiii/pkvgo/core/common"
	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/gogf/gf/v2/frame/g"
)

// Result 压缩结果，原始/压缩大小由引擎如实上报，压缩率由调用方计算
type Result struct {
	Compressed      []byte // 压缩后的字节流
	ExtractedText   string // 提取出的纯文本，可能为空
	CompressionType string // 压缩类型标签
	PreservedForAI  bool   // ExtractedText 是否可视为完整可靠
	Quality         string // 压缩质量描述
	OriginalSize    int64
	CompressedSize  int64
}

// branch 单个MIME大类的压缩分支
type branch struct {
	compressionType string
	preservedForAI  bool
	extract         func(ctx context.Context, e *Engine, data []byte, fileName string) (string, error)
}

// Engine 压缩引擎：按MIME大类分发，所有分支共享同一个通用无损压缩器
// 格式分支失败时降级为通用分支，压缩永远不能阻断上传
type Engine struct {
	branches map[common.MimeCategory]*branch
	pdfText  TextExtractor // PDF文本提取器，可能为nil
	ocr      TextExtractor // 图片OCR提取器，可选
}

// Option 引擎可选配置
type Option func(*Engine)

// WithOCRExtractor 注入图片OCR提取器，缺省不做图片文本提取
func WithOCRExtractor(x TextExtractor) Option {
	return func(e *Engine) {
		e.ocr = x
	}
}

// NewEngine 创建压缩引擎
// PDF提取器创建失败只记日志：提取缺失不是上传失败的理由
func NewEngine(ctx context.Context, opts ...Option) *Engine {
	e := &Engine{}

	pdfX, err := NewPDFExtractor(ctx)
	if err != nil {
		g.Log().Warningf(ctx, "PDF text extractor unavailable, pdf uploads degrade to generic branch: %v", err)
	} else {
		e.pdfText = pdfX
	}

	for _, opt := range opts {
		opt(e)
	}

	e.branches = map[common.MimeCategory]*branch{
		common.CategoryPDF: {
			compressionType: CompressionTypePDF,
			preservedForAI:  true,
			extract: func(ctx context.Context, e *Engine, data []byte, fileName string) (string, error) {
				if e.pdfText == nil {
					return "", errors.New(errors.ErrTextExtractFailed, "pdf extractor not available")
				}
				return e.pdfText.Extract(ctx, data, fileName)
			},
		},
		common.CategoryImage: {
			compressionType: CompressionTypeImage,
			preservedForAI:  true,
			extract: func(ctx context.Context, e *Engine, data []byte, fileName string) (string, error) {
				// OCR缺失不算错误，图片允许无文本
				if e.ocr == nil {
					return "", nil
				}
				text, err := e.ocr.Extract(ctx, data, fileName)
				if err != nil {
					g.Log().Warningf(ctx, "OCR extraction failed for %s, continuing without text: %v", fileName, err)
					return "", nil
				}
				return text, nil
			},
		},
		common.CategoryVideo: {
			compressionType: CompressionTypeMedia,
			preservedForAI:  false,
		},
		common.CategoryAudio: {
			compressionType: CompressionTypeMedia,
			preservedForAI:  false,
		},
		common.CategoryText: {
			compressionType: CompressionTypeText,
			preservedForAI:  true,
			extract: func(ctx context.Context, e *Engine, data []byte, fileName string) (string, error) {
				return plainTextExtractor{}.Extract(ctx, data, fileName)
			},
		},
		common.CategoryOther: {
			compressionType: CompressionTypeGeneric,
			preservedForAI:  false,
		},
	}

	return e
}

// Compress 压缩文件内容并按格式提取文本
func (e *Engine) Compress(ctx context.Context, data []byte, mimeType string, fileName string) (*Result, error) {
	category := common.CategoryOf(mimeType)
	br, ok := e.branches[category]
	if !ok {
		br = e.branches[common.CategoryOther]
	}

	var (
		extracted       = ""
		compressionType = br.compressionType
		preservedForAI  = br.preservedForAI
	)

	if br.extract != nil {
		text, err := br.extract(ctx, e, data, fileName)
		if err != nil {
			// 格式分支失败降级为通用分支，不中断上传
			g.Log().Warningf(ctx, "format branch %s failed for %s, falling back to generic compression: %v",
				category, fileName, err)
			compressionType = CompressionTypeGeneric
			preservedForAI = false
		} else {
			extracted = text
		}
	}

	compressed := zstdCompress(data)

	return &Result{
		Compressed:      compressed,
		ExtractedText:   extracted,
		CompressionType: compressionType,
		PreservedForAI:  preservedForAI,
		Quality:         "lossless",
		OriginalSize:    int64(len(data)),
		CompressedSize:  int64(len(compressed)),
	}, nil
}

// Decompress 按持久化的压缩类型标签解压
// 未知标签按硬错误处理，避免把压缩后的字节当原文返回给调用方
func (e *Engine) Decompress(ctx context.Context, data []byte, compressionType string) ([]byte, error) {
	switch compressionType {
	case CompressionTypeText, CompressionTypePDF, CompressionTypeImage,
		CompressionTypeMedia, CompressionTypeGeneric:
		return zstdDecompress(data)
	case CompressionTypeGzip:
		return gzipDecompress(data)
	default:
		return nil, errors.Newf(errors.ErrUnknownCompression,
			"unknown compression type tag: %q", compressionType)
	}
}

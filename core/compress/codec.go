package compress

import (
	"bytes"
	"io"
	"sync"

	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// 压缩类型标签，随条目持久化，解压时按标签分发
const (
	CompressionTypeText    = "text_zstd"  // 文本分支
	CompressionTypePDF     = "pdf_zstd"   // PDF分支
	CompressionTypeImage   = "image_zstd" // 图片分支
	CompressionTypeMedia   = "media_zstd" // 音视频分支
	CompressionTypeGeneric = "zstd"       // 通用无损分支
	CompressionTypeGzip    = "gzip"       // 旧数据兼容，仅解压
)

var (
	encoderOnce sync.Once
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func getEncoder() *zstd.Encoder {
	encoderOnce.Do(func() {
		// EncodeAll/DecodeAll 并发安全，进程内共享一对
		zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		zstdDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	})
	return zstdEncoder
}

func getDecoder() *zstd.Decoder {
	getEncoder()
	return zstdDecoder
}

// zstdCompress 无损压缩字节流
func zstdCompress(data []byte) []byte {
	return getEncoder().EncodeAll(data, make([]byte, 0, len(data)/2))
}

// zstdDecompress 解压 zstd 字节流
func zstdDecompress(data []byte) ([]byte, error) {
	out, err := getDecoder().DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Newf(errors.ErrDecompressionFailed, "zstd decode failed: %v", err)
	}
	return out, nil
}

// gzipDecompress 解压 gzip 字节流（历史数据）
func gzipDecompress(data []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Newf(errors.ErrDecompressionFailed, "gzip reader failed: %v", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, errors.Newf(errors.ErrDecompressionFailed, "gzip decode failed: %v", err)
	}
	return out, nil
}

// IsKnownCompressionType 判断压缩类型标签是否可识别
func IsKnownCompressionType(tag string) bool {
	switch tag {
	case CompressionTypeText, CompressionTypePDF, CompressionTypeImage,
		CompressionTypeMedia, CompressionTypeGeneric, CompressionTypeGzip:
		return true
	default:
		return false
	}
}

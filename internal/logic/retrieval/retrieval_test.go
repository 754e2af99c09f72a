package retrieval

import (
	"context"
	"fmt"
	"testing"

	"github.com/Wenqiii/pkvgo/core/common"
	"github.com/Wenqiii/pkvgo/core/compress"
	"github.com/Wenqiii/pkvgo/core/enrich"
	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/Wenqiii/pkvgo/core/file_store"
	"github.com/Wenqiii/pkvgo/internal/dao"
	gormModel "github.com/Wenqiii/pkvgo/internal/model/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	objects map[string][]byte
}

func (s *memStorage) Put(ctx context.Context, bucket, path string, data []byte, contentType string) (file_store.StoredObject, error) {
	s.objects[bucket+"/"+path] = data
	return file_store.StoredObject{Path: path}, nil
}

func (s *memStorage) Get(ctx context.Context, bucket, path string) ([]byte, error) {
	data, ok := s.objects[bucket+"/"+path]
	if !ok {
		return nil, fmt.Errorf("object not found: %s/%s", bucket, path)
	}
	return data, nil
}

func (s *memStorage) Delete(ctx context.Context, bucket, path string) error {
	delete(s.objects, bucket+"/"+path)
	return nil
}

type recordingEnricher struct {
	jobs []enrich.Job
	err  error
}

func (f *recordingEnricher) Submit(ctx context.Context, job enrich.Job) error {
	if f.err != nil {
		return f.err
	}
	f.jobs = append(f.jobs, job)
	return nil
}

var buckets = file_store.Buckets{Compressed: "items", Originals: "originals"}

func newTestService(storage file_store.Storage, worker enricher) *Service {
	return NewService(compress.NewEngine(context.Background()), storage, buckets, worker)
}

func TestGetOriginalBytesPrefersOriginal(t *testing.T) {
	storage := &memStorage{objects: map[string][]byte{
		"originals/notes/item1/a.txt": []byte("原始内容"),
		"items/notes/item1/a.txt":     []byte("stale compressed bytes"),
	}}
	s := newTestService(storage, &recordingEnricher{})
	s.getItem = func(ctx context.Context, id string) (*gormModel.KnowledgeItem, error) {
		return &gormModel.KnowledgeItem{
			ID:               id,
			FileName:         "a.txt",
			MimeType:         "text/plain",
			FilePath:         "notes/item1/a.txt",
			OriginalFilePath: common.Of("notes/item1/a.txt"),
			CompressionType:  compress.CompressionTypeText,
		}, nil
	}

	got, err := s.GetOriginalBytes(context.Background(), "item1")
	require.NoError(t, err)
	assert.True(t, got.FromOriginal)
	assert.Equal(t, []byte("原始内容"), got.Data)
	assert.Equal(t, "text/plain", got.MimeType)
}

func TestGetOriginalBytesDecompressesWhenNoOriginal(t *testing.T) {
	ctx := context.Background()
	engine := compress.NewEngine(ctx)
	content := []byte("无监督学习从无标签数据中发现结构。这段文字只有压缩副本。")
	res, err := engine.Compress(ctx, content, "text/plain", "b.txt")
	require.NoError(t, err)

	storage := &memStorage{objects: map[string][]byte{
		"items/notes/item2/b.txt": res.Compressed,
	}}
	s := newTestService(storage, &recordingEnricher{})
	s.getItem = func(ctx context.Context, id string) (*gormModel.KnowledgeItem, error) {
		return &gormModel.KnowledgeItem{
			ID:              id,
			FileName:        "b.txt",
			FilePath:        "notes/item2/b.txt",
			CompressionType: res.CompressionType,
		}, nil
	}

	got, err := s.GetOriginalBytes(ctx, "item2")
	require.NoError(t, err)
	assert.False(t, got.FromOriginal)
	assert.Equal(t, content, got.Data)
}

func TestGetOriginalBytesFallsBackWhenOriginalMissing(t *testing.T) {
	ctx := context.Background()
	engine := compress.NewEngine(ctx)
	content := []byte("原件丢失时压缩副本仍然可以完整还原这段内容。")
	res, err := engine.Compress(ctx, content, "text/plain", "c.txt")
	require.NoError(t, err)

	storage := &memStorage{objects: map[string][]byte{
		"items/notes/item3/c.txt": res.Compressed,
	}}
	s := newTestService(storage, &recordingEnricher{})
	s.getItem = func(ctx context.Context, id string) (*gormModel.KnowledgeItem, error) {
		return &gormModel.KnowledgeItem{
			ID:               id,
			FileName:         "c.txt",
			FilePath:         "notes/item3/c.txt",
			OriginalFilePath: common.Of("notes/item3/c.txt"), // originals bucket里没有这个对象
			CompressionType:  res.CompressionType,
		}, nil
	}

	got, err := s.GetOriginalBytes(ctx, "item3")
	require.NoError(t, err)
	assert.False(t, got.FromOriginal)
	assert.Equal(t, content, got.Data)
}

func TestGetOriginalBytesUnknownTagFails(t *testing.T) {
	storage := &memStorage{objects: map[string][]byte{
		"items/notes/item4/d.bin": []byte{0x01, 0x02},
	}}
	s := newTestService(storage, &recordingEnricher{})
	s.getItem = func(ctx context.Context, id string) (*gormModel.KnowledgeItem, error) {
		return &gormModel.KnowledgeItem{
			ID:              id,
			FilePath:        "notes/item4/d.bin",
			CompressionType: "lzma_custom",
		}, nil
	}

	_, err := s.GetOriginalBytes(context.Background(), "item4")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrUnknownCompression))
}

func TestRegenerateResetsStatusAndResubmits(t *testing.T) {
	worker := &recordingEnricher{}
	s := newTestService(&memStorage{objects: map[string][]byte{}}, worker)
	s.getItem = func(ctx context.Context, id string) (*gormModel.KnowledgeItem, error) {
		return &gormModel.KnowledgeItem{
			ID:            id,
			Title:         "旧条目",
			ExtractedText: "这段文本足够长，可以重新走一遍增强流程。",
		}, nil
	}
	var updated map[string]interface{}
	s.updateItem = func(ctx context.Context, id string, fields map[string]interface{}) error {
		updated = fields
		return nil
	}

	require.NoError(t, s.RegenerateAIContent(context.Background(), "item5"))
	require.NotNil(t, updated)
	assert.Equal(t, gormModel.StatusProcessing, updated["processing_status"])
	assert.Equal(t, "", updated["processing_error"])
	require.Len(t, worker.jobs, 1)
	assert.Equal(t, "item5", worker.jobs[0].ItemId)
}

func TestRegenerateRejectedWhileInFlight(t *testing.T) {
	worker := &recordingEnricher{err: errors.New(errors.ErrEnrichInFlight, "already running")}
	s := newTestService(&memStorage{objects: map[string][]byte{}}, worker)
	s.getItem = func(ctx context.Context, id string) (*gormModel.KnowledgeItem, error) {
		return &gormModel.KnowledgeItem{ID: id, ExtractedText: "足够长的文本内容用于增强任务。"}, nil
	}
	s.updateItem = func(ctx context.Context, id string, fields map[string]interface{}) error { return nil }

	err := s.RegenerateAIContent(context.Background(), "item6")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrEnrichInFlight))
}

func TestCompressionStatsRollup(t *testing.T) {
	s := newTestService(&memStorage{objects: map[string][]byte{}}, &recordingEnricher{})
	s.statsForUser = func(ctx context.Context, ownerId string) (*dao.CompressionStatsRow, error) {
		return &dao.CompressionStatsRow{Items: 4, TotalFileSize: 1000, TotalCompressedSize: 250}, nil
	}

	stats, err := s.GetCompressionStats(context.Background(), "user1")
	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Items)
	assert.Equal(t, int64(750), stats.TotalSavedBytes)
	assert.InDelta(t, 75.0, stats.OverallRatio, 0.0001)
}

func TestCompressionStatsEmpty(t *testing.T) {
	s := newTestService(&memStorage{objects: map[string][]byte{}}, &recordingEnricher{})
	s.statsForUser = func(ctx context.Context, ownerId string) (*dao.CompressionStatsRow, error) {
		return &dao.CompressionStatsRow{}, nil
	}

	stats, err := s.GetCompressionStats(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, stats.Items)
	assert.Zero(t, stats.OverallRatio, "empty store reports zero ratio, not NaN")
}

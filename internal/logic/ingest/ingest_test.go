package ingest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/Wenqiii/pkvgo/core/compress"
	"github.com/Wenqiii/pkvgo/core/enrich"
	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/Wenqiii/pkvgo/core/file_store"
	gormModel "github.com/Wenqiii/pkvgo/internal/model/gorm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStorage 内存对象存储，可按bucket注入写入失败
type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte // bucket/path -> data
	failPut map[string]bool   // bucket -> 写入失败
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}, failPut: map[string]bool{}}
}

func (s *fakeStorage) key(bucket, path string) string { return bucket + "/" + path }

func (s *fakeStorage) Put(ctx context.Context, bucket, path string, data []byte, contentType string) (file_store.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut[bucket] {
		return file_store.StoredObject{}, fmt.Errorf("bucket %s unavailable", bucket)
	}
	s.objects[s.key(bucket, path)] = append([]byte(nil), data...)
	return file_store.StoredObject{Path: path, URL: s.key(bucket, path)}, nil
}

func (s *fakeStorage) Get(ctx context.Context, bucket, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.objects[s.key(bucket, path)]
	if !ok {
		return nil, fmt.Errorf("object not found: %s", s.key(bucket, path))
	}
	return data, nil
}

func (s *fakeStorage) Delete(ctx context.Context, bucket, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, s.key(bucket, path))
	return nil
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

// fakeEnricher 记录提交的增强任务
type fakeEnricher struct {
	mu   sync.Mutex
	jobs []enrich.Job
}

func (f *fakeEnricher) Submit(ctx context.Context, job enrich.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs = append(f.jobs, job)
	return nil
}

var testBuckets = file_store.Buckets{Compressed: "items", Originals: "originals"}

func newTestCoordinator(t *testing.T, storage file_store.Storage, worker enricher) (*Coordinator, *[]*gormModel.KnowledgeItem) {
	t.Helper()
	created := []*gormModel.KnowledgeItem{}
	c := NewCoordinator(compress.NewEngine(context.Background()), storage, testBuckets, worker)
	c.createItem = func(ctx context.Context, item *gormModel.KnowledgeItem) error {
		created = append(created, item)
		return nil
	}
	c.findBySHA256 = func(ctx context.Context, ownerId, categoryId, sha256 string) (*gormModel.KnowledgeItem, error) {
		return nil, nil
	}
	return c, &created
}

func textInput() UploadInput {
	return UploadInput{
		OwnerId:    "user1",
		CategoryId: "notes",
		FileName:   "ml.txt",
		MimeType:   "text/plain",
		Data:       []byte(strings.Repeat("监督学习需要带标签的训练数据。", 50)),
	}
}

func TestUploadTextFile(t *testing.T) {
	storage := newFakeStorage()
	worker := &fakeEnricher{}
	c, created := newTestCoordinator(t, storage, worker)

	in := textInput()
	res, err := c.Upload(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, gormModel.StatusProcessing, res.ProcessingStatus)
	assert.Equal(t, int64(len(in.Data)), res.FileSize)
	assert.Equal(t, compress.CompressionTypeText, res.CompressionType)
	// 压缩率由原始/压缩大小重算，不信任引擎自带数字
	wantRatio := float64(res.FileSize-res.CompressedSize) / float64(res.FileSize) * 100
	assert.InDelta(t, wantRatio, res.CompressionRatio, 0.0001)
	assert.Greater(t, res.CompressionRatio, 70.0, "highly repetitive text should compress well")
	assert.True(t, res.OriginalPreserved, "ratio > 70 keeps the original")

	// 落库记录的 compressedSize 必须等于实际存储的对象长度
	require.Len(t, *created, 1)
	item := (*created)[0]
	blob, err := storage.Get(context.Background(), testBuckets.Compressed, item.FilePath)
	require.NoError(t, err)
	assert.Equal(t, item.CompressedSize, int64(len(blob)))
	assert.Equal(t, gormModel.StatusProcessing, item.ProcessingStatus)
	require.NotNil(t, item.OriginalFilePath)

	require.Len(t, worker.jobs, 1)
	assert.Equal(t, item.ID, worker.jobs[0].ItemId)
	assert.Equal(t, string(in.Data), worker.jobs[0].ExtractedText)
}

func TestUploadPDFAlwaysPreserved(t *testing.T) {
	storage := newFakeStorage()
	c, created := newTestCoordinator(t, storage, &fakeEnricher{})

	in := textInput()
	in.FileName = "paper.pdf"
	in.MimeType = "application/pdf"
	in.Data = []byte("not really a pdf")

	res, err := c.Upload(context.Background(), in)
	require.NoError(t, err)

	// 非法PDF提取失败降级为通用压缩，但关键格式仍保留原件
	assert.Equal(t, compress.CompressionTypeGeneric, res.CompressionType)
	assert.True(t, res.OriginalPreserved)
	require.Len(t, *created, 1)
	require.NotNil(t, (*created)[0].OriginalFilePath)
}

func TestUploadDuplicateRejectedBeforeStorage(t *testing.T) {
	storage := newFakeStorage()
	c, _ := newTestCoordinator(t, storage, &fakeEnricher{})
	c.findBySHA256 = func(ctx context.Context, ownerId, categoryId, sha256 string) (*gormModel.KnowledgeItem, error) {
		return &gormModel.KnowledgeItem{ID: "existing"}, nil
	}

	_, err := c.Upload(context.Background(), textInput())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFileAlreadyExists))
	assert.Zero(t, storage.count(), "no storage writes before the dedup check passes")
}

func TestUploadCreateFailureCleansUpObjects(t *testing.T) {
	storage := newFakeStorage()
	c, _ := newTestCoordinator(t, storage, &fakeEnricher{})
	c.createItem = func(ctx context.Context, item *gormModel.KnowledgeItem) error {
		return errors.New(errors.ErrDatabaseInsert, "insert failed")
	}

	_, err := c.Upload(context.Background(), textInput())
	require.Error(t, err)
	assert.Zero(t, storage.count(), "stored blobs must be reclaimed when the record fails")
}

func TestUploadCompressedStoreFailureFailsUpload(t *testing.T) {
	storage := newFakeStorage()
	storage.failPut[testBuckets.Compressed] = true
	c, created := newTestCoordinator(t, storage, &fakeEnricher{})

	_, err := c.Upload(context.Background(), textInput())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrFileUploadFailed))
	assert.Empty(t, *created)
}

func TestUploadOriginalStoreFailureDegrades(t *testing.T) {
	storage := newFakeStorage()
	storage.failPut[testBuckets.Originals] = true
	c, created := newTestCoordinator(t, storage, &fakeEnricher{})

	res, err := c.Upload(context.Background(), textInput())
	require.NoError(t, err, "original preservation is best-effort")
	assert.False(t, res.OriginalPreserved)
	require.Len(t, *created, 1)
	assert.Nil(t, (*created)[0].OriginalFilePath)
}

func TestUploadValidation(t *testing.T) {
	c, _ := newTestCoordinator(t, newFakeStorage(), &fakeEnricher{})

	cases := []struct {
		name   string
		mutate func(*UploadInput)
	}{
		{"missing owner", func(in *UploadInput) { in.OwnerId = "" }},
		{"missing file name", func(in *UploadInput) { in.FileName = "" }},
		{"empty content", func(in *UploadInput) { in.Data = nil }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := textInput()
			tc.mutate(&in)
			_, err := c.Upload(context.Background(), in)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrInvalidParameter))
		})
	}
}

func TestUploadInfersMimeTypeFromExtension(t *testing.T) {
	c, created := newTestCoordinator(t, newFakeStorage(), &fakeEnricher{})

	in := textInput()
	in.MimeType = ""
	in.FileName = "notes.md"

	res, err := c.Upload(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, compress.CompressionTypeText, res.CompressionType)
	require.Len(t, *created, 1)
	assert.Equal(t, "text/markdown", (*created)[0].MimeType)
}

func TestUploadConcurrentDistinctFiles(t *testing.T) {
	storage := newFakeStorage()
	worker := &fakeEnricher{}
	c, _ := newTestCoordinator(t, storage, worker)

	var mu sync.Mutex
	seen := map[string]bool{}
	c.createItem = func(ctx context.Context, item *gormModel.KnowledgeItem) error {
		mu.Lock()
		defer mu.Unlock()
		if seen[item.ID] {
			return errors.New(errors.ErrAlreadyExists, "duplicate id")
		}
		seen[item.ID] = true
		return nil
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			in := textInput()
			in.FileName = fmt.Sprintf("doc-%d.txt", i)
			in.Data = []byte(fmt.Sprintf("第 %d 份互不相同的测试文档内容，长度足够进入文本分支。", i))
			_, errs[i] = c.Upload(context.Background(), in)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "upload %d", i)
	}
	assert.Len(t, seen, 8, "each upload gets its own record")
}

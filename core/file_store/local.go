package file_store

import (
	"context"
	"os"
	"path/filepath"

	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/gogf/gf/v2/frame/g"
)

// LocalStorage 本地磁盘存储，bucket 映射为 upload 根目录下的子目录
type LocalStorage struct {
	rootDir string
}

// NewLocalStorage 创建本地存储并初始化目录结构
func NewLocalStorage(ctx context.Context, rootDir string, buckets Buckets) (*LocalStorage, error) {
	if rootDir == "" {
		rootDir = "upload"
	}
	for _, bucket := range []string{buckets.Compressed, buckets.Originals} {
		dir := filepath.Join(rootDir, bucket)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Newf(errors.ErrStorageInit, "failed to create directory %s: %v", dir, err)
		}
	}
	return &LocalStorage{rootDir: rootDir}, nil
}

func (s *LocalStorage) objectPath(bucket, path string) string {
	return filepath.Join(s.rootDir, bucket, filepath.FromSlash(path))
}

// Put 保存对象到本地磁盘
func (s *LocalStorage) Put(ctx context.Context, bucket string, path string, data []byte, contentType string) (StoredObject, error) {
	finalPath := s.objectPath(bucket, path)

	if err := os.MkdirAll(filepath.Dir(finalPath), 0755); err != nil {
		g.Log().Errorf(ctx, "Failed to create directory %s: %v", filepath.Dir(finalPath), err)
		return StoredObject{}, errors.Newf(errors.ErrFileUploadFailed, "failed to create directory: %v", err)
	}

	if err := os.WriteFile(finalPath, data, 0644); err != nil {
		g.Log().Errorf(ctx, "Failed to write file %s: %v", finalPath, err)
		// 删除写入失败的残留文件
		_ = os.Remove(finalPath)
		return StoredObject{}, errors.Newf(errors.ErrFileUploadFailed, "failed to write file %s: %v", finalPath, err)
	}

	g.Log().Infof(ctx, "File saved to local storage: %s", finalPath)
	return StoredObject{Path: path, URL: finalPath}, nil
}

// Get 读取本地对象
func (s *LocalStorage) Get(ctx context.Context, bucket string, path string) ([]byte, error) {
	data, err := os.ReadFile(s.objectPath(bucket, path))
	if err != nil {
		return nil, errors.Newf(errors.ErrFileReadFailed, "failed to read file %s: %v", path, err)
	}
	return data, nil
}

// Delete 删除本地对象
func (s *LocalStorage) Delete(ctx context.Context, bucket string, path string) error {
	if err := os.Remove(s.objectPath(bucket, path)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Newf(errors.ErrFileDeleteFailed, "failed to delete file %s: %v", path, err)
	}
	g.Log().Infof(ctx, "Deleted local object '%s' from bucket '%s'", path, bucket)
	return nil
}

package file_store

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/Wenqiii/pkvgo/core/errors"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// RustFSStorage 基于 MinIO 协议的 RustFS 对象存储
type RustFSStorage struct {
	client *minio.Client
}

// NewRustFSStorage 创建 RustFS 存储并确保所需 bucket 存在
func NewRustFSStorage(ctx context.Context, endpoint, accessKey, secretKey string, ssl bool, buckets Buckets) (*RustFSStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: ssl,
	})
	if err != nil {
		return nil, errors.Newf(errors.ErrStorageInit, "failed to create MinIO client: %v", err)
	}

	s := &RustFSStorage{client: client}
	for _, bucket := range []string{buckets.Compressed, buckets.Originals} {
		if err := s.ensureBucket(ctx, bucket); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ensureBucket 创建 bucket，如果已存在则跳过
func (s *RustFSStorage) ensureBucket(ctx context.Context, bucketName string) error {
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return errors.Newf(errors.ErrStorageInit, "failed to check if bucket exists: %v", err)
	}
	if exists {
		g.Log().Printf(ctx, "Bucket '%s' already exists, skipping creation.", bucketName)
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{Region: ""}); err != nil {
		return errors.Newf(errors.ErrStorageInit, "failed to create bucket: %v", err)
	}
	g.Log().Printf(ctx, "Created bucket '%s'", bucketName)
	return nil
}

// Put 上传对象
func (s *RustFSStorage) Put(ctx context.Context, bucket string, path string, data []byte, contentType string) (StoredObject, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, bucket, path, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return StoredObject{}, errors.Newf(errors.ErrFileUploadFailed, "failed to upload to RustFS: %v", err)
	}

	g.Log().Infof(ctx, "File uploaded to RustFS: bucket=%s, key=%s, size=%d", bucket, path, len(data))
	return StoredObject{
		Path: path,
		URL:  fmt.Sprintf("rustfs://%s/%s", bucket, path),
	}, nil
}

// Get 读取对象内容
func (s *RustFSStorage) Get(ctx context.Context, bucket string, path string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Newf(errors.ErrFileReadFailed, "failed to get object %s: %v", path, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, errors.Newf(errors.ErrFileReadFailed, "failed to read object %s: %v", path, err)
	}
	return data, nil
}

// Delete 删除指定的对象
func (s *RustFSStorage) Delete(ctx context.Context, bucket string, path string) error {
	err := s.client.RemoveObject(ctx, bucket, path, minio.RemoveObjectOptions{})
	if err != nil {
		return errors.Newf(errors.ErrFileDeleteFailed, "failed to delete object %s: %v", path, err)
	}
	g.Log().Infof(ctx, "Deleted object '%s' from bucket '%s'", path, bucket)
	return nil
}

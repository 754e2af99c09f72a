package file_store

import (
	"context"
)

// StorageType 存储类型
type StorageType string

const (
	StorageTypeRustFS StorageType = "rustfs"
	StorageTypeLocal  StorageType = "local"
)

// StoredObject 存储结果
type StoredObject struct {
	Path string // 对象路径
	URL  string // 访问地址，本地存储为文件路径
}

// Storage 对象存储网关，压缩副本和原始文件分别落在不同逻辑bucket
type Storage interface {
	Put(ctx context.Context, bucket string, path string, data []byte, contentType string) (StoredObject, error)
	Get(ctx context.Context, bucket string, path string) ([]byte, error)
	Delete(ctx context.Context, bucket string, path string) error
}

// Buckets 逻辑bucket划分
type Buckets struct {
	Compressed string // 压缩副本
	Originals  string // 保留的原始文件
}

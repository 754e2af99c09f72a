package file_store

import (
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gctx"
)

var (
	storage     Storage
	bucketNames Buckets
)

// InitStorage 初始化存储系统
// storage.type 为 rustfs 且配置完整时使用 RustFS，否则回退本地存储
func InitStorage() {
	ctx := gctx.New()

	bucketNames = Buckets{
		Compressed: g.Cfg().MustGet(ctx, "rustfs.bucketName", "knowledge-items").String(),
		Originals:  g.Cfg().MustGet(ctx, "rustfs.originalsBucketName", "knowledge-originals").String(),
	}

	storageTypeStr := g.Cfg().MustGet(ctx, "storage.type", "local").String()
	if storageTypeStr == string(StorageTypeRustFS) {
		endpoint := g.Cfg().MustGet(ctx, "rustfs.endpoint", "").String()
		if endpoint != "" {
			accessKey := g.Cfg().MustGet(ctx, "rustfs.accessKey").String()
			secretKey := g.Cfg().MustGet(ctx, "rustfs.secretKey").String()
			ssl := g.Cfg().MustGet(ctx, "rustfs.ssl", false).Bool()

			s, err := NewRustFSStorage(ctx, endpoint, accessKey, secretKey, ssl, bucketNames)
			if err != nil {
				g.Log().Fatalf(ctx, "failed to initialize RustFS: %v", err)
				return
			}
			storage = s
			g.Log().Infof(ctx, "Using RustFS storage as configured")
			return
		}
		g.Log().Infof(ctx, "RustFS not configured, using local storage")
	}

	rootDir := g.Cfg().MustGet(ctx, "storage.localRoot", "upload").String()
	s, err := NewLocalStorage(ctx, rootDir, bucketNames)
	if err != nil {
		g.Log().Fatalf(ctx, "failed to initialize local storage: %v", err)
		return
	}
	storage = s
	g.Log().Infof(ctx, "Using local storage")
}

// GetStorage 获取存储实例
func GetStorage() Storage {
	return storage
}

// GetBuckets 获取逻辑bucket配置
func GetBuckets() Buckets {
	return bucketNames
}

package file_store

import (
	"bytes"
	"context"
	"testing"
)

func TestLocalStoragePutGetDelete(t *testing.T) {
	ctx := context.Background()
	buckets := Buckets{Compressed: "compressed", Originals: "originals"}

	s, err := NewLocalStorage(ctx, t.TempDir(), buckets)
	if err != nil {
		t.Fatalf("NewLocalStorage failed: %v", err)
	}

	payload := []byte("compressed bytes payload")
	obj, err := s.Put(ctx, buckets.Compressed, "cat1/item1/file.zst", payload, "application/octet-stream")
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if obj.Path != "cat1/item1/file.zst" {
		t.Errorf("Put path = %q, want original path", obj.Path)
	}

	got, err := s.Get(ctx, buckets.Compressed, "cat1/item1/file.zst")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Get returned %d bytes, want %d", len(got), len(payload))
	}

	if err := s.Delete(ctx, buckets.Compressed, "cat1/item1/file.zst"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.Get(ctx, buckets.Compressed, "cat1/item1/file.zst"); err == nil {
		t.Errorf("Get after Delete should fail")
	}

	// 删除不存在的对象不报错
	if err := s.Delete(ctx, buckets.Compressed, "missing"); err != nil {
		t.Errorf("Delete missing object returned error: %v", err)
	}
}

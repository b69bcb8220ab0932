package imagestore

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	objects map[string][]byte
	puts    map[string][]byte
}

func (f *fakeS3) ListObjectsV2(_ context.Context, params *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	var contents []types.Object
	for key, data := range f.objects {
		if params.Prefix != nil && !bytes.HasPrefix([]byte(key), []byte(*params.Prefix)) {
			continue
		}
		contents = append(contents, types.Object{
			Key:  aws.String(key),
			Size: aws.Int64(int64(len(data))),
		})
	}
	return &s3.ListObjectsV2Output{Contents: contents, IsTruncated: aws.Bool(false)}, nil
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data := f.objects[*params.Key]
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	f.puts[*params.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3StoreListFiltersAndSorts(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{
		"physics/b.png":     []byte("bb"),
		"physics/a.jpg":     []byte("a"),
		"physics/notes.txt": []byte("n"),
		"other/c.png":       []byte("c"),
	}}
	store := newS3StoreWithClient(fake, "bucket", "physics/")

	refs, err := store.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2: %+v", len(refs), refs)
	}
	if refs[0].Key != "physics/a.jpg" || refs[1].Key != "physics/b.png" {
		t.Errorf("unexpected order: %+v", refs)
	}
	if refs[1].URL != "https://bucket.s3.amazonaws.com/physics/b.png" {
		t.Errorf("unexpected URL: %q", refs[1].URL)
	}
	if refs[1].Size != 2 {
		t.Errorf("size = %d, want 2", refs[1].Size)
	}
}

func TestS3StoreFetch(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{"a.png": []byte("data")}}
	store := newS3StoreWithClient(fake, "bucket", "")

	data, err := store.Fetch(context.Background(), Ref{Key: "a.png"})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "data" {
		t.Errorf("fetched %q", data)
	}
}

func TestS3StoreUpload(t *testing.T) {
	fake := &fakeS3{objects: map[string][]byte{}}
	store := newS3StoreWithClient(fake, "bucket", "diagrams")

	dir := t.TempDir()
	local := filepath.Join(dir, "fig.png")
	if err := os.WriteFile(local, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	ref, err := store.Upload(context.Background(), local)
	if err != nil {
		t.Fatal(err)
	}
	if ref.Key != "diagrams/fig.png" {
		t.Errorf("key = %q, want diagrams/fig.png", ref.Key)
	}
	if string(fake.puts["diagrams/fig.png"]) != "png" {
		t.Error("object body not uploaded")
	}
	if ref.URL != "https://bucket.s3.amazonaws.com/diagrams/fig.png" {
		t.Errorf("url = %q", ref.URL)
	}
}

func TestS3StoreUploadRejectsNonImage(t *testing.T) {
	store := newS3StoreWithClient(&fakeS3{}, "bucket", "")

	dir := t.TempDir()
	local := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(local, []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Upload(context.Background(), local); err == nil {
		t.Fatal("expected error for non-image file")
	}
}

func TestS3StoreSource(t *testing.T) {
	if src := newS3StoreWithClient(&fakeS3{}, "b", "p/").Source(); src != "s3://b/p/" {
		t.Errorf("source = %q", src)
	}
	if src := newS3StoreWithClient(&fakeS3{}, "b", "").Source(); src != "s3://b" {
		t.Errorf("source = %q", src)
	}
}

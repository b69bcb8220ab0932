package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// s3Client is the subset of the S3 API the store uses. Tests swap in a
// fake.
type s3Client interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store is a Store over an S3 bucket prefix.
type S3Store struct {
	client s3Client
	bucket string
	prefix string
}

// NewS3Store builds an S3 store using the default AWS credential chain
// (environment, shared config, instance role).
func NewS3Store(ctx context.Context, bucket, prefix, region string) (*S3Store, error) {
	if bucket == "" {
		return nil, fmt.Errorf("s3 bucket name is required")
	}
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	// Explicit keys beat the chain when both are present.
	if key, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY"); key != "" && secret != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, os.Getenv("AWS_SESSION_TOKEN"))))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &S3Store{client: s3.NewFromConfig(cfg), bucket: bucket, prefix: prefix}, nil
}

// newS3StoreWithClient is the test seam.
func newS3StoreWithClient(client s3Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

func (s *S3Store) List(ctx context.Context) ([]Ref, error) {
	var refs []Ref

	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
	}
	if s.prefix != "" {
		input.Prefix = aws.String(s.prefix)
	}

	paginator := s3.NewListObjectsV2Paginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list s3 objects: %w", err)
		}
		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !IsImageFile(key) {
				continue
			}
			refs = append(refs, Ref{
				Key:  key,
				URL:  s.ObjectURL(key),
				Size: aws.ToInt64(obj.Size),
			})
		}
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].Key < refs[j].Key })
	return refs, nil
}

func (s *S3Store) Fetch(ctx context.Context, ref Ref) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(ref.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3 object %s: %w", ref.Key, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read s3 object %s: %w", ref.Key, err)
	}
	return data, nil
}

func (s *S3Store) Source() string {
	src := "s3://" + s.bucket
	if s.prefix != "" {
		src += "/" + strings.TrimPrefix(s.prefix, "/")
	}
	return src
}

// ObjectURL returns the public HTTPS address of an object in the
// store's bucket.
func (s *S3Store) ObjectURL(key string) string {
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

// Upload puts one image into the bucket under the store's prefix and
// returns its Ref.
func (s *S3Store) Upload(ctx context.Context, localPath string) (Ref, error) {
	name := filepath.Base(localPath)
	mt, err := MIMEType(name)
	if err != nil {
		return Ref{}, err
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return Ref{}, fmt.Errorf("read %s: %w", localPath, err)
	}

	key := name
	if s.prefix != "" {
		key = strings.TrimSuffix(s.prefix, "/") + "/" + name
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mt),
	})
	if err != nil {
		return Ref{}, fmt.Errorf("upload %s: %w", name, err)
	}

	return Ref{Key: key, URL: s.ObjectURL(key), Size: int64(len(data))}, nil
}

// UploadDir uploads every supported image in a local directory and
// returns the refs of the uploaded objects, in name order.
func (s *S3Store) UploadDir(ctx context.Context, dir string) ([]Ref, error) {
	local, err := NewLocalDir(dir)
	if err != nil {
		return nil, err
	}
	files, err := local.List(ctx)
	if err != nil {
		return nil, err
	}

	refs := make([]Ref, 0, len(files))
	for _, f := range files {
		ref, err := s.Upload(ctx, f.Key)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

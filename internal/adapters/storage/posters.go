package storage

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// PosterStorage keeps event poster images in an OSS bucket and hands back
// the public URL that ends up on the event row.
type PosterStorage struct {
	bucket     *oss.Bucket
	bucketName string
	endpoint   string
	publicURL  string
}

type Options struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	// PublicURL overrides the default https://<bucket>.<endpoint> base,
	// e.g. when a CDN sits in front of the bucket.
	PublicURL string
}

func New(opts Options) (*PosterStorage, error) {
	client, err := oss.New(opts.Endpoint, opts.AccessKeyID, opts.AccessKeySecret)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}

	bucket, err := client.Bucket(opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("client.Bucket: %w", err)
	}

	return &PosterStorage{
		bucket:     bucket,
		bucketName: opts.Bucket,
		endpoint:   opts.Endpoint,
		publicURL:  strings.TrimRight(opts.PublicURL, "/"),
	}, nil
}

// Store uploads the object and returns its publicly resolvable URL.
func (s *PosterStorage) Store(path string, data []byte, contentType string) (string, error) {
	path = strings.TrimLeft(path, "/")
	err := s.bucket.PutObject(path, bytes.NewReader(data), oss.ContentType(contentType))
	if err != nil {
		return "", fmt.Errorf("put object %s: %w", path, err)
	}
	return s.url(path), nil
}

func (s *PosterStorage) url(path string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, path)
	}
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, strings.TrimPrefix(s.endpoint, "https://"), path)
}

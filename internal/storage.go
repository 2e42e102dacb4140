package internal

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/aws/aws-sdk-go/service/s3/s3manager/s3manageriface"
	"github.com/hashicorp/go-hclog"
)

const s3Scheme = "s3://"

// Location is either a local path or an S3 object (Bucket set).
type Location struct {
	Bucket string
	Key    string
}

func ParseLocation(raw string) (Location, error) {
	if !strings.HasPrefix(raw, s3Scheme) {
		return Location{Key: raw}, nil
	}
	rest := strings.TrimPrefix(raw, s3Scheme)
	bucket, key, _ := strings.Cut(rest, "/")
	if bucket == "" {
		return Location{}, fmt.Errorf("location %q: bucket is required", raw)
	}
	return Location{Bucket: bucket, Key: key}, nil
}

func (l Location) IsS3() bool { return l.Bucket != "" }

func (l Location) String() string {
	if l.IsS3() {
		return s3Scheme + l.Bucket + "/" + l.Key
	}
	return l.Key
}

// Name is the last path element of the location.
func (l Location) Name() string {
	if l.IsS3() {
		return path.Base(l.Key)
	}
	return filepath.Base(l.Key)
}

// Join appends name when l denotes a directory or prefix: empty, ending in a separator,
// or an existing local directory.
func (l Location) Join(name string) Location {
	if l.IsS3() {
		if l.Key == "" || strings.HasSuffix(l.Key, "/") {
			return Location{Bucket: l.Bucket, Key: l.Key + name}
		}
		return l
	}
	if l.Key == "" {
		return Location{Key: name}
	}
	if strings.HasSuffix(l.Key, "/") || strings.HasSuffix(l.Key, string(filepath.Separator)) {
		return Location{Key: filepath.Join(l.Key, name)}
	}
	if fi, err := os.Stat(l.Key); err == nil && fi.IsDir() {
		return Location{Key: filepath.Join(l.Key, name)}
	}
	return l
}

type Store interface {
	Load(ctx context.Context, loc Location) ([]byte, error)
	Save(ctx context.Context, loc Location, data []byte, contentType string) error
}

// RoutingStore sends S3 locations to the S3 store and everything else to the local one.
type RoutingStore struct {
	Local Store
	S3    Store
}

func (s *RoutingStore) pick(loc Location) (Store, error) {
	if !loc.IsS3() {
		return s.Local, nil
	}
	if s.S3 == nil {
		return nil, fmt.Errorf("%s: S3 storage is not configured", loc)
	}
	return s.S3, nil
}

func (s *RoutingStore) Load(ctx context.Context, loc Location) ([]byte, error) {
	st, err := s.pick(loc)
	if err != nil {
		return nil, err
	}
	return st.Load(ctx, loc)
}

func (s *RoutingStore) Save(ctx context.Context, loc Location, data []byte, contentType string) error {
	st, err := s.pick(loc)
	if err != nil {
		return err
	}
	return st.Save(ctx, loc, data, contentType)
}

type LocalStore struct {
	log hclog.Logger
}

func NewLocalStore(log hclog.Logger) *LocalStore {
	return &LocalStore{log: log}
}

func (s *LocalStore) Load(_ context.Context, loc Location) ([]byte, error) {
	data, err := os.ReadFile(loc.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", loc.Key, err)
	}
	s.log.Debug("read file", "path", loc.Key, "bytes", len(data))
	return data, nil
}

func (s *LocalStore) Save(_ context.Context, loc Location, data []byte, _ string) error {
	if dir := filepath.Dir(loc.Key); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create dir %q: %w", dir, err)
		}
	}
	if err := os.WriteFile(loc.Key, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %q: %w", loc.Key, err)
	}
	s.log.Debug("wrote file", "path", loc.Key, "bytes", len(data))
	return nil
}

type S3Store struct {
	downloader s3manageriface.DownloaderAPI
	uploader   s3manageriface.UploaderAPI
	log        hclog.Logger
}

// NewS3Store creates a session for region using the default AWS credential chain.
func NewS3Store(region string, log hclog.Logger) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return NewS3StoreWithClients(s3manager.NewDownloader(sess), s3manager.NewUploader(sess), log), nil
}

func NewS3StoreWithClients(d s3manageriface.DownloaderAPI, u s3manageriface.UploaderAPI, log hclog.Logger) *S3Store {
	return &S3Store{downloader: d, uploader: u, log: log}
}

func (s *S3Store) Load(ctx context.Context, loc Location) ([]byte, error) {
	buf := aws.NewWriteAtBuffer(nil)
	_, err := s.downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", loc, err)
	}
	s.log.Debug("receive file from S3", "location", loc.String(), "bytes", len(buf.Bytes()))
	return buf.Bytes(), nil
}

func (s *S3Store) Save(ctx context.Context, loc Location, data []byte, contentType string) error {
	_, err := s.uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket:      aws.String(loc.Bucket),
		Key:         aws.String(loc.Key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s: %w", loc, err)
	}
	s.log.Debug("put file to S3", "location", loc.String(), "bytes", len(data))
	return nil
}

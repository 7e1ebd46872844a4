// Package enumsource provides vitrin.EnumSource implementations backed
// by object storage and the local filesystem. Option lists are stored as
// JSON arrays of {value, label} objects, one object per enum key.
package enumsource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/lychee-technology/vitrin"
)

// ObjectGetter is the slice of the S3 API the source needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads enum option lists from <bucket>/<prefix><key>.json.
type S3Source struct {
	client ObjectGetter
	bucket string
	prefix string
}

// NewS3Source creates a source over the given bucket. prefix may be
// empty or a key prefix like "enums/".
func NewS3Source(client ObjectGetter, bucket, prefix string) *S3Source {
	return &S3Source{client: client, bucket: bucket, prefix: prefix}
}

// Options implements vitrin.EnumSource. A missing object is not an
// error: unknown keys resolve to an empty list so one absent lookup
// file cannot break a whole form.
func (s *S3Source) Options(ctx context.Context, key string) ([]vitrin.Option, error) {
	objectKey := s.prefix + key + ".json"
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		var noKey *types.NoSuchKey
		if errors.As(err, &noKey) {
			return []vitrin.Option{}, nil
		}
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return []vitrin.Option{}, nil
		}
		return nil, fmt.Errorf("get enum object %s: %w", objectKey, err)
	}
	defer out.Body.Close()

	body, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read enum object %s: %w", objectKey, err)
	}
	return decodeOptions(body, objectKey)
}

// FileSource reads enum option lists from <dir>/<key>.json. Useful for
// local development and as a shipped fallback catalog.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

// Options implements vitrin.EnumSource. Keys may contain dots (for
// dependent lookups like "vehicle.models.bmw"); they map to file names
// as-is. A missing file resolves to an empty list.
func (f *FileSource) Options(_ context.Context, key string) ([]vitrin.Option, error) {
	if strings.Contains(key, string(os.PathSeparator)) || strings.Contains(key, "..") {
		return nil, fmt.Errorf("invalid enum key %q", key)
	}
	path := filepath.Join(f.dir, key+".json")
	body, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return []vitrin.Option{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read enum file %s: %w", path, err)
	}
	return decodeOptions(body, path)
}

func decodeOptions(body []byte, name string) ([]vitrin.Option, error) {
	var options []vitrin.Option
	if err := json.Unmarshal(body, &options); err != nil {
		return nil, fmt.Errorf("decode enum %s: %w", name, err)
	}
	if options == nil {
		options = []vitrin.Option{}
	}
	return options, nil
}

package storage

import (
	"context"
	"fmt"
	"strings"
)

// S3ImageStore stores generated exercise illustrations through a
// FileStorage backend. Keys look like exercises/chin_tuck_01.png; the
// returned value is the object key, which handlers presign on read.
type S3ImageStore struct {
	files  FileStorage
	prefix string
}

func NewS3ImageStore(files FileStorage, prefix string) *S3ImageStore {
	return &S3ImageStore{
		files:  files,
		prefix: strings.TrimSuffix(prefix, "/"),
	}
}

func (s *S3ImageStore) SaveImage(ctx context.Context, exerciseID string, order int, data []byte) (string, error) {
	key := fmt.Sprintf("%s/%s_%02d.png", s.prefix, exerciseID, order)
	if err := s.files.UploadObject(ctx, key, "image/png", data); err != nil {
		return "", err
	}
	return key, nil
}

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/primeharmonic/swipe/pkg/storage"
)

// resolveStore maps a bare filesystem path or an s3://bucket/key URI to a
// storage.FileStore and the path within it, so the rest of the CLI never
// has to branch on which backend a -i/-o argument names.
func resolveStore(ctx context.Context, pathOrURI string) (storage.FileStore, string, error) {
	if rest, ok := strings.CutPrefix(pathOrURI, "s3://"); ok {
		bucket, key, found := strings.Cut(rest, "/")
		if !found || bucket == "" || key == "" {
			return nil, "", fmt.Errorf("invalid s3 uri %q: expected s3://bucket/key", pathOrURI)
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("load aws config: %w", err)
		}
		client := s3.NewFromConfig(awsCfg)
		return storage.NewS3(client, bucket, ""), key, nil
	}

	abs, err := filepath.Abs(pathOrURI)
	if err != nil {
		return nil, "", fmt.Errorf("resolve path %q: %w", pathOrURI, err)
	}
	store, err := storage.NewLocal(filepath.Dir(abs))
	if err != nil {
		return nil, "", fmt.Errorf("open local store for %q: %w", pathOrURI, err)
	}
	return store, filepath.Base(abs), nil
}

// openInput opens pathOrURI for reading, or stdin when pathOrURI is empty.
func openInput(ctx context.Context, pathOrURI string) (io.ReadCloser, error) {
	if pathOrURI == "" {
		return io.NopCloser(os.Stdin), nil
	}
	store, path, err := resolveStore(ctx, pathOrURI)
	if err != nil {
		return nil, err
	}
	rc, err := store.Read(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", pathOrURI, err)
	}
	return rc, nil
}

// openOutput opens pathOrURI for writing, or stdout when pathOrURI is empty.
func openOutput(ctx context.Context, pathOrURI string) (io.WriteCloser, error) {
	if pathOrURI == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	store, path, err := resolveStore(ctx, pathOrURI)
	if err != nil {
		return nil, err
	}
	wc, err := store.Write(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("write %s: %w", pathOrURI, err)
	}
	return wc, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

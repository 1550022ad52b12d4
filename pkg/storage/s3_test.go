package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// apiError implements smithy.APIError for test assertions.
type apiError struct {
	code string
	msg  string
}

func (e *apiError) Error() string                 { return e.msg }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.msg }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultClient }

var errNoSuchKey = &apiError{code: "NoSuchKey", msg: "no such key"}

// fakeS3 is an in-memory S3Client.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte

	getErr error
	putErr error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string][]byte)}
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, errNoSuchKey
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func TestS3WriteReadRoundTrip(t *testing.T) {
	store := NewS3(newFakeS3(), "test-bucket", "")
	ctx := context.Background()

	const data = "0.0000000 200.1234\n"
	w, err := store.Write(ctx, "pitch.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := io.WriteString(w, data); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	r, err := store.Read(ctx, "pitch.txt")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != data {
		t.Fatalf("got %q, want %q", got, data)
	}
}

func TestS3ReadMissingIsNotExist(t *testing.T) {
	store := NewS3(newFakeS3(), "test-bucket", "")

	_, err := store.Read(context.Background(), "missing")
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want os.ErrNotExist", err)
	}
}

func TestS3ReadOtherErrorPassesThrough(t *testing.T) {
	fake := newFakeS3()
	fake.getErr = errors.New("network timeout")
	store := NewS3(fake, "bucket", "pfx")

	_, err := store.Read(context.Background(), "x")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, os.ErrNotExist) {
		t.Fatal("generic errors must not map to ErrNotExist")
	}
}

func TestS3WriteUploadErrorSurfacesOnClose(t *testing.T) {
	fake := newFakeS3()
	fake.putErr = errors.New("upload failed")
	store := NewS3(fake, "bucket", "")

	w, err := store.Write(context.Background(), "obj")
	if err != nil {
		t.Fatal(err)
	}
	// The pipe may or may not accept data before the goroutine fails.
	io.WriteString(w, "data")
	if err := w.Close(); err == nil {
		t.Fatal("expected upload error from Close")
	}
}

func TestS3KeyPrefix(t *testing.T) {
	fake := newFakeS3()
	store := NewS3(fake, "bucket", "runs/2024")
	ctx := context.Background()

	w, err := store.Write(ctx, "pitch.txt")
	if err != nil {
		t.Fatal(err)
	}
	io.WriteString(w, "content")
	w.Close()

	fake.mu.Lock()
	_, ok := fake.objects["runs/2024/pitch.txt"]
	fake.mu.Unlock()
	if !ok {
		t.Fatal("object not stored under prefixed key runs/2024/pitch.txt")
	}

	if got := NewS3(fake, "bucket", "").key("a/b"); got != "a/b" {
		t.Fatalf("key with no prefix = %q, want %q", got, "a/b")
	}
}

func TestIsS3NotFound(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"NoSuchKey", errNoSuchKey, true},
		{"NotFound", &apiError{code: "NotFound", msg: "not found"}, true},
		{"other api error", &apiError{code: "AccessDenied", msg: "denied"}, false},
		{"plain error", errors.New("timeout"), false},
		{"nil", nil, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := isS3NotFound(c.err); got != c.want {
				t.Fatalf("isS3NotFound(%v) = %v, want %v", c.err, got, c.want)
			}
		})
	}
}

package credential

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/keypad-lock/internal/config"
	"github.com/oshokin/keypad-lock/internal/logger"
)

// updatedAtKey records when the credential was last written.
const updatedAtKey = "updated_at"

// FileRepository stores the credential in a JSON document shared by several
// namespaces. Documents are read and written with protojson as a
// google.protobuf.Struct, so unknown namespaces survive every save.
type FileRepository struct {
	// path is the filesystem location of the document.
	path string
	// namespace selects this lock's object inside the document.
	namespace string
	// mu serialises reads and writes of the document.
	mu sync.Mutex
}

// NewFileRepository creates a repository for the document at path.
func NewFileRepository(path, namespace string) *FileRepository {
	return &FileRepository{
		path:      filepath.Clean(path),
		namespace: namespace,
	}
}

// Load returns the credential of the namespace.
func (r *FileRepository) Load(_ context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()
	if err != nil {
		return "", err
	}

	ns := doc.GetFields()[r.namespace].GetStructValue()
	if ns == nil {
		return "", ErrNotFound
	}

	value, ok := ns.GetFields()[Key]
	if !ok {
		return "", ErrNotFound
	}

	s, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrMalformed, Key)
	}

	return s.StringValue, nil
}

// Save replaces the credential of the namespace. Other namespaces are kept
// unless the document could not be decoded.
func (r *FileRepository) Save(_ context.Context, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, err := r.read()

	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrMalformed):
		doc = &structpb.Struct{Fields: make(map[string]*structpb.Value, 1)}
	default:
		return err
	}

	ns := doc.GetFields()[r.namespace].GetStructValue()
	if ns == nil {
		ns = new(structpb.Struct)
	}

	if ns.Fields == nil {
		ns.Fields = make(map[string]*structpb.Value, 2)
	}

	ns.Fields[Key] = structpb.NewStringValue(value)
	ns.Fields[updatedAtKey] = structpb.NewStringValue(time.Now().UTC().Format(time.RFC3339Nano))
	doc.Fields[r.namespace] = structpb.NewStructValue(ns)

	data, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode credential: %w", err)
	}

	return r.write(data)
}

// Watch calls onChange whenever the document is written or replaced, until
// ctx is canceled. onChange runs on the watcher goroutine.
func (r *FileRepository) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	// Watch the directory: atomic saves replace the file and drop file watches.
	if err = w.Add(filepath.Dir(r.path)); err != nil {
		_ = w.Close()

		return fmt.Errorf("watch %s: %w", filepath.Dir(r.path), err)
	}

	go func() {
		defer func() { _ = w.Close() }()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}

				if filepath.Clean(event.Name) != r.path {
					continue
				}

				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					onChange()
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}

				logger.WarnKV(ctx, "Credential watcher error", "path", r.path, "error", err)
			}
		}
	}()

	return nil
}

// read decodes the document. A missing or blank file is ErrNotFound.
func (r *FileRepository) read() (*structpb.Struct, error) {
	contents, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, fmt.Errorf("read credential file: %w", err)
	}

	if len(bytes.TrimSpace(contents)) == 0 {
		return nil, ErrNotFound
	}

	doc := new(structpb.Struct)
	if err = protojson.Unmarshal(contents, doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if doc.Fields == nil {
		doc.Fields = make(map[string]*structpb.Value, 1)
	}

	return doc, nil
}

// write replaces the document through a temporary file so readers never see
// a partial write.
func (r *FileRepository) write(data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(r.path), "."+filepath.Base(r.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write credential file: %w", err)
	}

	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("sync credential file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close credential file: %w", err)
	}

	if err = os.Chmod(tmp.Name(), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("chmod credential file: %w", err)
	}

	if err = os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("replace credential file: %w", err)
	}

	return nil
}

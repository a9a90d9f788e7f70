package mailclean_test

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/infodancer/mailclean"
	"github.com/infodancer/mailclean/errors"

	// Import maildir to trigger registration
	_ "github.com/infodancer/mailclean/maildir"
)

func TestRegisteredTypes(t *testing.T) {
	types := mailclean.RegisteredTypes()
	if len(types) == 0 {
		t.Fatal("expected at least one registered type")
	}

	// maildir should be registered via init()
	found := false
	for _, typ := range types {
		if typ == "maildir" {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("maildir not found in registered types: %v", types)
	}
}

func TestOpen(t *testing.T) {
	basePath := t.TempDir()

	store, err := mailclean.Open(mailclean.StoreConfig{
		Type:     "maildir",
		BasePath: basePath,
		Options:  map[string]string{"prefix": "", "separator": "/"},
	})
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if store == nil {
		t.Fatal("expected non-nil store")
	}

	path, err := store.FolderPath("Lists/Go")
	if err != nil {
		t.Fatalf("FolderPath failed: %v", err)
	}
	if want := basePath + "/Lists/Go"; path != want {
		t.Fatalf("FolderPath = %q, want %q", path, want)
	}
	if err := store.Create(context.Background(), path); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := store.Open(context.Background(), path); err != nil {
		t.Fatalf("Open folder failed: %v", err)
	}
}

func TestOpenUnregistered(t *testing.T) {
	_, err := mailclean.Open(mailclean.StoreConfig{
		Type:     "nonexistent",
		BasePath: "/tmp",
	})
	if !stderrors.Is(err, errors.ErrStoreNotRegistered) {
		t.Fatalf("expected ErrStoreNotRegistered, got %v", err)
	}
	if !strings.Contains(err.Error(), "maildir") {
		t.Fatalf("error should list the registered types: %v", err)
	}
}

func TestOpenInvalidConfig(t *testing.T) {
	_, err := mailclean.Open(mailclean.StoreConfig{
		Type:     "maildir",
		BasePath: "", // invalid - empty path
	})
	if err != errors.ErrStoreConfigInvalid {
		t.Fatalf("expected ErrStoreConfigInvalid, got %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	mailclean.Register("maildir", func(mailclean.StoreConfig) (mailclean.MailStore, error) {
		return nil, nil
	})
}

func TestOpenRetryDelay(t *testing.T) {
	basePath := t.TempDir()
	if _, err := mailclean.Open(mailclean.StoreConfig{
		Type:     "maildir",
		BasePath: basePath,
		Options:  map[string]string{"retry_delay": "250ms"},
	}); err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for _, v := range []string{"soon", "-1s"} {
		_, err := mailclean.Open(mailclean.StoreConfig{
			Type:     "maildir",
			BasePath: basePath,
			Options:  map[string]string{"retry_delay": v},
		})
		if !stderrors.Is(err, errors.ErrStoreConfigInvalid) {
			t.Errorf("retry_delay %q: expected ErrStoreConfigInvalid, got %v", v, err)
		}
	}
}

package credential

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileStore persists credentials to a JSON file so that a delegated login
// survives process restarts. Invalid credentials are not written back.
type FileStore struct {
	mu          sync.RWMutex
	path        string
	credentials map[Key]*Credential
}

type fileSnapshot struct {
	Credentials map[string]*Credential `json:"credentials"`
}

func keyString(k Key) string { return k.Subject + "|" + k.Scopes }

func (f *FileStore) Lookup(key Key) (*Credential, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	credential, ok := f.credentials[key]
	return credential, ok
}

func (f *FileStore) Put(key Key, credential *Credential) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.credentials[key] = credential
	return f.save()
}

func (f *FileStore) Delete(key Key) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.credentials[key]; !ok {
		return
	}
	delete(f.credentials, key)
	_ = f.save()
}

func (f *FileStore) save() error {
	snap := fileSnapshot{Credentials: map[string]*Credential{}}
	for k, v := range f.credentials {
		if v.Valid() {
			snap.Credentials[keyString(k)] = v
		}
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	tmp := f.path + ".tmp"
	if err = os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, f.path)
}

func (f *FileStore) load() error {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var snap fileSnapshot
	if err = json.Unmarshal(data, &snap); err != nil {
		return err
	}
	for k, v := range snap.Credentials {
		subject, scopes, ok := strings.Cut(k, "|")
		if !ok || !v.Valid() {
			continue
		}
		f.credentials[Key{Subject: subject, Scopes: scopes}] = v
	}
	return nil
}

// NewFileStore creates a store persisting credentials at path, a corrupt file starts an empty cache.
func NewFileStore(path string) *FileStore {
	ret := &FileStore{path: path, credentials: map[Key]*Credential{}}
	_ = ret.load()
	return ret
}

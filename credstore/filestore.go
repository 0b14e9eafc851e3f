package credstore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

const tokenFileName = "token"

var _ Repo = (*FileStore)(nil)

// FileStore keeps the token in a single file under a data directory. The
// file is written 0600; no expiry is tracked client-side, stale tokens are
// detected only by the backend rejecting them.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. The directory is created
// lazily on first Save.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

func (fs *FileStore) path() string {
	return filepath.Join(fs.dir, tokenFileName)
}

func (fs *FileStore) Save(token string) {
	if err := os.MkdirAll(fs.dir, 0o700); err != nil {
		log.Warn().Err(err).Str("dir", fs.dir).Msg("credstore: cannot create data dir")
		return
	}
	if err := os.WriteFile(fs.path(), []byte(token), 0o600); err != nil {
		log.Warn().Err(err).Msg("credstore: cannot write token file")
	}
}

func (fs *FileStore) Load() (string, bool) {
	data, err := os.ReadFile(fs.path())
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

func (fs *FileStore) Clear() {
	if err := os.Remove(fs.path()); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("credstore: cannot remove token file")
	}
}

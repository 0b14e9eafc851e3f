package repofake

import (
	"sync"

	"github.com/hemahemapathi/health-management-client/credstore"
)

var _ credstore.Repo = (*FakeCredRepo)(nil)

// FakeCredRepo is an in-memory credential store for tests.
type FakeCredRepo struct {
	lock  sync.RWMutex
	token string
	set   bool
}

func NewFakeCredRepo() *FakeCredRepo {
	return &FakeCredRepo{}
}

func (cr *FakeCredRepo) Save(token string) {
	cr.lock.Lock()
	defer cr.lock.Unlock()
	cr.token = token
	cr.set = true
}

func (cr *FakeCredRepo) Load() (string, bool) {
	cr.lock.RLock()
	defer cr.lock.RUnlock()
	return cr.token, cr.set
}

func (cr *FakeCredRepo) Clear() {
	cr.lock.Lock()
	defer cr.lock.Unlock()
	cr.token = ""
	cr.set = false
}

/*
Package wallet manages the open SDK wallets. A wallet name can be open only
once at the time and the count of the open wallets is limited by MaxOpen, which
keeps the OS level file handles of the SDK under control.

	Open --close--> Closed

Closing releases the handle, so a closed wallet is not addressable anymore.
*/
package wallet

import (
	"sync"
	"time"

	"github.com/findy-network/findy-vcx/agent/async"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
	"github.com/findy-network/findy-vcx/agent/sdk"
	"github.com/golang/glog"
)

// DefaultMaxOpen is used when the service is created with zero max.
const DefaultMaxOpen = 10

type State int

const (
	Open State = 1 + iota
	Closed
)

// Wallet is an open SDK wallet.
type Wallet struct {
	l sync.Mutex

	Name   string
	native int
	state  State
	ts     int64 // last access
	sdk    sdk.SDK
}

// Release closes the SDK wallet if it's still open. It's called by the
// registry's ReleaseAll.
func (w *Wallet) Release() error {
	w.l.Lock()
	defer w.l.Unlock()
	return w.close()
}

func (w *Wallet) close() error {
	if w.state != Open {
		return nil
	}
	f := async.NewFuture(w.sdk.CloseWallet(w.native))
	if err := f.Check(errcode.Wallet); err != nil {
		return err
	}
	glog.V(1).Infoln("wallet", w.Name, "closed")
	w.state = Closed
	return nil
}

// Service keeps track of the open wallets.
type Service struct {
	sdk     sdk.SDK
	maxOpen int

	l     sync.Mutex
	names map[string]struct{} // reserved and open names
	reg   *registry.Registry[*Wallet]
}

func NewService(s sdk.SDK, maxOpen int) *Service {
	if maxOpen <= 0 {
		maxOpen = DefaultMaxOpen
	}
	return &Service{
		sdk:     s,
		maxOpen: maxOpen,
		names:   make(map[string]struct{}, maxOpen),
		reg:     registry.New[*Wallet](errcode.Wallet, errcode.InvalidWalletHandle),
	}
}

// Create creates a new SDK wallet. An existing wallet is not an error, it's
// reported with exists.
func (s *Service) Create(name, key string) (exists bool, err error) {
	if name == "" || key == "" {
		return false, errcode.Wallet.New(errcode.InvalidOption, "wallet name and key are required")
	}
	f := async.NewFuture(s.sdk.CreateWallet(name, key))
	code, err := f.Err()
	switch {
	case err == nil:
		glog.V(1).Infoln("wallet", name, "created")
		return false, nil
	case code == sdk.WalletAlreadyExistsError:
		glog.V(3).Infoln("wallet", name, "exists")
		return true, nil
	}
	return false, errcode.Wallet.Common(code, err.Error())
}

// Open opens the wallet and registers it. The name is reserved before the SDK
// call, so of concurrent opens of the same name only one proceeds and the
// others fail with DuplicateWallet.
func (s *Service) Open(name, key string) (registry.Handle, error) {
	if name == "" || key == "" {
		return 0, errcode.Wallet.New(errcode.InvalidOption, "wallet name and key are required")
	}
	if err := s.reserve(name); err != nil {
		return 0, err
	}

	f := async.NewFuture(s.sdk.OpenWallet(name, key))
	if err := f.Check(errcode.Wallet); err != nil {
		s.unreserve(name)
		return 0, err
	}

	w := &Wallet{
		Name:   name,
		native: f.Int(),
		state:  Open,
		ts:     time.Now().UnixNano(),
		sdk:    s.sdk,
	}
	h := s.reg.Insert(w)
	glog.V(1).Infoln("wallet", name, "opened, handle:", h)
	return h, nil
}

func (s *Service) reserve(name string) error {
	s.l.Lock()
	defer s.l.Unlock()

	if _, taken := s.names[name]; taken {
		return errcode.Wallet.New(errcode.DuplicateWallet, "wallet %s", name)
	}
	if len(s.names) >= s.maxOpen {
		return errcode.Wallet.New(errcode.TooManyOpenWallets, "max %d", s.maxOpen)
	}
	s.names[name] = struct{}{}
	return nil
}

func (s *Service) unreserve(name string) {
	s.l.Lock()
	defer s.l.Unlock()
	delete(s.names, name)
}

// Close closes the SDK wallet and releases the handle and the name. If the SDK
// fails the wallet stays open.
func (s *Service) Close(h registry.Handle) error {
	w, err := s.reg.Get(h)
	if err != nil {
		return err
	}
	w.l.Lock()
	defer w.l.Unlock()

	if w.state != Open {
		return errcode.Wallet.New(errcode.InvalidWalletHandle, "handle %d closed", h)
	}
	if err := w.close(); err != nil {
		return err
	}
	if err := s.reg.Release(h); err != nil {
		glog.Warningln("wallet", w.Name, "release:", err)
	}
	s.unreserve(w.Name)
	return nil
}

// Native returns the SDK's wallet handle for the other state machines.
func (s *Service) Native(h registry.Handle) (int, error) {
	w, err := s.reg.Get(h)
	if err != nil {
		return 0, err
	}
	w.l.Lock()
	defer w.l.Unlock()

	if w.state != Open {
		return 0, errcode.Wallet.New(errcode.InvalidWalletHandle, "handle %d closed", h)
	}
	w.ts = time.Now().UnixNano()
	return w.native, nil
}

// Idle returns the names of the wallets which are not used during the
// duration.
func (s *Service) Idle(d time.Duration) []string {
	limit := time.Now().Add(-d).UnixNano()
	names := make([]string, 0)
	for _, h := range s.reg.Handles() {
		w, err := s.reg.Get(h)
		if err != nil {
			continue
		}
		w.l.Lock()
		if w.state == Open && w.ts < limit {
			names = append(names, w.Name)
		}
		w.l.Unlock()
	}
	return names
}

// ReleaseAll closes every open wallet and frees all the names.
func (s *Service) ReleaseAll() error {
	err := s.reg.ReleaseAll()
	s.l.Lock()
	s.names = make(map[string]struct{}, s.maxOpen)
	s.l.Unlock()
	return err
}

// Len returns the count of the open wallets.
func (s *Service) Len() int {
	return s.reg.Len()
}

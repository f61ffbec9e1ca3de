/*
Package connection implements the connection object. It has the same shape as
the other objects:

	Built --connect--> Committed

Connect creates the pairwise DID to the wallet and produces the invitation
which is handed to the other party. The exchange protocol itself is not part of
this package.
*/
package connection

import (
	"encoding/json"
	"sync"

	"github.com/findy-network/findy-vcx/agent/async"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
	"github.com/findy-network/findy-vcx/agent/sdk"
	"github.com/golang/glog"
	"github.com/google/uuid"
)

type State int

const (
	Built State = 1 + iota
	Committed
)

type Connection struct {
	l sync.Mutex

	SourceID   string      `json:"source_id"`
	Label      string      `json:"label,omitempty"`
	MyDID      string      `json:"my_did,omitempty"`
	MyVerkey   string      `json:"my_verkey,omitempty"`
	State      State       `json:"state"`
	Invitation *Invitation `json:"invite_details,omitempty"`
}

type Service struct {
	sdk sdk.SDK
	reg *registry.Registry[*Connection]
}

func NewService(s sdk.SDK) *Service {
	return &Service{
		sdk: s,
		reg: registry.New[*Connection](errcode.Connection, errcode.InvalidConnectionHandle),
	}
}

func (s *Service) Create(sourceID, label string) registry.Handle {
	if label == "" {
		label = sourceID
	}
	h := s.reg.Insert(&Connection{SourceID: sourceID, Label: label, State: Built})
	glog.V(3).Infoln("connection", sourceID, "created, handle:", h)
	return h
}

// Connect creates the pairwise DID and the invitation. A connected object is
// not changed and its invitation is returned.
func (s *Service) Connect(h registry.Handle, wallet int, endpoint string) (*Invitation, error) {
	c, err := s.reg.Get(h)
	if err != nil {
		return nil, err
	}
	c.l.Lock()
	defer c.l.Unlock()

	if c.State == Committed {
		return c.Invitation, nil
	}

	f := async.NewFuture(s.sdk.CreateDID(wallet, ""))
	if err := f.Check(errcode.Connection); err != nil {
		return nil, err
	}
	c.MyDID, c.MyVerkey = f.Str1(), f.Str2()
	c.Invitation = &Invitation{
		Type:            InvitationType,
		ID:              uuid.New().String(),
		Label:           c.Label,
		RecipientKeys:   []string{c.MyVerkey},
		ServiceEndpoint: endpoint,
	}
	c.State = Committed
	glog.V(1).Infoln("connection", c.SourceID, "ready, DID:", c.MyDID)
	return c.Invitation, nil
}

func (s *Service) State(h registry.Handle) (State, error) {
	c, err := s.reg.Get(h)
	if err != nil {
		return 0, err
	}
	c.l.Lock()
	defer c.l.Unlock()
	return c.State, nil
}

// InviteDetails returns the invitation JSON. It fails with ConnectionNotReady
// before Connect.
func (s *Service) InviteDetails(h registry.Handle) (string, error) {
	c, err := s.reg.Get(h)
	if err != nil {
		return "", err
	}
	c.l.Lock()
	defer c.l.Unlock()

	if c.State != Committed {
		return "", errcode.Connection.New(errcode.ConnectionNotReady, "connection %s", c.SourceID)
	}
	b, err := json.Marshal(c.Invitation)
	if err != nil {
		return "", errcode.Connection.New(errcode.InvalidJSON, "%v", err)
	}
	return string(b), nil
}

func (s *Service) Serialize(h registry.Handle) (string, error) {
	c, err := s.reg.Get(h)
	if err != nil {
		return "", err
	}
	c.l.Lock()
	defer c.l.Unlock()

	b, err := json.Marshal(struct {
		Version string      `json:"version"`
		Data    *Connection `json:"data"`
	}{"1.0", c})
	if err != nil {
		return "", errcode.Connection.New(errcode.InvalidJSON, "%v", err)
	}
	return string(b), nil
}

func (s *Service) Release(h registry.Handle) error {
	return s.reg.Release(h)
}

func (s *Service) ReleaseAll() error {
	return s.reg.ReleaseAll()
}

func (s *Service) Len() int {
	return s.reg.Len()
}

// Check returns the invalid handle error if the handle is not live.
func (s *Service) Check(h registry.Handle) error {
	_, err := s.reg.Get(h)
	return err
}

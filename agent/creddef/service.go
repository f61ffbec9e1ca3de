package creddef

import (
	"sync"

	"github.com/findy-network/findy-vcx/agent/async"
	"github.com/findy-network/findy-vcx/agent/errcode"
	"github.com/findy-network/findy-vcx/agent/registry"
	"github.com/findy-network/findy-vcx/agent/sdk"
	"github.com/findy-network/findy-vcx/agent/store"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// Service owns the cred def registry. The duplicate index is checked from the
// in-process index first and then from the persistent one, which may be nil.
type Service struct {
	sdk   sdk.SDK
	local *store.Memory
	store store.Index
	reg   *registry.Registry[*CredDef]

	l       sync.Mutex
	pending map[string]*CredDef // issuer and schema pairs being committed
}

func NewService(s sdk.SDK, idx store.Index) *Service {
	return &Service{
		sdk:     s,
		local:   store.NewMemory(),
		store:   idx,
		reg:     registry.New[*CredDef](errcode.CredDef, errcode.InvalidCredDefHandle),
		pending: make(map[string]*CredDef),
	}
}

// Create registers a cred def in Built state. Nothing is sent to the SDK yet.
func (s *Service) Create(sourceID, issuerDID, schemaID, tag string) (registry.Handle, error) {
	if schemaID == "" {
		return 0, errcode.CredDef.New(errcode.InvalidOption, "schema ID is required")
	}
	if tag == "" {
		tag = "tag1"
	}
	cd := &CredDef{
		SourceID:  sourceID,
		SchemaID:  schemaID,
		Tag:       tag,
		IssuerDID: issuerDID,
		State:     Built,
	}
	h := s.reg.Insert(cd)
	glog.V(3).Infoln("cred def", sourceID, "built for schema", schemaID, "handle:", h)
	return h, nil
}

// Commit creates the cred def to the wallet and writes it to the ledger. If
// the issuer already has a cred def for the schema the object goes to
// AlreadyCreated and CredDefAlreadyCreated is returned. A committed object
// returns its ID without SDK calls.
//
// The issuer and schema pair is reserved for the duration of the commit. A
// concurrent commit of another object for the same pair fails with
// CredDefAlreadyCreated and stays in Built.
func (s *Service) Commit(h registry.Handle, wallet int) (id string, err error) {
	defer err2.Handle(&err, "commit cred def")

	cd := try.To1(s.reg.Get(h))
	cd.l.Lock()
	defer cd.l.Unlock()

	switch cd.State {
	case Committed:
		glog.V(3).Infoln("cred def", cd.ID, "already committed")
		return cd.ID, nil
	case AlreadyCreated:
		return "", s.alreadyCreated(cd)
	}

	try.To(s.reserve(cd))
	defer s.unreserve(cd)

	try.To(s.commit(cd, wallet))
	s.record(cd)
	return cd.ID, nil
}

// commit runs the SDK calls. It must be called with the cred def lock held
// and the pair reserved.
func (s *Service) commit(cd *CredDef, wallet int) (err error) {
	defer err2.Handle(&err)

	if !cd.Created {
		sf := async.NewFuture(s.sdk.ReadSchema(cd.IssuerDID, cd.SchemaID))
		try.To(sf.Check(errcode.CredDef))

		cf := async.NewFuture(s.sdk.CreateCredDef(wallet, cd.IssuerDID, sf.Str2(), cd.Tag))
		if code, e := cf.Err(); e != nil {
			if code == sdk.AnoncredsCredDefAlreadyExistsError {
				cd.State = AlreadyCreated
				return s.alreadyCreated(cd)
			}
			return errcode.CredDef.Common(code, e.Error())
		}
		cd.ID = cf.Str1()
		cd.JSON = cf.Str2()
		cd.Created = true
		glog.V(3).Infoln("cred def", cd.ID, "created to wallet")
	} else if s.onLedger(cd) {
		// the earlier write reached the ledger even if we didn't get the result
		glog.V(1).Infoln("cred def", cd.ID, "found from ledger")
		s.committed(cd)
		return nil
	}

	wf := async.NewFuture(s.sdk.WriteCredDef(wallet, cd.IssuerDID, cd.JSON))
	if code, e := wf.Err(); e != nil {
		if code == sdk.LedgerInvalidTransactionError && s.onLedger(cd) {
			glog.V(1).Infoln("cred def", cd.ID, "rejected, ledger has it")
			cd.State = AlreadyCreated
			cd.Created = false
			return s.alreadyCreated(cd)
		}
		return errcode.CredDef.Common(code, e.Error())
	}
	s.committed(cd)
	return nil
}

func (s *Service) committed(cd *CredDef) {
	cd.Created = false
	cd.State = Committed
	glog.V(1).Infoln("cred def", cd.ID, "committed")
}

// onLedger reads the cred def from the ledger. Errors other than not found
// are only logged, and the answer is false for them.
func (s *Service) onLedger(cd *CredDef) bool {
	f := async.NewFuture(s.sdk.ReadCredDef(cd.IssuerDID, cd.ID))
	code, err := f.Err()
	if err == nil {
		return true
	}
	if code != sdk.LedgerNotFoundError {
		glog.Warningln("cred def", cd.ID, "ledger read:", err)
	}
	return false
}

func pairKey(issuerDID, schemaID string) string {
	return issuerDID + "|" + schemaID
}

// reserve claims the issuer and schema pair for cd. A pair in the indexes
// moves cd to AlreadyCreated.
func (s *Service) reserve(cd *CredDef) error {
	s.l.Lock()
	defer s.l.Unlock()

	if existing, found := s.lookupIndex(cd.IssuerDID, cd.SchemaID); found {
		glog.V(1).Infoln("cred def for", cd.SchemaID, "exists:", existing)
		cd.ID = existing
		cd.State = AlreadyCreated
		cd.Created = false
		return s.alreadyCreated(cd)
	}
	key := pairKey(cd.IssuerDID, cd.SchemaID)
	if owner, ok := s.pending[key]; ok && owner != cd {
		glog.V(1).Infoln("cred def for", cd.SchemaID, "is being committed")
		return s.alreadyCreated(cd)
	}
	s.pending[key] = cd
	return nil
}

func (s *Service) unreserve(cd *CredDef) {
	s.l.Lock()
	defer s.l.Unlock()

	key := pairKey(cd.IssuerDID, cd.SchemaID)
	if s.pending[key] == cd {
		delete(s.pending, key)
	}
}

func (s *Service) alreadyCreated(cd *CredDef) error {
	return errcode.CredDef.New(errcode.CredDefAlreadyCreated,
		"issuer %s schema %s", cd.IssuerDID, cd.SchemaID)
}

func (s *Service) lookupIndex(issuerDID, schemaID string) (string, bool) {
	if id, found, _ := s.local.CredDef(issuerDID, schemaID); found {
		return id, true
	}
	if s.store == nil {
		return "", false
	}
	id, found, err := s.store.CredDef(issuerDID, schemaID)
	if err != nil {
		glog.Warningln("cred def index:", err)
		return "", false
	}
	return id, found
}

// record must be called with the cred def lock held and the pair reserved. The
// persistent index is best effort, the in-process index always has the entry.
func (s *Service) record(cd *CredDef) {
	if err := s.local.AddCredDef(cd.IssuerDID, cd.SchemaID, cd.ID); err != nil {
		glog.Errorln("cred def", cd.ID, "index:", err)
	}
	if s.store == nil {
		return
	}
	data, err := cd.serialize()
	if err == nil {
		err = s.store.AddCredDef(cd.IssuerDID, cd.SchemaID, cd.ID)
	}
	if err == nil {
		err = s.store.PutObject(store.KindCredDef, cd.ID, []byte(data))
	}
	if err != nil {
		glog.Warningln("cred def", cd.ID, "store:", err)
	}
}

func (s *Service) get(h registry.Handle) (*CredDef, func(), error) {
	cd, err := s.reg.Get(h)
	if err != nil {
		return nil, nil, err
	}
	cd.l.Lock()
	return cd, cd.l.Unlock, nil
}

// ID returns the cred def ID. It fails with CredDefNotCommitted if the object
// is not committed.
func (s *Service) ID(h registry.Handle) (string, error) {
	cd, unlock, err := s.get(h)
	if err != nil {
		return "", err
	}
	defer unlock()
	if cd.State != Committed {
		return "", errcode.CredDef.New(errcode.CredDefNotCommitted, "cred def %s", cd.SourceID)
	}
	return cd.ID, nil
}

func (s *Service) State(h registry.Handle) (State, error) {
	cd, unlock, err := s.get(h)
	if err != nil {
		return 0, err
	}
	defer unlock()
	return cd.State, nil
}

// Data returns the cred def JSON of a committed object.
func (s *Service) Data(h registry.Handle) (string, error) {
	cd, unlock, err := s.get(h)
	if err != nil {
		return "", err
	}
	defer unlock()
	if cd.State != Committed {
		return "", errcode.CredDef.New(errcode.CredDefNotCommitted, "cred def %s", cd.SourceID)
	}
	return cd.JSON, nil
}

func (s *Service) Serialize(h registry.Handle) (string, error) {
	cd, unlock, err := s.get(h)
	if err != nil {
		return "", err
	}
	defer unlock()
	return cd.serialize()
}

// Deserialize registers a cred def from the output of Serialize. A committed
// one is added to the in-process duplicate index.
func (s *Service) Deserialize(data string) (registry.Handle, error) {
	cd, err := deserialize(data)
	if err != nil {
		return 0, err
	}
	if cd.State == Committed {
		if err := s.local.AddCredDef(cd.IssuerDID, cd.SchemaID, cd.ID); err != nil {
			return 0, err
		}
	}
	return s.reg.Insert(cd), nil
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

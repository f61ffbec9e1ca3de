/*
Package store is the local persistence of committed objects. It keeps the
credential definition index, which is used to detect a second cred def for the
same issuer and schema before anything is submitted to the ledger, and JSON
snapshots of committed schemas and cred defs.

The file store is an encrypted bolt DB managed by findy-common-go. Memory is a
map based implementation with the same interface for the cases where no file
is configured.
*/
package store

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/findy-network/findy-common-go/crypto"
	"github.com/findy-network/findy-common-go/crypto/db"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	bucketCredDefIndex byte = 0 + iota
	bucketSchema
	bucketCredDef
)

var buckets = [][]byte{
	{bucketCredDefIndex},
	{bucketSchema},
	{bucketCredDef},
}

// Kind selects the snapshot bucket.
type Kind byte

const (
	KindSchema  = Kind(bucketSchema)
	KindCredDef = Kind(bucketCredDef)
)

// Index is the interface the domain packages use.
type Index interface {
	AddCredDef(issuerDID, schemaID, credDefID string) error
	CredDef(issuerDID, schemaID string) (credDefID string, found bool, err error)
	PutObject(k Kind, id string, data []byte) error
	Object(k Kind, id string) (data []byte, found bool, err error)
}

type Config struct {
	Key      string // hex encoded, empty means no encryption
	FileName string
	FilePath string
}

type Store struct {
	l sync.RWMutex

	conf   Config
	db     db.Handle
	cipher *crypto.Cipher
}

var _ Index = (*Store)(nil)

func New(config Config) *Store {
	return &Store{conf: config}
}

func (s *Store) Init() (err error) {
	defer err2.Handle(&err, "store open")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db != nil {
		glog.Warningf("skipping store initialization for %s, already open", s.conf.FileName)
		return nil
	}
	if s.conf.FileName == "" {
		return fmt.Errorf("file name is empty")
	}

	if s.conf.Key != "" {
		k := try.To1(hex.DecodeString(s.conf.Key))
		s.cipher = crypto.NewCipher(k)
	}

	path := "."
	if s.conf.FilePath != "" {
		path = s.conf.FilePath
	}
	filename := filepath.Join(path, s.conf.FileName+".bolt")

	// this will not open the file handle to db, just initializes it
	s.db = db.New(db.Cfg{
		Filename:   filename,
		Buckets:    buckets,
		BackupName: filename + "_backup",
	})
	glog.V(1).Infoln("store initialized:", filename)
	return nil
}

func (s *Store) Close() (err error) {
	defer err2.Handle(&err, "store close")

	s.l.Lock()
	defer s.l.Unlock()

	if s.db == nil {
		glog.Warningf("skipping store close for %s, already closed", s.conf.FileName)
		return nil
	}

	try.To(s.db.Close())
	s.db = nil
	return nil
}

func indexKey(issuerDID, schemaID string) []byte {
	return []byte(issuerDID + "|" + schemaID)
}

func (s *Store) AddCredDef(issuerDID, schemaID, credDefID string) error {
	return s.addData(bucketCredDefIndex, indexKey(issuerDID, schemaID), []byte(credDefID))
}

func (s *Store) CredDef(issuerDID, schemaID string) (credDefID string, found bool, err error) {
	v, found, err := s.getData(bucketCredDefIndex, indexKey(issuerDID, schemaID))
	return string(v), found, err
}

func (s *Store) PutObject(k Kind, id string, data []byte) error {
	return s.addData(byte(k), []byte(id), data)
}

func (s *Store) Object(k Kind, id string) ([]byte, bool, error) {
	return s.getData(byte(k), []byte(id))
}

// Objects returns all the snapshots of the kind.
func (s *Store) Objects(k Kind) (res [][]byte, err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	if err = s.assertOpen(); err != nil {
		return nil, err
	}
	return s.db.GetAllValuesFromBucket([]byte{byte(k)}, s.decrypt, clone)
}

func (s *Store) assertOpen() error {
	if s.db == nil {
		return fmt.Errorf("store %s is not initialized", s.conf.FileName)
	}
	return nil
}

func (s *Store) addData(bucketID byte, key, value []byte) (err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	if err = s.assertOpen(); err != nil {
		return err
	}
	return s.db.AddKeyValueToBucket([]byte{bucketID},
		&db.Data{
			Data: value,
			Read: s.encrypt,
		},
		&db.Data{
			Data: key,
			Read: s.hash,
		},
	)
}

func (s *Store) getData(bucketID byte, key []byte) (value []byte, found bool, err error) {
	s.l.RLock()
	defer s.l.RUnlock()

	if err = s.assertOpen(); err != nil {
		return nil, false, err
	}
	data := &db.Data{
		Write: s.decrypt,
		Use: func(d []byte) interface{} {
			value = d
			return nil
		},
	}
	found, err = s.db.GetKeyValueFromBucket([]byte{bucketID},
		&db.Data{
			Data: key,
			Read: s.hash,
		},
		data)

	return value, found, err
}

func clone(value []byte) []byte {
	return append(value[:0:0], value...)
}

// hash makes the cryptographic hash of the key when the store is encrypted, so
// DIDs and IDs are not stored as plain text.
func (s *Store) hash(key []byte) (k []byte) {
	if s.cipher != nil {
		h := md5.Sum(key)
		return h[:]
	}
	return clone(key)
}

func (s *Store) encrypt(value []byte) (k []byte) {
	if s.cipher != nil {
		return s.cipher.TryEncrypt(value)
	}
	return clone(value)
}

func (s *Store) decrypt(value []byte) (k []byte) {
	if s.cipher != nil {
		return s.cipher.TryDecrypt(value)
	}
	return clone(value)
}

package filedb

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/findy-network/credat/agent/storage/api"
	"github.com/findy-network/credat/core"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	DirPerm  fs.FileMode = 0o700
	FilePerm fs.FileMode = 0o600
)

var hints = map[string]string{
	api.AgentRecord:      "credat init",
	api.OwnerRecord:      "credat delegate",
	api.DelegationRecord: "credat delegate",
}

// Store is a file based trust store. All records live as JSON files in one
// directory which only the owner can access.
type Store struct {
	dir string
}

var _ api.TrustStore = (*Store)(nil)

// New returns a store handle rooted at dir. Nothing is created before the
// first save.
func New(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) Path(record string) string {
	return filepath.Join(s.dir, record+".json")
}

// EnsureRootDirectory creates the root with owner only access. An existing
// directory with looser bits is tightened.
func (s *Store) EnsureRootDirectory() (err error) {
	defer err2.Handle(&err, "ensure trust store dir")

	info, statErr := os.Stat(s.dir)
	if statErr == nil && info.Mode().Perm() == DirPerm {
		return nil
	}
	if statErr == nil && info.Mode().Perm()&^DirPerm != 0 {
		glog.Warningf("trust store dir %s has mode %04o, tightening",
			s.dir, info.Mode().Perm())
	}
	try.To(os.MkdirAll(s.dir, DirPerm))
	try.To(os.Chmod(s.dir, DirPerm))
	return nil
}

func (s *Store) AgentExists() bool {
	return s.exists(api.AgentRecord)
}

func (s *Store) OwnerExists() bool {
	return s.exists(api.OwnerRecord)
}

func (s *Store) DelegationExists() bool {
	return s.exists(api.DelegationRecord)
}

func (s *Store) SaveAgent(a core.Agent) error {
	return s.save(api.AgentRecord, toAgentJSON(a))
}

func (s *Store) SaveOwner(o core.Owner) error {
	return s.save(api.OwnerRecord, toOwnerJSON(o))
}

func (s *Store) SaveDelegation(d core.Delegation) error {
	d.Claims.Constraints = d.Claims.Constraints.Normalized()
	return s.save(api.DelegationRecord, d)
}

func (s *Store) LoadAgent() (*core.Agent, error) {
	var a agentJSON
	if err := s.load(api.AgentRecord, &a); err != nil {
		return nil, err
	}
	return a.agent()
}

func (s *Store) LoadOwner() (*core.Owner, error) {
	var o ownerJSON
	if err := s.load(api.OwnerRecord, &o); err != nil {
		return nil, err
	}
	return o.owner()
}

func (s *Store) LoadDelegation() (*core.Delegation, error) {
	var d core.Delegation
	if err := s.load(api.DelegationRecord, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *Store) exists(record string) bool {
	_, err := os.Stat(s.Path(record))
	return err == nil
}

// save writes the record with owner only access. The mode is set on the
// open file before any bytes land, which also covers a file that existed
// with looser bits.
func (s *Store) save(record string, v any) (err error) {
	defer err2.Handle(&err, "save %s", record)

	try.To(s.EnsureRootDirectory())

	data := try.To1(json.MarshalIndent(v, "", "\t"))
	name := s.Path(record)
	f := try.To1(os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePerm))
	defer f.Close()

	try.To(f.Chmod(FilePerm))
	try.To1(f.Write(data))
	try.To(f.Sync())

	glog.V(5).Infoln("saved", name)
	return nil
}

func (s *Store) load(record string, v any) error {
	name := s.Path(record)
	data, err := os.ReadFile(name)
	if errors.Is(err, fs.ErrNotExist) {
		return &core.NotFoundError{Record: record, Hint: hints[record]}
	} else if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return err
	}
	glog.V(5).Infoln("loaded", name)
	return nil
}

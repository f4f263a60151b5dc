package cfg

import (
	"os"
	"path/filepath"

	"github.com/findy-network/credat/agent/storage/filedb"
	"github.com/golang/glog"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

// DirName is the hidden trust store directory created under the working
// directory.
const DirName = ".credat"

// StoreConfig tells where the trust store lives. Empty Dir means the hidden
// directory under the current working directory at the time of Open.
type StoreConfig struct {
	Dir string
}

// Root resolves the trust store directory. It's computed at call time, not
// cached.
func (c StoreConfig) Root() (dir string, err error) {
	defer err2.Handle(&err, "trust store root")

	if c.Dir != "" {
		return filepath.Clean(c.Dir), nil
	}
	cwd := try.To1(os.Getwd())
	return filepath.Join(cwd, DirName), nil
}

// Open returns a store handle for one flow invocation.
func (c StoreConfig) Open() (s *filedb.Store, err error) {
	defer err2.Handle(&err)

	dir := try.To1(c.Root())
	glog.V(3).Infoln("trust store:", dir)
	return filedb.New(dir), nil
}

package cfg

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lainio/err2/assert"
	"github.com/lainio/err2/try"
)

func TestStoreConfig_Root(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	cwd := try.To1(os.Getwd())

	dir := try.To1(StoreConfig{}.Root())
	assert.Equal(dir, filepath.Join(cwd, DirName))

	dir = try.To1(StoreConfig{Dir: "some/../other/"}.Root())
	assert.Equal(dir, "other")
}

func TestStoreConfig_Open(t *testing.T) {
	assert.PushTester(t)
	defer assert.PopTester()

	tmp := t.TempDir()
	s := try.To1(StoreConfig{Dir: tmp}.Open())
	assert.Equal(s.Dir(), tmp)
	assert.That(!s.AgentExists())
}

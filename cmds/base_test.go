package cmds

import (
	"bytes"
	"os"
	"testing"

	"github.com/fatih/color"
	"github.com/findy-network/credat/agent/storage/filedb"
	"github.com/findy-network/credat/agent/sdk"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func TestCmd_Validate(t *testing.T) {
	assert.ErrorIs(t, Cmd{}.Validate(), ErrNoStore)
	assert.ErrorIs(t, Cmd{Store: filedb.New(t.TempDir())}.Validate(), ErrNoSDK)
	assert.NoError(t, Cmd{Store: filedb.New(t.TempDir()), SDK: sdk.New(nil)}.Validate())
}

func TestCmd_Context(t *testing.T) {
	assert.NotNil(t, Cmd{}.Context())
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 3))
	assert.Equal(t, "ab...", Truncate("abc", 2))
	assert.Equal(t, "", Truncate("", 5))
}

func TestOutputHelpers(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Agent")
	Label(&buf, "DID", "did:web:acme.test")
	Success(&buf, "done")
	Fail(&buf, "failed")
	Step(&buf, 1, "first")

	out := buf.String()
	assert.Contains(t, out, "  Agent\n  ───────\n")
	assert.Contains(t, out, "  DID: did:web:acme.test\n")
	assert.Contains(t, out, "  ✓ done\n")
	assert.Contains(t, out, "  ✗ failed\n")
	assert.Contains(t, out, "  [1] first\n")
}

func TestFprintln_nilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		Fprintln(nil, "x")
		Fprintf(nil, "%s", "x")
		Header(nil, "x")
	})
}

package publisher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/seqfile/pkg/config"
	"github.com/arthur-debert/seqfile/pkg/errors"
	"github.com/arthur-debert/seqfile/pkg/filesystem"
	"github.com/arthur-debert/seqfile/pkg/policy"
	"github.com/arthur-debert/seqfile/pkg/publisher"
	"github.com/arthur-debert/seqfile/pkg/testutil"
	"github.com/arthur-debert/seqfile/pkg/types"
)

func newEndpoint(t *testing.T) *config.Endpoint {
	t.Helper()
	ep, err := config.NewEndpoint(t.TempDir())
	require.NoError(t, err)
	return ep
}

func seed(t *testing.T, ep *config.Endpoint, name, content string) string {
	t.Helper()
	path := filepath.Join(ep.Directory, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestPublishDirect(t *testing.T) {
	ep := newEndpoint(t)
	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("payload")})
	require.NoError(t, err)

	assert.Equal(t, types.Published, res.Outcome)
	assert.Equal(t, filepath.Join(ep.Directory, "a.txt"), res.FileNameProduced)
	testutil.RequireFileContent(t, fsys, res.FileNameProduced, "payload")
}

func TestPublishTempRoundTrip(t *testing.T) {
	ep := newEndpoint(t)
	ep.TempPrefix = "inprogress."
	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("exactly X")})
	require.NoError(t, err)

	testutil.RequireFileContent(t, fsys, res.FileNameProduced, "exactly X")
	testutil.RequireAbsent(t, fsys, filepath.Join(ep.Directory, "inprogress.a.txt"))
}

func TestPublishAbortedMidWriteLeavesTargetUntouched(t *testing.T) {
	// Simulates a crash during the temp write: the target name must
	// never show a half-written payload.
	ep := newEndpoint(t)
	ep.TempPrefix = "inprogress."
	seed(t, ep, "a.txt", "old")

	// Lazy mode delays the conflict checks, so the temp write is the
	// first mutating step of the call.
	ep.EagerDeleteTargetFile = false
	fsys := testutil.NewFaultFS(filesystem.NewOS())
	fsys.WriteErr[filepath.Join(ep.Directory, "inprogress.a.txt")] = fmt.Errorf("disk full")

	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	_, err = pub.Publish(types.Request{FileName: "a.txt", Body: []byte("new")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "old")
}

func TestScenarioFailPolicy(t *testing.T) {
	ep := newEndpoint(t)
	ep.FileExist = policy.Fail
	seed(t, ep, "a.txt", "old content")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("new")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetExists))
	assert.Equal(t, types.Failed, res.Outcome)
	assert.Equal(t, "failed", res.Outcome.String())

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "old content")
}

func TestScenarioOverrideEagerTemp(t *testing.T) {
	ep := newEndpoint(t)
	ep.FileExist = policy.Override
	ep.EagerDeleteTargetFile = true
	ep.TempPrefix = "inprogress."
	seed(t, ep, "a.txt", "old content")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("new payload")})
	require.NoError(t, err)
	assert.Equal(t, types.Published, res.Outcome)

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "new payload")
	assert.Equal(t, []string{"a.txt"}, listDir(t, ep.Directory), "no temp file remains")
}

func TestScenarioMoveExisting(t *testing.T) {
	ep := newEndpoint(t)
	ep.FileExist = policy.Move
	ep.MoveExisting = "${file:parent}/archive/${file:onlyname}"
	seed(t, ep, "a.txt", "old content")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("new payload")})
	require.NoError(t, err)
	assert.Equal(t, types.Published, res.Outcome)

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "archive", "a.txt"), "old content")
	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "new payload")
}

// Move relocates the old target in lazy mode too: the conflict check
// runs after the temp write, right before the rename.
func TestMoveExistingLazy(t *testing.T) {
	ep := newEndpoint(t)
	ep.FileExist = policy.Move
	ep.MoveExisting = "${file:parent}/archive/${file:onlyname}"
	ep.TempPrefix = "inprogress."
	ep.EagerDeleteTargetFile = false
	seed(t, ep, "a.txt", "old content")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("new payload")})
	require.NoError(t, err)
	assert.Equal(t, types.Published, res.Outcome)

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "archive", "a.txt"), "old content")
	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "new payload")
	testutil.RequireAbsent(t, fsys, filepath.Join(ep.Directory, "inprogress.a.txt"))
}

func TestScenarioDoneFile(t *testing.T) {
	ep := newEndpoint(t)
	ep.DoneFileName = "${file:name}.done"

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("payload")})
	require.NoError(t, err)
	assert.Equal(t, types.Published, res.Outcome)

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt.done"), "")
}

func TestScenarioPredecessorBlocks(t *testing.T) {
	ep := newEndpoint(t)
	seed(t, ep, "b.txt", "predecessor")
	before := listDir(t, ep.Directory)

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	_, err = pub.Publish(types.Request{
		FileName:         "a.txt",
		Body:             []byte("payload"),
		PreviousFileName: "b.txt",
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSequenceViolation))
	assert.Contains(t, err.Error(), "File still exists: b.txt")

	assert.Equal(t, before, listDir(t, ep.Directory), "filesystem untouched")
	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "b.txt"), "predecessor")
}

func TestPredecessorClearedProceeds(t *testing.T) {
	ep := newEndpoint(t)
	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{
		FileName:         "a.txt",
		Body:             []byte("payload"),
		PreviousFileName: "b.txt",
	})
	require.NoError(t, err)
	assert.Equal(t, types.Published, res.Outcome)
}

func TestIgnoreEagerSkips(t *testing.T) {
	ep := newEndpoint(t)
	ep.FileExist = policy.Ignore
	ep.TempPrefix = "inprogress."
	seed(t, ep, "a.txt", "old content")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("new")})
	require.NoError(t, err)
	assert.Equal(t, types.Skipped, res.Outcome)

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "old content")
	assert.Equal(t, []string{"a.txt"}, listDir(t, ep.Directory), "nothing was written")
}

func TestIgnoreLazyAbandonsTempFile(t *testing.T) {
	// Lazy mode trades tidiness for minimal writes: on Ignore the temp
	// file is written and then deliberately left behind.
	ep := newEndpoint(t)
	ep.FileExist = policy.Ignore
	ep.TempPrefix = "inprogress."
	ep.EagerDeleteTargetFile = false
	seed(t, ep, "a.txt", "old content")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("new")})
	require.NoError(t, err)
	assert.Equal(t, types.Skipped, res.Outcome)

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "old content")
	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "inprogress.a.txt"), "new")
}

func TestFailLazyLeavesTempFile(t *testing.T) {
	ep := newEndpoint(t)
	ep.FileExist = policy.Fail
	ep.TempPrefix = "inprogress."
	ep.EagerDeleteTargetFile = false
	seed(t, ep, "a.txt", "old content")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	_, err = pub.Publish(types.Request{FileName: "a.txt", Body: []byte("new")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrTargetExists))

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "old content")
	testutil.RequirePresent(t, fsys, filepath.Join(ep.Directory, "inprogress.a.txt"))
}

func TestOverrideLazyTemp(t *testing.T) {
	ep := newEndpoint(t)
	ep.FileExist = policy.Override
	ep.TempPrefix = "inprogress."
	ep.EagerDeleteTargetFile = false
	seed(t, ep, "a.txt", "old content")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("new payload")})
	require.NoError(t, err)
	assert.Equal(t, types.Published, res.Outcome)

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "new payload")
	assert.Equal(t, []string{"a.txt"}, listDir(t, ep.Directory))
}

func TestStrayTempFileDeleted(t *testing.T) {
	ep := newEndpoint(t)
	ep.TempPrefix = "inprogress."
	seed(t, ep, "inprogress.a.txt", "left over from a crash")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("payload")})
	require.NoError(t, err)
	assert.Equal(t, types.Published, res.Outcome)

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "payload")
	testutil.RequireAbsent(t, fsys, filepath.Join(ep.Directory, "inprogress.a.txt"))
}

func TestStrayTempDeleteFailure(t *testing.T) {
	ep := newEndpoint(t)
	ep.TempPrefix = "inprogress."
	tempPath := seed(t, ep, "inprogress.a.txt", "stuck")

	fsys := testutil.NewFaultFS(filesystem.NewOS())
	fsys.RemoveErr[tempPath] = fmt.Errorf("permission denied")

	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	_, err = pub.Publish(types.Request{FileName: "a.txt", Body: []byte("payload")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCleanupFailure))
	testutil.RequireAbsent(t, fsys, filepath.Join(ep.Directory, "a.txt"))
}

func TestRenameFailureLeavesTempForDiagnosis(t *testing.T) {
	ep := newEndpoint(t)
	ep.TempPrefix = "inprogress."
	tempPath := filepath.Join(ep.Directory, "inprogress.a.txt")

	fsys := testutil.NewFaultFS(filesystem.NewOS())
	fsys.RenameErr[tempPath] = fmt.Errorf("cross-device link")

	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	_, err = pub.Publish(types.Request{FileName: "a.txt", Body: []byte("payload")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRenameFailure))

	testutil.RequireFileContent(t, fsys, tempPath, "payload")
	testutil.RequireAbsent(t, fsys, filepath.Join(ep.Directory, "a.txt"))
}

func TestTryRenameSkipsPreChecks(t *testing.T) {
	ep := newEndpoint(t)
	ep.FileExist = policy.TryRename
	ep.TempPrefix = "inprogress."
	seed(t, ep, "inprogress.a.txt", "stray temp kept")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("payload")})
	require.NoError(t, err)
	assert.Equal(t, types.Published, res.Outcome)

	// The stray temp file was overwritten by the new write, not
	// removed by a pre-check; the rename primitive owned the rest.
	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "payload")
}

func TestAppendDirect(t *testing.T) {
	ep := newEndpoint(t)
	ep.FileExist = policy.Append

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	_, err = pub.Publish(types.Request{FileName: "log.txt", Body: []byte("one\n")})
	require.NoError(t, err)
	_, err = pub.Publish(types.Request{FileName: "log.txt", Body: []byte("two\n")})
	require.NoError(t, err)

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "log.txt"), "one\ntwo\n")
}

func TestTempFileNameTemplate(t *testing.T) {
	ep := newEndpoint(t)
	ep.TempFileName = "inprogress-${file:onlyname}"
	tempPath := filepath.Join(ep.Directory, "inprogress-a.txt")

	fsys := testutil.NewFaultFS(filesystem.NewOS())
	fsys.RenameErr[tempPath] = fmt.Errorf("held open")

	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	_, err = pub.Publish(types.Request{FileName: "a.txt", Body: []byte("payload")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRenameFailure))
	testutil.RequireFileContent(t, fsys, tempPath, "payload")
}

func TestSentinelFailureIsPartial(t *testing.T) {
	ep := newEndpoint(t)
	ep.DoneFileName = "${file:name}.done"
	donePath := filepath.Join(ep.Directory, "a.txt.done")

	fsys := testutil.NewFaultFS(filesystem.NewOS())
	fsys.WriteErr[donePath] = fmt.Errorf("disk full")

	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("payload")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFileWrite))

	// Target is published even though the sentinel failed; callers see
	// the partial outcome and the produced name.
	assert.Equal(t, types.SentinelFailed, res.Outcome)
	assert.Equal(t, filepath.Join(ep.Directory, "a.txt"), res.FileNameProduced)
	testutil.RequireFileContent(t, fsys, res.FileNameProduced, "payload")
}

func TestPreExistingDoneFileReplaced(t *testing.T) {
	ep := newEndpoint(t)
	ep.DoneFileName = "${file:name}.done"
	seed(t, ep, "a.txt.done", "stale marker")

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	_, err = pub.Publish(types.Request{FileName: "a.txt", Body: []byte("payload")})
	require.NoError(t, err)

	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt.done"), "")
}

func TestUnresolvedDonePatternIsPartialFailure(t *testing.T) {
	ep := newEndpoint(t)
	ep.DoneFileName = "${file:checksum}.done"

	fsys := filesystem.NewOS()
	pub, err := publisher.New(ep, fsys)
	require.NoError(t, err)

	res, err := pub.Publish(types.Request{FileName: "a.txt", Body: []byte("payload")})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrUnresolvedPlaceholder))
	assert.Equal(t, types.SentinelFailed, res.Outcome)
	testutil.RequireFileContent(t, fsys, filepath.Join(ep.Directory, "a.txt"), "payload")
}

func TestNewRejectsInvalidEndpoint(t *testing.T) {
	ep := newEndpoint(t)
	ep.FileExist = policy.Append
	ep.TempPrefix = "inprogress."

	_, err := publisher.New(ep, filesystem.NewOS())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

package config_test

import (
	"testing"

	"github.com/arthur-debert/seqfile/pkg/config"
	"github.com/arthur-debert/seqfile/pkg/errors"
	"github.com/arthur-debert/seqfile/pkg/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEndpointDefaults(t *testing.T) {
	ep, err := config.NewEndpoint("out")
	require.NoError(t, err)

	assert.Equal(t, "out", ep.Directory)
	assert.Equal(t, policy.Override, ep.FileExist)
	assert.True(t, ep.EagerDeleteTargetFile)
	assert.False(t, ep.WriteAsTempAndRename())
	assert.NoError(t, ep.Validate())
}

func TestNewEndpointRejectsDynamicDirectory(t *testing.T) {
	_, err := config.NewEndpoint("out/${date:now}")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))

	_, err = config.NewEndpoint("$simple{dir}")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestValidateAppendWithTempName(t *testing.T) {
	ep, err := config.NewEndpoint("out")
	require.NoError(t, err)
	ep.FileExist = policy.Append
	ep.TempFileName = "inprogress-${file:onlyname}"

	err = ep.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestValidateAppendWithTempPrefix(t *testing.T) {
	ep, err := config.NewEndpoint("out")
	require.NoError(t, err)
	ep.FileExist = policy.Append
	ep.TempPrefix = "inprogress."

	err = ep.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestValidateMoveRequiresTemplate(t *testing.T) {
	ep, err := config.NewEndpoint("out")
	require.NoError(t, err)
	ep.FileExist = policy.Move

	err = ep.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestValidateTemplateRequiresMove(t *testing.T) {
	ep, err := config.NewEndpoint("out")
	require.NoError(t, err)
	ep.MoveExisting = "archive/${file:onlyname}"

	err = ep.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestValidateMoveWithTemplate(t *testing.T) {
	ep, err := config.NewEndpoint("out")
	require.NoError(t, err)
	ep.FileExist = policy.Move
	ep.MoveExisting = "archive/${file:onlyname}"

	assert.NoError(t, ep.Validate())
}

func TestValidateBlankDoneFileName(t *testing.T) {
	ep, err := config.NewEndpoint("out")
	require.NoError(t, err)
	ep.DoneFileName = "   "

	err = ep.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestWriteAsTempAndRename(t *testing.T) {
	ep, err := config.NewEndpoint("out")
	require.NoError(t, err)

	ep.TempPrefix = "inprogress."
	assert.True(t, ep.WriteAsTempAndRename())

	ep.TempPrefix = ""
	ep.TempFileName = "inprogress-${file:onlyname}"
	assert.True(t, ep.WriteAsTempAndRename())
}

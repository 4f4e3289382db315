package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"titrate/domain/core"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsWrapSentinels(t *testing.T) {
	cases := []struct {
		err      error
		code     string
		sentinel error
	}{
		{ConfigInvalid("unit %q", "gal"), CodeConfigInvalid, core.ErrConfiguration},
		{NotImplemented("weak/weak"), CodeNotImplemented, core.ErrNotImplemented},
		{InvalidState("negative %s", "salt"), CodeInvalidState, core.ErrInvalidState},
		{EmptyResult("nothing kept"), CodeEmptyResult, core.ErrEmptyResult},
		{NotFound("run 1"), CodeNotFound, core.ErrNotFound},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, GetCode(tc.err))
		assert.ErrorIs(t, tc.err, tc.sentinel)
	}
}

func TestWrapKeepsInnerCode(t *testing.T) {
	err := Wrap(NotImplemented("weak/weak"), "failed to run")
	assert.Equal(t, CodeNotImplemented, GetCode(err))
	assert.ErrorIs(t, err, core.ErrNotImplemented)
	assert.Contains(t, err.Error(), "failed to run")

	plain := Wrapf(stderrors.New("disk full"), "%s sink failed", "xlsx")
	assert.Equal(t, CodeInternalError, GetCode(plain))
	assert.Equal(t, "xlsx sink failed: disk full", plain.Error())

	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("bare")))
}

func TestFromDomain(t *testing.T) {
	domainErr := fmt.Errorf("%w: ratio must have 3 or 4 values", core.ErrConfiguration)
	err := FromDomain(domainErr)
	assert.Equal(t, CodeConfigInvalid, GetCode(err))
	assert.Equal(t, domainErr.Error(), err.Error())
	assert.ErrorIs(t, err, core.ErrConfiguration)

	app := EmptyResult("x")
	assert.Same(t, app, FromDomain(app))
	assert.Nil(t, FromDomain(nil))
	assert.Equal(t, CodeInternalError, GetCode(FromDomain(stderrors.New("other"))))
}

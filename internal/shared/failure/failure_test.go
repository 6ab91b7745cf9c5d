package failure

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrapKeepsBothErrors(t *testing.T) {
	cause := errors.New("pet is already adopted")
	err := Wrap(ErrInvalidState, cause)

	require.ErrorIs(t, err, ErrInvalidState)
	require.ErrorIs(t, err, cause)
	require.Equal(t, "invalid state: pet is already adopted", err.Error())
}

func TestWrapDoesNotDoubleTag(t *testing.T) {
	err := Wrap(ErrConflict, errors.New("duplicate"))
	again := Wrap(ErrConflict, err)
	require.Same(t, err, again)
}

func TestWrapNil(t *testing.T) {
	require.NoError(t, Wrap(ErrNotFound, nil))
}

func TestKind(t *testing.T) {
	require.Equal(t, ErrForbidden, Kind(Wrap(ErrForbidden, errors.New("no"))))
	require.Nil(t, Kind(errors.New("plain")))
}

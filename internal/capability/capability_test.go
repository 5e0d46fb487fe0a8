//go:build linux

package capability

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// TestSet_Packing tests that flags survive the split into 32-bit words.
func TestSet_Packing(t *testing.T) {
	t.Parallel()

	var s Set

	s.Put(Effective, CapChown|CapSetfcap|CapAuditRead)
	s.Put(Permitted, All)
	s.Put(Inheritable, CapMacOverride)

	assert.Equal(t, CapChown|CapSetfcap|CapAuditRead, s.Get(Effective))
	assert.Equal(t, All, s.Get(Permitted))
	assert.Equal(t, CapMacOverride, s.Get(Inheritable))

	assert.Equal(t, uint32(1|1<<31), s.data[0].Effective)
	assert.Equal(t, uint32(1<<5), s.data[1].Effective)
	assert.Equal(t, uint32(1), s.data[1].Inheritable)
	assert.Zero(t, s.data[0].Inheritable)

	s.PutAll(CapKill)
	assert.Equal(t, CapKill, s.Get(Effective))
	assert.Equal(t, CapKill, s.Get(Permitted))
	assert.Equal(t, CapKill, s.Get(Inheritable))
}

// TestFlags_String tests the rendering of flags as names.
func TestFlags_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", Flags(0).String())
	assert.Equal(t, "CAP_CHOWN,CAP_NET_RAW", (CapNetRaw | CapChown).String())
	assert.Equal(t, "CAP_AUDIT_READ,CAP_40", (CapAuditRead | 1<<40).String())
	assert.Equal(t, 38, len(names))
	assert.Equal(t, Flags(1<<38-1), All)
}

// TestParseFlags tests the parsing of capability lists.
func TestParseFlags(t *testing.T) {
	t.Parallel()

	t.Run("Success", func(t *testing.T) {
		f, err := ParseFlags("chown, CAP_net_raw,,sys_admin")
		require.NoError(t, err)
		assert.Equal(t, CapChown|CapNetRaw|CapSysAdmin, f)
	})

	t.Run("Success_Roundtrip", func(t *testing.T) {
		f, err := ParseFlags(All.String())
		require.NoError(t, err)
		assert.Equal(t, All, f)
	})

	t.Run("Fail_Unknown", func(t *testing.T) {
		_, err := ParseFlags("chown,fly")
		require.ErrorIs(t, err, ErrUnknownCapability)
		assert.Contains(t, err.Error(), "CAP_FLY")
	})
}

// TestCapget tests that the own capabilities can be read and written back.
func TestCapget(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	s, err := Capget(0)
	require.NoError(t, err)

	eff := s.Get(Effective)
	perm := s.Get(Permitted)
	assert.Equal(t, eff, eff&perm, "effective must be a subset of permitted")

	require.NoError(t, Capset(0, s))
}

// TestCapget_Failures tests that kernel errors name the failed operation.
func TestCapget_Failures(t *testing.T) {
	t.Parallel()

	t.Run("Fail_NegativePid", func(t *testing.T) {
		_, err := Capget(-1)
		require.ErrorIs(t, err, unix.EINVAL)
		assert.Contains(t, err.Error(), "(capability-capget)")
	})

	t.Run("Fail_ForeignPid", func(t *testing.T) {
		err := Capset(-1, &Set{})
		require.ErrorIs(t, err, unix.EPERM)
		assert.Contains(t, err.Error(), "(capability-capset)")
	})
}

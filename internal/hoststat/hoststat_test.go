package hoststat

import (
	"context"
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeSource struct {
	fail bool
}

var errUnsupported = errors.New("unsupported")

func (f fakeSource) CPUThreads(context.Context) (int, error) {
	if f.fail {
		return 0, errUnsupported
	}
	return 8, nil
}

func (f fakeSource) CPUPercent(context.Context) (float64, error) {
	if f.fail {
		return 0, errUnsupported
	}
	return 12.5, nil
}

func (f fakeSource) Memory(context.Context) (uint64, uint64, error) {
	if f.fail {
		return 0, 0, errUnsupported
	}
	return 16 << 30, 4 << 30, nil
}

func (f fakeSource) Load(context.Context) (float64, float64, float64, error) {
	if f.fail {
		return 0, 0, 0, errUnsupported
	}
	return 0.5, 0.25, 0.1, nil
}

func TestTake(t *testing.T) {
	s := Take(context.Background(), fakeSource{})

	assert.Equal(t, runtime.GOOS, s.OS)
	assert.Equal(t, runtime.GOARCH, s.Architecture)
	assert.Equal(t, 8, s.CPUThreads)
	assert.Equal(t, 12.5, s.CPUPercent)
	assert.Equal(t, uint64(16<<30), s.RAMTotal)
	assert.Equal(t, uint64(4<<30), s.RAMAvailable)
	assert.Equal(t, 0.5, s.Load1)
	assert.Equal(t, 0.25, s.Load5)
	assert.Equal(t, 0.1, s.Load15)
}

func TestTakeIgnoresErrors(t *testing.T) {
	s := Take(context.Background(), fakeSource{fail: true})

	assert.Equal(t, runtime.GOOS, s.OS)
	assert.Zero(t, s.CPUThreads)
	assert.Zero(t, s.RAMTotal)
	assert.Zero(t, s.Load1)
}

func TestTakeLocalHost(t *testing.T) {
	s := Take(context.Background(), nil)
	if s.CPUThreads < 0 {
		t.Errorf("negative thread count %d", s.CPUThreads)
	}
}

package git

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingService struct {
	statusCalls int
	diffCalls   int
	stageErr    error
}

func (f *countingService) RepoRoot() string { return "/repo" }
func (f *countingService) GitDir() string   { return "/repo/.git" }
func (f *countingService) Status() (StatusSnapshot, error) {
	f.statusCalls++
	return StatusSnapshot{Lines: []string{" M a.go"}}, nil
}
func (f *countingService) DiffStats() (StatTable, error) { return StatTable{}, nil }
func (f *countingService) Stage(string) error            { return f.stageErr }
func (f *countingService) Unstage(string) error          { return nil }
func (f *countingService) Commit(string) error           { return nil }
func (f *countingService) Diff(string, bool, bool) (string, error) {
	f.diffCalls++
	return "diff", nil
}
func (f *countingService) ApplyPatch(string, ApplyOptions) error    { return nil }
func (f *countingService) WorktreeList() ([]Worktree, error)        { return nil, nil }
func (f *countingService) SwitchWorktree(string) error              { return nil }
func (f *countingService) ConfigGet(string) (string, bool)          { return "", false }
func (f *countingService) ConfigGetRegexp(string) map[string]string { return nil }

func TestCachedServiceReusesReads(t *testing.T) {
	inner := &countingService{}
	c := NewCachedService(inner, time.Minute)

	_, err := c.Status()
	require.NoError(t, err)
	_, err = c.Status()
	require.NoError(t, err)
	assert.Equal(t, 1, inner.statusCalls)
}

func TestCachedServiceKeysDiffByMode(t *testing.T) {
	inner := &countingService{}
	c := NewCachedService(inner, time.Minute)

	_, _ = c.Diff("a.go", false, false)
	_, _ = c.Diff("a.go", true, false)
	_, _ = c.Diff("a.go", false, false)
	assert.Equal(t, 2, inner.diffCalls)
}

func TestCachedServiceInvalidatesOnWrite(t *testing.T) {
	inner := &countingService{}
	c := NewCachedService(inner, time.Minute)

	_, _ = c.Status()
	require.NoError(t, c.Stage("a.go"))
	_, _ = c.Status()
	assert.Equal(t, 2, inner.statusCalls)
}

func TestCachedServiceKeepsCacheOnFailedWrite(t *testing.T) {
	inner := &countingService{stageErr: errors.New("boom")}
	c := NewCachedService(inner, time.Minute)

	_, _ = c.Status()
	require.Error(t, c.Stage("a.go"))
	_, _ = c.Status()
	assert.Equal(t, 1, inner.statusCalls)
}

func TestCachedServiceExpires(t *testing.T) {
	inner := &countingService{}
	c := NewCachedService(inner, time.Nanosecond)

	_, _ = c.Status()
	time.Sleep(time.Millisecond)
	_, _ = c.Status()
	assert.Equal(t, 2, inner.statusCalls)
}

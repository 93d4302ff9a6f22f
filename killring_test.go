package lineedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKillRingAddDeduplicatesAndMovesToFront(t *testing.T) {
	r := NewKillRing()
	r.Add("one")
	r.Add("two")
	r.Add("one")
	require.Equal(t, 2, r.Len())
	require.Equal(t, "one", r.Yank())
}

func TestKillRingRotate(t *testing.T) {
	r := NewKillRing()
	r.Add("one")
	r.Add("two")
	r.Add("three")
	require.Equal(t, "three", r.Yank())
	require.Equal(t, "two", r.Rotate())
	require.Equal(t, "one", r.Rotate())
	require.Equal(t, "three", r.Rotate())
}

func TestKillRingAppendAndPrependFront(t *testing.T) {
	r := NewKillRing()
	r.AppendFront("abc")
	r.AppendFront("def")
	require.Equal(t, "abcdef", r.Yank())

	r2 := NewKillRing()
	r2.PrependFront("def")
	r2.PrependFront("abc")
	require.Equal(t, "abcdef", r2.Yank())
}

func TestKillRingReplace(t *testing.T) {
	r := NewKillRing()
	r.Add("one")
	r.Add("two")
	r.Replace("one", "three")
	require.Equal(t, 2, r.Len())
	require.Equal(t, "three", r.Yank())
}

func TestKillRingYankOnEmpty(t *testing.T) {
	r := NewKillRing()
	require.Equal(t, "", r.Yank())
	require.Equal(t, "", r.Rotate())
}

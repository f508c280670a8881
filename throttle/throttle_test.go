package throttle

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNilSpecNeverSuppresses(t *testing.T) {
	var s *Spec
	assert.False(t, s.SuppressField("anything"))
	assert.False(t, s.SuppressNVPair("anything", "cpu1"))
}

func TestSpecSuppressField(t *testing.T) {
	s := &Spec{SuppressedFieldNames: []string{"alarmInterfaceA"}}
	s.Finalize()
	assert.True(t, s.SuppressField("alarmInterfaceA"))
	assert.False(t, s.SuppressField("alarmInterfaceB"))
}

func TestSpecSuppressNVPair(t *testing.T) {
	s := &Spec{SuppressedNVPairs: []NVPairs{
		{FieldName: "cpuUsageArray", SuppressedNames: []string{"cpu1", "cpu2"}},
	}}
	s.Finalize()
	assert.True(t, s.SuppressNVPair("cpuUsageArray", "cpu1"))
	assert.True(t, s.SuppressNVPair("cpuUsageArray", "cpu2"))
	assert.False(t, s.SuppressNVPair("cpuUsageArray", "cpu3"))
	assert.False(t, s.SuppressNVPair("diskUsageArray", "cpu1"))
}

func TestSpecEmpty(t *testing.T) {
	assert.True(t, (&Spec{}).Empty())
	assert.False(t, (&Spec{SuppressedFieldNames: []string{"x"}}).Empty())
}

func TestStoreSetGetClear(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Get(1))

	s := &Spec{SuppressedFieldNames: []string{"x"}}
	s.Finalize()
	store.Set(1, s)
	assert.Same(t, s, store.Get(1))
	assert.ElementsMatch(t, []int{1}, store.ThrottledDomains())

	store.Set(1, nil)
	assert.Nil(t, store.Get(1))
	assert.Empty(t, store.ThrottledDomains())

	store.Set(2, &Spec{})
	assert.Nil(t, store.Get(2), "an empty spec clears throttling rather than being stored")
}

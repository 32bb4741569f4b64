package collection

import (
	"github.com/stretchr/testify/assert"
	"sync"
	"testing"
)

func TestSyncMap(t *testing.T) {
	m := NewSyncMap[int, string]()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Put(i, "v")
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, m.Len())

	v, ok := m.Take(3)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
	_, ok = m.Get(3)
	assert.False(t, ok)
	assert.Equal(t, 9, m.Len())
}

package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScopeMean(t *testing.T) {
	assert.Equal(t, time.Duration(0), Scope{}.Mean())
	assert.Equal(t, 5*time.Millisecond, Scope{Count: 2, Total: 10 * time.Millisecond}.Mean())
}

func TestStartReturnsCallableEnd(t *testing.T) {
	end := Start("test.scope")
	assert.NotNil(t, end)
	end()
	if !Enabled {
		assert.Empty(t, Stats())
	}
}

package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerShutdown(t *testing.T) {
	m := NewManager()

	handle, err := m.NewServiceHandle("测试服务")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer handle.Close()
		<-handle.Done()
	}()

	m.Shutdown()
	assert.Nil(t, m.WaitWithTimeout(time.Second))
	<-done
}

func TestManagerRejectsDuplicateNames(t *testing.T) {
	m := NewManager()

	_, err := m.NewServiceHandle("测试服务")
	require.NoError(t, err)
	_, err = m.NewServiceHandle("测试服务")
	assert.Error(t, err)
}

func TestWaitWithTimeoutReportsStuckServices(t *testing.T) {
	m := NewManager()

	_, err := m.NewServiceHandle("卡住的服务")
	require.NoError(t, err)

	m.Shutdown()
	stuck := m.WaitWithTimeout(50 * time.Millisecond)
	assert.Equal(t, []string{"卡住的服务"}, stuck)
}

func TestHandleSleep(t *testing.T) {
	m := NewManager()

	t.Run("正常休眠到期", func(t *testing.T) {
		handle, err := m.NewServiceHandle("休眠服务")
		require.NoError(t, err)
		defer handle.Close()
		assert.NoError(t, handle.Sleep(10*time.Millisecond))
	})

	t.Run("停机信号中断休眠", func(t *testing.T) {
		handle, err := m.NewServiceHandle("被中断的服务")
		require.NoError(t, err)
		defer handle.Close()

		go m.Shutdown()
		err = handle.Sleep(10 * time.Second)
		assert.Error(t, err)
	})
}

package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeTickerFiresOnAdvance(t *testing.T) {
	c := Fake(epoch)
	tk := c.NewTicker(time.Minute)

	c.Advance(30 * time.Second)
	select {
	case <-tk.C:
		t.Fatal("ticker fired early")
	default:
	}

	c.Advance(30 * time.Second)
	select {
	case at := <-tk.C:
		assert.Equal(t, epoch.Add(time.Minute), at)
	default:
		t.Fatal("ticker did not fire")
	}
	assert.Equal(t, epoch.Add(time.Minute), c.Now())
}

func TestFakeTickerDropsWhenFull(t *testing.T) {
	c := Fake(epoch)
	tk := c.NewTicker(time.Second)

	c.Advance(5 * time.Second)

	assert.Len(t, tk.C, 1)
	<-tk.C
	c.Advance(time.Second)
	assert.Len(t, tk.C, 1)
}

func TestFakeTickerStop(t *testing.T) {
	c := Fake(epoch)
	tk := c.NewTicker(time.Second)
	assert.Equal(t, 1, c.ActiveTickers())

	tk.Stop()
	c.WaitForTickers(0)
	c.Advance(time.Hour)

	assert.Empty(t, tk.C)
}

func TestFakeNewTickerPanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { Fake(epoch).NewTicker(0) })
}

func TestWaitForTickersBlocksUntilRegistered(t *testing.T) {
	c := Fake(epoch)
	done := make(chan struct{})
	go func() {
		c.WaitForTickers(1)
		close(done)
	}()

	c.NewTicker(time.Second)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("WaitForTickers did not return")
	}
}

func TestRealClock(t *testing.T) {
	c := Real()
	assert.WithinDuration(t, time.Now(), c.Now(), time.Second)
	tk := c.NewTicker(time.Millisecond)
	defer tk.Stop()
	select {
	case <-tk.C:
	case <-time.After(time.Second):
		t.Fatal("real ticker did not fire")
	}
}

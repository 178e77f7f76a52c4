package metrics

import (
	"strings"
	"sync"
	"testing"
)

func TestCollector_Sessions(t *testing.T) {
	c := New()

	c.SessionOpened()
	c.SessionOpened()
	c.SessionClosed()

	if got := c.ActiveSessions(); got != 1 {
		t.Errorf("ActiveSessions = %d, want 1", got)
	}
	if got := c.TotalSessions(); got != 2 {
		t.Errorf("TotalSessions = %d, want 2", got)
	}
}

func TestCollector_Requests(t *testing.T) {
	c := New()

	c.RequestServed()
	c.RequestServed()
	c.MalformedRequest()
	c.SessionTimedOut()

	if got := c.RequestCount(); got != 2 {
		t.Errorf("RequestCount = %d, want 2", got)
	}
	if got := c.MalformedCount(); got != 1 {
		t.Errorf("MalformedCount = %d, want 1", got)
	}
	if got := c.TimeoutCount(); got != 1 {
		t.Errorf("TimeoutCount = %d, want 1", got)
	}
}

func TestCollector_Errors(t *testing.T) {
	c := New()

	c.RecordError("accept failed")
	c.RecordError("write failed")

	if got := c.ErrorCount(); got != 2 {
		t.Errorf("ErrorCount = %d, want 2", got)
	}

	s := c.Snapshot()
	if s.LastErrorMessage != "write failed" {
		t.Errorf("LastErrorMessage = %q", s.LastErrorMessage)
	}
	if s.LastError == "" {
		t.Error("LastError timestamp missing")
	}
}

func TestCollector_NilSafe(t *testing.T) {
	var c *Collector

	// None of these may panic.
	c.SessionOpened()
	c.SessionClosed()
	c.RequestServed()
	c.MalformedRequest()
	c.SessionTimedOut()
	c.RecordError("x")

	if got := c.ActiveSessions(); got != 0 {
		t.Errorf("nil collector ActiveSessions = %d", got)
	}
	if s := c.Snapshot(); s.SessionsTotal != 0 {
		t.Errorf("nil collector snapshot = %+v", s)
	}
}

func TestCollector_ConcurrentUse(t *testing.T) {
	c := New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.SessionOpened()
				c.RequestServed()
				c.SessionClosed()
			}
		}()
	}
	wg.Wait()

	if got := c.TotalSessions(); got != 1600 {
		t.Errorf("TotalSessions = %d, want 1600", got)
	}
	if got := c.RequestCount(); got != 1600 {
		t.Errorf("RequestCount = %d, want 1600", got)
	}
	if got := c.ActiveSessions(); got != 0 {
		t.Errorf("ActiveSessions = %d, want 0", got)
	}
}

func TestCollector_JSON(t *testing.T) {
	c := New()
	c.RequestServed()

	out := c.JSON()
	for _, key := range []string{"uptime", "sessions_total", "requests_total"} {
		if !strings.Contains(out, key) {
			t.Errorf("JSON output missing %q:\n%s", key, out)
		}
	}
}

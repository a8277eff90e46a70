package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerAddFoldsConcurrentPhases(t *testing.T) {
	tm := NewTimer()
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("parse", time.Duration(i+1)*time.Millisecond)
		}()
	}
	wg.Wait()

	r := tm.Report()
	if len(r.Phases) != 1 {
		t.Fatalf("phases = %d, want 1", len(r.Phases))
	}
	p := r.Phases[0]
	if p.Count != 8 || p.DurationMS != 36 || p.MaxMS != 8 {
		t.Fatalf("parse = %+v", p)
	}
	if r.TotalMS != 36 {
		t.Fatalf("total = %v", r.TotalMS)
	}
	if !strings.Contains(tm.Summary(), "x8  max 8.00 ms") {
		t.Fatalf("summary:\n%s", tm.Summary())
	}
}

func TestPhasesKeepFirstSeenOrder(t *testing.T) {
	tm := NewTimer()
	for _, name := range []string{"load", "parse", "load", "diagnose"} {
		tm.Add(name, time.Millisecond)
	}
	var names []string
	for _, p := range tm.Report().Phases {
		names = append(names, p.Name)
	}
	if strings.Join(names, ",") != "load,parse,diagnose" {
		t.Fatalf("order = %v", names)
	}
}

func TestMeasureBytesThroughput(t *testing.T) {
	tm := NewTimer()
	tm.MeasureBytes("lex", 1<<20, func() { time.Sleep(time.Millisecond) })
	p := tm.Report().Phases[0]
	if p.Bytes != 1<<20 || p.MBPerSec <= 0 {
		t.Fatalf("lex = %+v", p)
	}
	if !strings.Contains(tm.Summary(), "MB/s") {
		t.Fatalf("summary:\n%s", tm.Summary())
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	ran := false
	tm.Measure("x", func() { ran = true })
	tm.Add("y", time.Second)
	if !ran {
		t.Fatal("fn not called")
	}
}

func TestEmptyReport(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || len(r.Phases) != 0 {
		t.Fatalf("report = %+v", r)
	}
}

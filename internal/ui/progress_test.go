package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pdfsyntax/internal/driver"
)

func newModel(files ...string) *progressModel {
	return NewProgressModel("diagnose", files, make(chan driver.Event)).(*progressModel)
}

func send(m *progressModel, evs ...driver.Event) {
	for _, ev := range evs {
		m.Update(eventMsg(ev))
	}
}

func TestProgressModelCounts(t *testing.T) {
	m := newModel("a.pdf", "b.pdf", "c.pdf")
	send(m,
		driver.Event{File: "a.pdf", Stage: driver.StageParse, Status: driver.StatusWorking},
		driver.Event{File: "b.pdf", Stage: driver.StageLoad, Status: driver.StatusError},
		driver.Event{File: "c.pdf", Stage: driver.StageDiagnose, Status: driver.StatusCached, Errors: 2, Warnings: 1},
		driver.Event{File: "unknown.pdf", Stage: driver.StageParse, Status: driver.StatusWorking},
	)

	if m.finished != 2 || m.cached != 1 || m.failed != 1 {
		t.Errorf("finished=%d cached=%d failed=%d", m.finished, m.cached, m.failed)
	}
	if m.errors != 2 || m.warnings != 1 {
		t.Errorf("errors=%d warnings=%d", m.errors, m.warnings)
	}
	if len(m.active) != 1 || m.active[0] != "a.pdf" {
		t.Errorf("active = %v", m.active)
	}

	view := m.View()
	for _, want := range []string{"2/3 files, 1 cached", "2 errors", "1 warning", "parsing a.pdf", "unreadable b.pdf", "2 errors c.pdf"} {
		if !strings.Contains(view, want) {
			t.Errorf("view lacks %q:\n%s", want, view)
		}
	}
}

func TestProgressModelIgnoresLateEvents(t *testing.T) {
	m := newModel("a.pdf")
	send(m,
		driver.Event{File: "a.pdf", Stage: driver.StageDiagnose, Status: driver.StatusDone},
		driver.Event{File: "a.pdf", Stage: driver.StageDiagnose, Status: driver.StatusDone},
		driver.Event{File: "a.pdf", Stage: driver.StageParse, Status: driver.StatusWorking},
	)
	if m.finished != 1 || len(m.active) != 0 {
		t.Errorf("finished=%d active=%v", m.finished, m.active)
	}
	if p := m.percent(); p != 1 {
		t.Errorf("percent = %v", p)
	}
}

func TestProgressModelQuitsOnDone(t *testing.T) {
	m := newModel("a.pdf", "b.pdf")
	send(m, driver.Event{File: "b.pdf", Stage: driver.StageLoad, Status: driver.StatusError})

	_, cmd := m.Update(doneMsg{})
	if cmd == nil {
		t.Fatal("doneMsg must return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("doneMsg must quit the program")
	}
	if !strings.Contains(m.View(), "done: diagnose, 1 unreadable") {
		t.Errorf("final view:\n%s", m.View())
	}
}

func TestProgressModelRunLevelStage(t *testing.T) {
	m := newModel("a.pdf")
	send(m, driver.Event{Stage: driver.StageDiagnose, Status: driver.StatusWorking})
	if m.stageLabel != "diagnosing" {
		t.Errorf("stage label = %q", m.stageLabel)
	}
}

func TestActiveListIsCapped(t *testing.T) {
	var files []string
	for i := range maxActive + 3 {
		files = append(files, string(rune('a'+i))+".pdf")
	}
	m := newModel(files...)
	for _, f := range files {
		send(m, driver.Event{File: f, Stage: driver.StageLex, Status: driver.StatusWorking})
	}
	if !strings.Contains(m.View(), "... 3 more") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestListenForEventClosedChannel(t *testing.T) {
	events := make(chan driver.Event)
	close(events)
	m := NewProgressModel("x", nil, events).(*progressModel)
	if _, ok := m.listenForEvent()().(doneMsg); !ok {
		t.Fatal("closed channel must produce doneMsg")
	}
	if m.View() != "" {
		t.Error("empty run renders nothing")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("a-very-long-file-name.pdf", 10); got != "a-very-..." {
		t.Errorf("truncate = %q", got)
	}
}

func TestProgressFromStage(t *testing.T) {
	if progressFromStage(driver.StageLoad) != 0 {
		t.Error("load stage must be 0")
	}
	if !(progressFromStage(driver.StageLex) < progressFromStage(driver.StageParse) &&
		progressFromStage(driver.StageParse) < progressFromStage(driver.StageDiagnose)) {
		t.Error("stage progress must increase")
	}
}

package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/studydeck/internal/config"
	"github.com/abhisek/studydeck/internal/content"
	"github.com/abhisek/studydeck/internal/router"
	"github.com/abhisek/studydeck/internal/screens/chapters"
)

type stubLister struct{}

func (stubLister) Chapters(context.Context, content.Locator) ([]content.Chapter, error) {
	return nil, nil
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func TestHome_SubjectsFollowStream(t *testing.T) {
	h := New(Options{
		Profile: config.Profile{Name: "Ravi", Board: "CBSE", Class: "11", Stream: "Commerce"},
		Lister:  stubLister{},
	})
	view := h.View(100, 30)
	for _, want := range []string{"Hello, Ravi!", "Accountancy", "Class 11 (Commerce)", "Quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Physics") {
		t.Error("commerce dashboard should not list Physics")
	}
}

func TestHome_JuniorSubjects(t *testing.T) {
	h := New(Options{Profile: config.Profile{Board: "CBSE", Class: "8"}})
	if len(h.menu.Items) != 6 {
		t.Errorf("menu items = %d, want 5 subjects plus quit", len(h.menu.Items))
	}
	if h.Title() != "Dashboard" {
		t.Errorf("Title() = %q, want %q", h.Title(), "Dashboard")
	}
}

func TestHome_EnterOpensChapters(t *testing.T) {
	h := New(Options{Profile: config.Profile{Board: "CBSE", Class: "10"}, Lister: stubLister{}})
	h.Update(specialKey(tea.KeyDown))
	_, cmd := h.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	list, ok := msg.Screen.(*chapters.ListScreen)
	if !ok {
		t.Fatal("expected a chapters.ListScreen")
	}
	if list.Title() != "Science" {
		t.Errorf("Title() = %q, want %q", list.Title(), "Science")
	}
}

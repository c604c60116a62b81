package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lisquiz/lisquiz/internal/screen"
)

type resumeMsg struct{ title string }

// fakeScreen records its lifecycle calls.
type fakeScreen struct {
	title   string
	inits   int
	closed  bool
	resumed int
	got     []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.got = append(s.got, msg)
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.title }
func (s *fakeScreen) Title() string        { return s.title }
func (s *fakeScreen) Close()               { s.closed = true }

func (s *fakeScreen) Resume() tea.Cmd {
	s.resumed++
	return func() tea.Msg { return resumeMsg{s.title} }
}

// plainScreen implements only screen.Screen.
type plainScreen struct{ title string }

func (p plainScreen) Init() tea.Cmd                            { return nil }
func (p plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p plainScreen) View(int, int) string                     { return p.title }
func (p plainScreen) Title() string                            { return p.title }

func titles(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func TestRouter_Navigation(t *testing.T) {
	tests := []struct {
		name string
		msgs []tea.Msg
		want []string
	}{
		{"push", []tea.Msg{PushScreenMsg{plainScreen{"quiz"}}}, []string{"home", "quiz"}},
		{"pop", []tea.Msg{PushScreenMsg{plainScreen{"quiz"}}, PopScreenMsg{}}, []string{"home"}},
		{"pop at root", []tea.Msg{PopScreenMsg{}}, []string{"home"}},
		{"replace root", []tea.Msg{ReplaceScreenMsg{plainScreen{"notice"}}}, []string{"notice"}},
		{
			"replace top",
			[]tea.Msg{PushScreenMsg{plainScreen{"quiz"}}, ReplaceScreenMsg{plainScreen{"done"}}},
			[]string{"home", "done"},
		},
		{
			"pop to root",
			[]tea.Msg{PushScreenMsg{plainScreen{"quiz"}}, PushScreenMsg{plainScreen{"done"}}, PopToRootMsg{}},
			[]string{"home"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(plainScreen{"home"})
			for _, m := range tt.msgs {
				r.Update(m)
			}
			got := titles(r)
			if len(got) != len(tt.want) {
				t.Fatalf("stack = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("stack = %v, want %v", got, tt.want)
				}
			}
			if r.Depth() != len(tt.want) || r.Active().Title() != tt.want[len(tt.want)-1] {
				t.Errorf("Depth/Active disagree with stack %v", got)
			}
		})
	}
}

func TestRouter_PushAndReplaceRunInit(t *testing.T) {
	r := New(plainScreen{"home"})
	pushed := &fakeScreen{title: "quiz"}
	r.Push(pushed)
	replacement := &fakeScreen{title: "done"}
	r.Replace(replacement)

	if pushed.inits != 1 || replacement.inits != 1 {
		t.Errorf("inits = %d/%d, want 1/1", pushed.inits, replacement.inits)
	}
	if !pushed.closed {
		t.Error("expected the replaced screen to be closed")
	}
}

func TestRouter_PopClosesAndResumes(t *testing.T) {
	home := &fakeScreen{title: "home"}
	quiz := &fakeScreen{title: "quiz"}
	r := New(home)
	r.Push(quiz)

	cmd := r.Pop()
	if !quiz.closed {
		t.Error("expected the popped screen to be closed")
	}
	if home.closed {
		t.Error("the root screen must stay open")
	}
	if home.resumed != 1 || cmd == nil {
		t.Fatalf("resumed = %d, cmd = %v", home.resumed, cmd)
	}
	if msg, ok := cmd().(resumeMsg); !ok || msg.title != "home" {
		t.Errorf("resume cmd produced %#v", cmd())
	}
}

func TestRouter_PopToRootClosesEveryScreen(t *testing.T) {
	home := &fakeScreen{title: "home"}
	a, b := &fakeScreen{title: "a"}, &fakeScreen{title: "b"}
	r := New(home)
	r.Push(a)
	r.Push(b)

	if r.PopToRoot() == nil {
		t.Error("expected the root to resume")
	}
	if !a.closed || !b.closed {
		t.Error("expected every popped screen to be closed")
	}
	if r.PopToRoot() != nil {
		t.Error("expected nil cmd when already at root")
	}
}

func TestRouter_ForwardsOtherMessages(t *testing.T) {
	quiz := &fakeScreen{title: "quiz"}
	r := New(quiz)
	r.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	if len(quiz.got) != 1 {
		t.Fatalf("got %d messages, want 1", len(quiz.got))
	}
	if r.View(80, 24) != "quiz" {
		t.Errorf("View = %q", r.View(80, 24))
	}
}

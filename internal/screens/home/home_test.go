package home

import (
	"context"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/lisquiz/lisquiz/internal/bank"
	"github.com/lisquiz/lisquiz/internal/router"
	"github.com/lisquiz/lisquiz/internal/screens/history"
	"github.com/lisquiz/lisquiz/internal/screens/play"
	"github.com/lisquiz/lisquiz/internal/store"
)

func testBanks(t *testing.T) []*bank.Bank {
	t.Helper()
	var banks []*bank.Bank
	for _, doc := range []string{
		"id: colors\ntitle: Colors\nquestions:\n  - options: [blue, red]\n    correct: blue\n",
		"id: verbs\ntitle: Verbs\nvariant: blank\nquestions:\n  - question: I ___ home.\n    options: [go, went]\n    correct: go\n",
	} {
		b, err := bank.Parse([]byte(doc))
		if err != nil {
			t.Fatalf("parse bank: %v", err)
		}
		banks = append(banks, b)
	}
	return banks
}

func openStore(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func record(t *testing.T, repo store.EventRepo, id, bankID string, score, total int) {
	t.Helper()
	ctx := context.Background()
	for _, ev := range []store.SessionEventData{
		{SessionID: id, Action: store.ActionStart, BankID: bankID, Total: total},
		{SessionID: id, Action: store.ActionEnd, BankID: bankID, Score: score, Total: total},
	} {
		if err := repo.AppendSessionEvent(ctx, ev); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
}

func TestHomeScreen_Title(t *testing.T) {
	h := New(Deps{Banks: testBanks(t)})
	if h.Title() != "Home" {
		t.Errorf("Title = %q, want %q", h.Title(), "Home")
	}
}

func TestHomeScreen_MenuListsBanks(t *testing.T) {
	h := New(Deps{Banks: testBanks(t)})

	var labels []string
	for _, item := range h.menu.Items {
		labels = append(labels, item.Label)
	}
	want := []string{"Colors", "Verbs", "HISTORY", "EXIT"}
	if strings.Join(labels, ",") != strings.Join(want, ",") {
		t.Errorf("labels = %v, want %v", labels, want)
	}
	if !strings.Contains(h.menu.Items[1].Hint, "Fill the Blank") {
		t.Errorf("hint = %q, want the variant label", h.menu.Items[1].Hint)
	}
}

func TestHomeScreen_EnterPushesPlayScreen(t *testing.T) {
	h := New(Deps{Banks: testBanks(t)})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a push")
	}
	ps, ok := push.Screen.(*play.PlayScreen)
	if !ok {
		t.Fatalf("pushed %T, want *play.PlayScreen", push.Screen)
	}
	if ps.Title() != "Colors" {
		t.Errorf("pushed %q, want Colors", ps.Title())
	}
}

func TestHomeScreen_HistoryEntry(t *testing.T) {
	h := New(Deps{Banks: testBanks(t)})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected a push")
	}
	if _, ok := push.Screen.(*history.HistoryScreen); !ok {
		t.Errorf("pushed %T, want *history.HistoryScreen", push.Screen)
	}
}

func TestHomeScreen_LoadsStats(t *testing.T) {
	repo := openStore(t)
	record(t, repo, "s1", "colors", 1, 1)
	record(t, repo, "s2", "verbs", 0, 1)

	h := New(Deps{Banks: testBanks(t), Repo: repo})
	cmd := h.Init()
	if cmd == nil {
		t.Fatal("expected a stats load command")
	}
	h.Update(cmd())

	if h.sum.played != 2 || h.sum.perfect != 1 || h.sum.banks != 2 {
		t.Errorf("summary = %+v, want 2 played, 1 perfect, 2 banks", h.sum)
	}
	if !strings.Contains(h.menu.Items[0].Hint, "best 1/1") {
		t.Errorf("hint = %q, want the best score", h.menu.Items[0].Hint)
	}
	if mascotFor(h.sum) != MascotCelebrating {
		t.Error("expected the celebrating mascot after a perfect score")
	}
}

func TestHomeScreen_ResumeReloads(t *testing.T) {
	h := New(Deps{Banks: testBanks(t), Repo: openStore(t)})
	if h.Resume() == nil {
		t.Error("expected Resume to reload stats")
	}
	if New(Deps{}).Resume() != nil {
		t.Error("expected no reload without a repo")
	}
}

func TestHomeScreen_EmptyBanner(t *testing.T) {
	h := New(Deps{BankDir: "/tmp/banks"})
	view := h.View(120, 40)
	if !strings.Contains(view, "No quizzes found") {
		t.Error("expected the empty banner")
	}
	if mascotFor(h.sum) != MascotSleepy {
		t.Error("expected the sleepy mascot before any play")
	}
}

func TestHomeScreen_View(t *testing.T) {
	h := New(Deps{Banks: testBanks(t)})
	for _, size := range [][2]int{{120, 40}, {60, 20}} {
		if h.View(size[0], size[1]) == "" {
			t.Errorf("empty view at %v", size)
		}
	}
}

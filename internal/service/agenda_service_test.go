package service

import (
	"context"
	"errors"
	"planshare/internal/domain"
	"testing"
	"time"
)

var agendaNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func agendaFixture() (*AgendaService, *fakeShareRepo, *fakeTaskRepo) {
	shares := newFakeShareRepo()
	tasks := newFakeTaskRepo()
	principals := newFakePrincipalRepo(owner, recipient, stranger)
	return NewAgendaService(shares, tasks, principals), shares, tasks
}

func TestBuildUpcomingMergesOwnAndShared(t *testing.T) {
	svc, shares, tasks := agendaFixture()

	ownSoon := seedTask(tasks, domain.Task{
		OwnerID: recipient.ID, Title: "own tomorrow",
		ScheduledAt: agendaNow.Add(24 * time.Hour),
	})
	seedTask(tasks, domain.Task{
		OwnerID: recipient.ID, Title: "own beyond horizon",
		ScheduledAt: agendaNow.Add(10 * 24 * time.Hour),
	})
	seedTask(tasks, domain.Task{
		OwnerID: recipient.ID, Title: "own in the past",
		ScheduledAt: agendaNow.Add(-time.Hour),
	})
	sharedToday := seedTask(tasks, domain.Task{
		OwnerID: owner.ID, Title: "shared today",
		ScheduledAt: agendaNow.Add(2 * time.Hour),
	})
	// Завтрашние задачи владельца в агенду получателя не попадают
	seedTask(tasks, domain.Task{
		OwnerID: owner.ID, Title: "shared tomorrow",
		ScheduledAt: agendaNow.Add(24 * time.Hour),
	})

	seedShare(shares, domain.Share{
		OwnerID: owner.ID, RecipientID: recipient.ID,
		Permission: domain.PermissionEdit, ScopeType: domain.ScopeFull,
		State: domain.StateAccepted,
	})

	items, err := svc.BuildUpcoming(context.Background(), recipient.ID, agendaNow, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("build upcoming: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	// Отсортировано по времени: сегодняшняя чужая задача раньше завтрашней своей
	if items[0].Task.ID != sharedToday {
		t.Fatalf("expected shared task first, got %q", items[0].Title)
	}
	if !items[0].IsShared {
		t.Fatal("expected shared item to be tagged")
	}
	if items[0].OwnerName != owner.Username {
		t.Fatalf("expected owner name %q, got %q", owner.Username, items[0].OwnerName)
	}
	if items[0].Permission != domain.PermissionEdit {
		t.Fatalf("expected granted permission on item, got %q", items[0].Permission)
	}

	if items[1].Task.ID != ownSoon {
		t.Fatalf("expected own task second, got %q", items[1].Title)
	}
	if items[1].IsShared {
		t.Fatal("own item must not be tagged as shared")
	}
}

func TestBuildUpcomingTieBreak(t *testing.T) {
	svc, shares, tasks := agendaFixture()

	at := agendaNow.Add(3 * time.Hour)
	ownTask := seedTask(tasks, domain.Task{
		OwnerID: recipient.ID, Title: "own", ScheduledAt: at,
	})
	sharedA := seedTask(tasks, domain.Task{
		ID: "aaaa-shared", OwnerID: owner.ID, Title: "shared a", ScheduledAt: at,
	})
	sharedB := seedTask(tasks, domain.Task{
		ID: "bbbb-shared", OwnerID: owner.ID, Title: "shared b", ScheduledAt: at,
	})

	seedShare(shares, domain.Share{
		OwnerID: owner.ID, RecipientID: recipient.ID,
		Permission: domain.PermissionView, ScopeType: domain.ScopeFull,
		State: domain.StateAccepted,
	})

	items, err := svc.BuildUpcoming(context.Background(), recipient.ID, agendaNow, 24*time.Hour)
	if err != nil {
		t.Fatalf("build upcoming: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Task.ID != ownTask {
		t.Fatal("expected own task first at identical timestamp")
	}
	if items[1].Task.ID != sharedA || items[2].Task.ID != sharedB {
		t.Fatal("expected shared items ordered by task id")
	}
}

func TestSharedEventsScopeAndDanglingIDs(t *testing.T) {
	svc, shares, tasks := agendaFixture()

	selected := seedTask(tasks, domain.Task{
		OwnerID: owner.ID, Title: "selected",
		ScheduledAt: agendaNow.Add(time.Hour),
	})
	seedTask(tasks, domain.Task{
		OwnerID: owner.ID, Title: "not selected",
		ScheduledAt: agendaNow.Add(time.Hour),
	})

	// Удалённая задача в выборке — не ошибка, просто вне области действия
	seedShare(shares, domain.Share{
		OwnerID: owner.ID, RecipientID: recipient.ID,
		Permission: domain.PermissionView, ScopeType: domain.ScopeSelective,
		SelectedTaskIDs: []string{selected, "deleted-task-id"},
		State:           domain.StateAccepted,
	})

	items, err := svc.ListSharedEvents(context.Background(), recipient.ID, agendaNow)
	if err != nil {
		t.Fatalf("list shared events: %v", err)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].Task.ID != selected {
		t.Fatalf("expected selected task, got %q", items[0].Title)
	}
}

func TestSharedEventsRequireAcceptedShare(t *testing.T) {
	svc, shares, tasks := agendaFixture()

	seedTask(tasks, domain.Task{
		OwnerID: owner.ID, Title: "today",
		ScheduledAt: agendaNow.Add(time.Hour),
	})
	seedShare(shares, domain.Share{
		OwnerID: owner.ID, RecipientID: recipient.ID,
		Permission: domain.PermissionView, ScopeType: domain.ScopeFull,
		State: domain.StatePending,
	})

	items, err := svc.ListSharedEvents(context.Background(), recipient.ID, agendaNow)
	if err != nil {
		t.Fatalf("list shared events: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected no items for a pending share, got %d", len(items))
	}
}

func TestSharedEventsSkipUnavailableOwner(t *testing.T) {
	svc, shares, tasks := agendaFixture()

	reachable := seedTask(tasks, domain.Task{
		OwnerID: owner.ID, Title: "reachable",
		ScheduledAt: agendaNow.Add(time.Hour),
	})
	tasks.failOwners[stranger.ID] = errors.New("task store unavailable")

	seedShare(shares, domain.Share{
		OwnerID: owner.ID, RecipientID: recipient.ID,
		Permission: domain.PermissionView, ScopeType: domain.ScopeFull,
		State: domain.StateAccepted,
	})
	seedShare(shares, domain.Share{
		OwnerID: stranger.ID, RecipientID: recipient.ID,
		Permission: domain.PermissionView, ScopeType: domain.ScopeFull,
		State: domain.StateAccepted,
	})

	items, err := svc.ListSharedEvents(context.Background(), recipient.ID, agendaNow)
	if err != nil {
		t.Fatalf("list shared events: %v", err)
	}
	if len(items) != 1 || items[0].Task.ID != reachable {
		t.Fatalf("expected only the reachable owner's task, got %d items", len(items))
	}
}

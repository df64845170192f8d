package ews

import (
	"context"
	"testing"
)

func TestDisplayAddressUsesGroupWhenSet(t *testing.T) {
	group := &Mailbox{address: "team@example.com"}
	owner := &Mailbox{address: "leader@example.com", group: group}

	if owner.DisplayAddress() != "team@example.com" {
		t.Fatalf("expected group address, got %s", owner.DisplayAddress())
	}
	if group.DisplayAddress() != "team@example.com" {
		t.Fatalf("expected own address, got %s", group.DisplayAddress())
	}
}

func TestResolvePublicDLExpandsToLeaves(t *testing.T) {
	server := newFakeEWSServer([]route{
		{contains: "m:ExpandDL", response: expandDLTwoMembersResponse},
	})
	defer server.Close()

	list := &Mailbox{session: sessionAgainst(server), address: "list@example.com", mailboxType: MailboxTypePublicDL}
	leaves := Resolve(context.Background(), list)

	if len(leaves) != 2 {
		t.Fatalf("expected 2 leaves, got %d", len(leaves))
	}
}

func TestResolveGroupMailboxFollowsOwner(t *testing.T) {
	server := newFakeEWSServer([]route{
		{contains: "m:ExpandDL", response: expandDLOwnerResponse},
	})
	defer server.Close()

	group := &Mailbox{session: sessionAgainst(server), address: "team@example.com", mailboxType: MailboxTypeGroupMailbox}
	leaves := Resolve(context.Background(), group)

	if len(leaves) != 1 || leaves[0].address != "leader@example.com" {
		t.Fatalf("expected [leader@example.com], got %v", leaves)
	}
}

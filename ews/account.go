package ews

import (
	"context"

	"github.com/beevik/etree"
)

// Account holds an ordered, non-empty sequence of Sessions for a multi-tenant
// deployment. GetMailbox tries each in turn and returns the first successful
// resolution; an address absent from every session is MailboxNotFound.
type Account struct {
	sessions []*Session
}

// NewAccount builds an Account from one or more credential sets, tried in
// the given order.
func NewAccount(sessions ...*Session) *Account {
	return &Account{sessions: sessions}
}

// GetMailbox resolves address against each session in order, per §4.4:
// MailboxNotFound on a session means try the next one; any other error
// aborts the lookup.
func (a *Account) GetMailbox(ctx context.Context, address string) (*Mailbox, error) {
	var lastErr error
	for _, session := range a.sessions {
		mb, err := session.resolveName(ctx, address)
		if err == nil {
			return mb, nil
		}
		if err == ErrMailboxNotFound {
			lastErr = err
			continue
		}
		return nil, err
	}
	if lastErr == nil {
		lastErr = ErrMailboxNotFound
	}
	return nil, lastErr
}

// resolveName issues ResolveNames for smtp:<address> with no impersonation
// and, on a match, returns a Mailbox bound to this session.
func (s *Session) resolveName(ctx context.Context, address string) (*Mailbox, error) {
	request := etree.NewElement("m:ResolveNames")
	request.CreateAttr("ReturnFullContactData", "false")
	unresolved := request.CreateElement("m:UnresolvedEntry")
	unresolved.SetText("smtp:" + address)

	body, err := s.sendResolving(ctx, request, "")
	if err != nil {
		return nil, err
	}

	mailboxEl := body.FindElement(".//" + qname(namespaceTypes, "Mailbox"))
	if mailboxEl == nil {
		return nil, ErrMailboxNotFound
	}
	return parseMailbox(s, mailboxEl, nil), nil
}

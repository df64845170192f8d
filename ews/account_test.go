package ews

import (
	"context"
	"testing"
)

const mailboxFoundResponse = `<?xml version="1.0"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"
               xmlns:m="http://schemas.microsoft.com/exchange/services/2006/messages"
               xmlns:t="http://schemas.microsoft.com/exchange/services/2006/types">
  <soap:Body>
    <m:ResolveNamesResponse>
      <m:ResponseMessages>
        <m:ResolveNamesResponseMessage ResponseClass="Success">
          <m:ResponseCode>NoError</m:ResponseCode>
          <m:ResolutionSet>
            <m:Resolution>
              <t:Mailbox>
                <t:EmailAddress>u@y.com</t:EmailAddress>
                <t:MailboxType>Mailbox</t:MailboxType>
              </t:Mailbox>
            </m:Resolution>
          </m:ResolutionSet>
        </m:ResolveNamesResponseMessage>
      </m:ResponseMessages>
    </m:ResolveNamesResponse>
  </soap:Body>
</soap:Envelope>`

const mailboxNotFoundResponse = `<?xml version="1.0"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"
               xmlns:m="http://schemas.microsoft.com/exchange/services/2006/messages">
  <soap:Body>
    <m:ResolveNamesResponse>
      <m:ResponseMessages>
        <m:ResolveNamesResponseMessage ResponseClass="Error">
          <m:ResponseCode>ErrorNameResolutionNoResults</m:ResponseCode>
        </m:ResolveNamesResponseMessage>
      </m:ResponseMessages>
    </m:ResolveNamesResponse>
  </soap:Body>
</soap:Envelope>`

// TestAccountGetMailboxFailsOverToNextSession covers S5: an address absent
// from the first tenant is found on the second.
func TestAccountGetMailboxFailsOverToNextSession(t *testing.T) {
	serverX := newFakeEWSServer([]route{{contains: "ResolveNames", response: mailboxNotFoundResponse}})
	defer serverX.Close()
	serverY := newFakeEWSServer([]route{{contains: "ResolveNames", response: mailboxFoundResponse}})
	defer serverY.Close()

	account := NewAccount(sessionAgainst(serverX), sessionAgainst(serverY))

	mb, err := account.GetMailbox(context.Background(), "u@y.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mb.Address() != "u@y.com" {
		t.Fatalf("expected u@y.com, got %s", mb.Address())
	}
	if mb.session.baseURL != serverY.URL {
		t.Fatal("expected mailbox bound to the second session")
	}
}

func TestAccountGetMailboxNotFoundEverywhere(t *testing.T) {
	server := newFakeEWSServer([]route{{contains: "ResolveNames", response: mailboxNotFoundResponse}})
	defer server.Close()

	account := NewAccount(sessionAgainst(server))
	if _, err := account.GetMailbox(context.Background(), "ghost@example.com"); err != ErrMailboxNotFound {
		t.Fatalf("expected ErrMailboxNotFound, got %v", err)
	}
}

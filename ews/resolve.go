package ews

import "context"

// Address is the mailbox's primary SMTP address.
func (m *Mailbox) Address() string {
	return m.address
}

// MailboxType is the EWS-reported classification of this mailbox.
func (m *Mailbox) MailboxType() string {
	return m.mailboxType
}

// Resolve expands mailbox into the flat set of mailboxes it ultimately
// delivers to: PublicDL and GroupMailbox entries are expanded recursively,
// everything else is reported as a leaf. Grounded on the original Python
// implementation's resolve_name, generalized from distribution-list-only expansion to the
// full mailbox_type dispatch used by Remediate, and guarded against cyclic
// membership with a visited-address set (resolve_name guards the same way
// against resolving the same address twice).
func Resolve(ctx context.Context, mailbox *Mailbox) []*Mailbox {
	visited := make(map[string]bool)
	return resolve(ctx, mailbox, visited)
}

func resolve(ctx context.Context, mailbox *Mailbox, visited map[string]bool) []*Mailbox {
	if visited[mailbox.address] {
		return nil
	}
	visited[mailbox.address] = true

	switch mailbox.mailboxType {
	case MailboxTypeGroupMailbox:
		owner, err := mailbox.GetOwner(ctx)
		if err != nil {
			return nil
		}
		return resolve(ctx, owner, visited)
	case MailboxTypePublicDL:
		members, err := mailbox.Expand(ctx)
		if err != nil {
			return nil
		}
		var leaves []*Mailbox
		for _, member := range members {
			leaves = append(leaves, resolve(ctx, member, visited)...)
		}
		return leaves
	default:
		return []*Mailbox{mailbox}
	}
}

package ews

import (
	"context"

	"github.com/beevik/etree"
)

// Remediation actions (§4.7).
const (
	ActionDelete  = "delete"
	ActionRestore = "restore"
)

// RunState carries the two sets threaded through one Remediate call by
// reference: the ordered per-address results, and the set of message-ids
// already investigated for forwards. Allocating a fresh RunState per public
// call (rather than a shared default) is deliberate — see §9 — so that
// concurrent top-level runs against independent Accounts never share
// traversal state.
type RunState struct {
	Results        *ResultSet
	SeenMessageIDs map[string]bool
}

func newRunState() *RunState {
	return &RunState{
		Results:        newResultSet(),
		SeenMessageIDs: make(map[string]bool),
	}
}

// Delete remediates by soft-deleting messageID from every mailbox it
// reached.
func (m *Mailbox) Delete(ctx context.Context, messageID string) *ResultSet {
	return m.Remediate(ctx, ActionDelete, messageID)
}

// Restore remediates by moving messageID out of Recoverable Items back into
// the Inbox of every mailbox it reached.
func (m *Mailbox) Restore(ctx context.Context, messageID string) *ResultSet {
	return m.Remediate(ctx, ActionRestore, messageID)
}

// Remediate is the public entry point (§4.7): a fresh RunState is allocated
// per call, then threaded by reference through the recursive traversal.
func (m *Mailbox) Remediate(ctx context.Context, action, messageID string) *ResultSet {
	state := newRunState()
	m.remediate(ctx, action, messageID, state)
	return state.Results
}

// remediate implements the idempotence gate and the dispatch-by-mailbox-type
// described in §4.7.
func (m *Mailbox) remediate(ctx context.Context, action, messageID string, state *RunState) {
	display := m.DisplayAddress()
	if m.group == nil && state.Results.Has(display) {
		return
	}
	result := state.Results.Get(display)
	if result == nil {
		result = state.Results.Allocate(display, m.mailboxType)
	}

	switch m.mailboxType {
	case MailboxTypeGroupMailbox:
		m.remediateGroupMailbox(ctx, action, messageID, state, result)
	case MailboxTypePublicDL:
		m.remediatePublicDL(ctx, action, messageID, state, result)
	case MailboxTypeMailbox:
		m.remediateMailbox(ctx, action, messageID, state, result)
	default:
		result.Success = false
		result.Message = "Mailbox not found"
	}
}

func (m *Mailbox) remediateGroupMailbox(ctx context.Context, action, messageID string, state *RunState, result *RemediationResult) {
	owner, err := m.GetOwner(ctx)
	if err != nil {
		result.Success = false
		result.Message = err.Error()
		return
	}
	result.Owner = owner.address
	owner.remediate(ctx, action, messageID, state)
}

func (m *Mailbox) remediatePublicDL(ctx context.Context, action, messageID string, state *RunState, result *RemediationResult) {
	members, err := m.Expand(ctx)
	if err != nil {
		result.Success = false
		result.Message = err.Error()
		return
	}

	addresses := make([]string, len(members))
	for i, member := range members {
		addresses[i] = member.address
	}
	result.Members = addresses

	for _, member := range members {
		member.remediate(ctx, action, messageID, state)
	}
}

func (m *Mailbox) remediateMailbox(ctx context.Context, action, messageID string, state *RunState, result *RemediationResult) {
	var folder *Folder
	if action == ActionRestore {
		folder = m.RecoverableItems()
	} else {
		var err error
		folder, err = m.AllItems(ctx)
		if err != nil {
			result.Success = false
			result.Message = err.Error()
			return
		}
	}

	messages, err := folder.Find(ctx, messageID)
	if err != nil {
		result.Success = false
		result.Message = err.Error()
		return
	}

	if len(messages) == 0 {
		result.Message = "Message not found"
		if action == ActionRestore {
			result.Success = false
		}
		return
	}

	forwards, err := m.findRecipients(ctx, messages, messageID, state)
	if err != nil {
		result.Success = false
		result.Message = err.Error()
		return
	}

	if err := m.applyAction(ctx, action, messages); err != nil {
		result.Success = false
		result.Message = err.Error()
		return
	}
	if action == ActionDelete {
		result.Message = "deleted"
	} else {
		result.Message = "restored"
	}

	if len(forwards) > 0 {
		addresses := make([]string, len(forwards))
		for i, f := range forwards {
			addresses[i] = f.address
		}
		result.Forwards = addresses
	}

	for _, fwd := range forwards {
		fwd.remediate(ctx, action, messageID, state)
	}
}

// applyAction issues the DeleteItem or MoveItem request covering every found
// message, impersonating the owning mailbox.
func (m *Mailbox) applyAction(ctx context.Context, action string, messages []*Message) error {
	var request *etree.Element
	if action == ActionDelete {
		request = etree.NewElement("m:DeleteItem")
		request.CreateAttr("DeleteType", "SoftDelete")
	} else {
		request = etree.NewElement("m:MoveItem")
		toFolderID := request.CreateElement("m:ToFolderId")
		toFolderID.AddChild(distinguishedFolderID("inbox"))
	}

	itemIds := request.CreateElement("m:ItemIds")
	for _, msg := range messages {
		itemIds.AddChild(msg.itemID())
	}

	_, err := m.session.sendOperation(ctx, request, m.address)
	return err
}

// findRecipients implements §4.7's FindRecipients: a single GetItem fetching
// ToRecipients/CcRecipients/BccRecipients for messages whose message-id has
// not yet been investigated this run. Marking messageID seen happens before
// the call, not after (§9's open question): a transport failure on GetItem
// still leaves it marked, bounding worst-case work at the cost of possibly
// missing forwards on that one failure.
//
// The recipient fields are identical across every mailbox holding a copy of
// the same message-id (it is the same piece of mail), so messageID rather
// than the individual Message is the right de-duplication key: once this
// call has run for a given message-id anywhere in the run, it need not run
// again.
func (m *Mailbox) findRecipients(ctx context.Context, messages []*Message, messageID string, state *RunState) ([]*Mailbox, error) {
	if state.SeenMessageIDs[messageID] {
		return nil, nil
	}
	state.SeenMessageIDs[messageID] = true

	getItem := etree.NewElement("m:GetItem")

	itemShape := getItem.CreateElement("m:ItemShape")
	baseShape := itemShape.CreateElement("t:BaseShape")
	baseShape.SetText("IdOnly")

	additionalProperties := itemShape.CreateElement("t:AdditionalProperties")
	for _, field := range []string{"message:ToRecipients", "message:CcRecipients", "message:BccRecipients"} {
		fieldURI := additionalProperties.CreateElement("t:FieldURI")
		fieldURI.CreateAttr("FieldURI", field)
	}

	itemIds := getItem.CreateElement("m:ItemIds")
	for _, msg := range messages {
		itemIds.AddChild(msg.itemID())
	}

	body, err := m.session.sendOperation(ctx, getItem, m.address)
	if err != nil {
		return nil, err
	}

	seenAddress := make(map[string]bool)
	var recipients []*Mailbox
	for _, field := range []string{"ToRecipients", "CcRecipients", "BccRecipients"} {
		for _, container := range body.FindElements(".//" + qname(namespaceTypes, field)) {
			for _, mailboxEl := range container.FindElements(qname(namespaceTypes, "Mailbox")) {
				mb := parseMailbox(m.session, mailboxEl, nil)
				if mb.address == "" || seenAddress[mb.address] {
					continue
				}
				seenAddress[mb.address] = true
				recipients = append(recipients, mb)
			}
		}
	}
	return recipients, nil
}

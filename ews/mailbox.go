package ews

import (
	"context"
	"fmt"

	"github.com/beevik/etree"
)

// Mailbox types recognized by the remediation dispatch (spec §3, §9). Any
// value outside this closed set is treated as an external/other recipient
// and is not remediable.
const (
	MailboxTypeMailbox      = "Mailbox"
	MailboxTypePublicDL     = "PublicDL"
	MailboxTypeGroupMailbox = "GroupMailbox"
)

// Mailbox is the resolved identity of a recipient. It is ephemeral: created
// per request, never cached across runs, and bound to the Session that
// resolved it.
type Mailbox struct {
	session     *Session
	address     string
	mailboxType string

	// group is the Mailbox through which this one was discovered, set only
	// for a GroupMailbox's owner. A weak back-reference, not shared
	// ownership: it exists so the owner's remediation result is keyed on
	// the group's address instead of the owner's own.
	group *Mailbox
}

// DisplayAddress is group.address when group is set, else address.
func (m *Mailbox) DisplayAddress() string {
	if m.group != nil {
		return m.group.address
	}
	return m.address
}

// AllItems issues FindFolder for the system search folder containing every
// item the mailbox owns, since Exchange exposes no distinguished folder for
// that. Impersonates the mailbox's own address.
func (m *Mailbox) AllItems(ctx context.Context) (*Folder, error) {
	findFolder := etree.NewElement("m:FindFolder")
	findFolder.CreateAttr("Traversal", "Shallow")

	folderShape := findFolder.CreateElement("m:FolderShape")
	baseShape := folderShape.CreateElement("t:BaseShape")
	baseShape.SetText("IdOnly")

	findFolder.AddChild(isEqualTo("folder:DisplayName", "AllItems"))

	parentFolderIds := findFolder.CreateElement("m:ParentFolderIds")
	parentFolderIds.AddChild(distinguishedFolderID("root"))

	body, err := m.session.sendOperation(ctx, findFolder, m.address)
	if err != nil {
		return nil, err
	}

	folderID := body.FindElement(".//" + qname(namespaceTypes, "FolderId"))
	if folderID == nil {
		return nil, fmt.Errorf("FindFolder for %s returned no FolderId", m.address)
	}
	return &Folder{mailbox: m, idElement: folderID.Copy()}, nil
}

// RecoverableItems is the distinguished "recoverableitemsdeletions" folder,
// the source of restore.
func (m *Mailbox) RecoverableItems() *Folder {
	return &Folder{mailbox: m, idElement: distinguishedFolderID("recoverableitemsdeletions")}
}

// Expand issues ExpandDL and returns a Mailbox for every member, bound to
// the same session, with no group back-reference.
func (m *Mailbox) Expand(ctx context.Context) ([]*Mailbox, error) {
	body, err := m.session.sendResolving(ctx, buildExpandDL(m.address), "")
	if err != nil {
		return nil, err
	}

	var members []*Mailbox
	for _, el := range body.FindElements(".//" + qname(namespaceTypes, "Mailbox")) {
		members = append(members, parseMailbox(m.session, el, nil))
	}
	return members, nil
}

// GetOwner issues the same ExpandDL call and returns the first member whose
// MailboxType is Mailbox, with group set to self. Group mailboxes are not
// directly impersonable, so remediation runs as the owner instead.
func (m *Mailbox) GetOwner(ctx context.Context) (*Mailbox, error) {
	body, err := m.session.sendResolving(ctx, buildExpandDL(m.address), "")
	if err != nil {
		return nil, err
	}

	for _, el := range body.FindElements(".//" + qname(namespaceTypes, "Mailbox")) {
		candidate := parseMailbox(m.session, el, m)
		if candidate.mailboxType == MailboxTypeMailbox {
			return candidate, nil
		}
	}
	return nil, ErrMailboxNotFound
}

func buildExpandDL(address string) *etree.Element {
	request := etree.NewElement("m:ExpandDL")
	mailbox := request.CreateElement("m:Mailbox")
	emailAddress := mailbox.CreateElement("t:EmailAddress")
	emailAddress.SetText(address)
	return request
}

// parseMailbox reads address/type out of a <t:Mailbox> subtree returned by
// ResolveNames, ExpandDL, or a recipient field of GetItem.
func parseMailbox(session *Session, el *etree.Element, group *Mailbox) *Mailbox {
	mb := &Mailbox{session: session, group: group}
	if addr := el.FindElement(qname(namespaceTypes, "EmailAddress")); addr != nil {
		mb.address = addr.Text()
	}
	if typ := el.FindElement(qname(namespaceTypes, "MailboxType")); typ != nil {
		mb.mailboxType = typ.Text()
	}
	return mb
}

func distinguishedFolderID(name string) *etree.Element {
	el := etree.NewElement("t:DistinguishedFolderId")
	el.CreateAttr("Id", name)
	return el
}

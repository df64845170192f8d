package ews

import (
	"context"

	"github.com/beevik/etree"
)

// Folder is a server-side folder handle: either a well-known
// DistinguishedFolderId or an opaque FolderId returned by a search. Bound to
// a Mailbox for impersonation routing.
type Folder struct {
	mailbox   *Mailbox
	idElement *etree.Element
}

// Find issues FindItem restricted to message:InternetMessageId == messageID,
// impersonating the owning mailbox.
func (f *Folder) Find(ctx context.Context, messageID string) ([]*Message, error) {
	findItem := etree.NewElement("m:FindItem")
	findItem.CreateAttr("Traversal", "Shallow")

	itemShape := findItem.CreateElement("m:ItemShape")
	baseShape := itemShape.CreateElement("t:BaseShape")
	baseShape.SetText("IdOnly")

	findItem.AddChild(isEqualTo("message:InternetMessageId", messageID))

	parentFolderIds := findItem.CreateElement("m:ParentFolderIds")
	parentFolderIds.AddChild(f.idElement.Copy())

	body, err := f.mailbox.session.sendOperation(ctx, findItem, f.mailbox.address)
	if err != nil {
		return nil, err
	}

	var messages []*Message
	for _, el := range body.FindElements(".//" + qname(namespaceTypes, "ItemId")) {
		messages = append(messages, &Message{
			id:        el.SelectAttrValue("Id", ""),
			changeKey: el.SelectAttrValue("ChangeKey", ""),
		})
	}
	return messages, nil
}

package ews

import "github.com/beevik/etree"

// Message is an opaque ItemId/ChangeKey pair returned by FindItem, used
// verbatim in subsequent GetItem/DeleteItem/MoveItem calls.
type Message struct {
	id        string
	changeKey string
}

// itemID builds a fresh <t:ItemId> element for this message. Called once per
// request that embeds it, since an etree element can only be attached under
// one parent at a time.
func (msg *Message) itemID() *etree.Element {
	el := etree.NewElement("t:ItemId")
	el.CreateAttr("Id", msg.id)
	el.CreateAttr("ChangeKey", msg.changeKey)
	return el
}

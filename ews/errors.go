package ews

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// Error kinds produced by decoding an EWS ResponseCode (spec §7).
var (
	// ErrMailboxNotFound means the address does not resolve, or resolves to
	// an external mailbox.
	ErrMailboxNotFound = errors.New("mailbox not found")
	// ErrMessageNotFound is decoded from an ErrorItemNotFound ResponseCode.
	// A FindItem that matches nothing returns no error and an empty result.
	ErrMessageNotFound = errors.New("message not found")
	// ErrMissingResponseCode means the response carried no ResponseCode at
	// all — a protocol-level bug. GetMailbox returns it to the caller; inside
	// a remediation run it is recorded on the affected address like any other
	// per-branch failure.
	ErrMissingResponseCode = errors.New("EWS response carries no ResponseCode")
)

// UnknownError wraps any ResponseCode the decoder doesn't special-case.
type UnknownError struct {
	Code string
}

func (e *UnknownError) Error() string {
	return fmt.Sprintf("EWS error: %s", e.Code)
}

// findResponseCode locates the first ResponseCode element under either the
// messages or the errors namespace, per spec §4.2.
func findResponseCode(root *etree.Element) (string, bool) {
	if el := root.FindElement(".//" + qname(namespaceMessages, "ResponseCode")); el != nil {
		return el.Text(), true
	}
	if el := root.FindElement(".//" + qname(namespaceErrors, "ResponseCode")); el != nil {
		return el.Text(), true
	}
	return "", false
}

// decodeError is the generic decoder used by every request except the
// resolving ones (ResolveNames, ExpandDL). ErrorNameResolutionNoResults is
// non-fatal here; only a resolving-context caller treats it as
// ErrMailboxNotFound (see decodeResolveError).
func decodeError(root *etree.Element) error {
	code, ok := findResponseCode(root)
	if !ok {
		return ErrMissingResponseCode
	}
	switch code {
	case "NoError", "ErrorNameResolutionNoResults":
		return nil
	case "ErrorItemNotFound":
		return ErrMessageNotFound
	default:
		return &UnknownError{Code: code}
	}
}

// decodeResolveError is used by ResolveNames and ExpandDL, where
// ErrorNameResolutionNoResults, ErrorNonExistentMailbox, and
// ErrorMailboxNotFound all mean the same thing: the address didn't resolve
// on this session.
func decodeResolveError(root *etree.Element) error {
	code, ok := findResponseCode(root)
	if !ok {
		return ErrMissingResponseCode
	}
	switch code {
	case "NoError":
		return nil
	case "ErrorNameResolutionNoResults", "ErrorNonExistentMailbox", "ErrorMailboxNotFound":
		return ErrMailboxNotFound
	case "ErrorItemNotFound":
		return ErrMessageNotFound
	default:
		return &UnknownError{Code: code}
	}
}

package ews

// The four XML namespaces used across every EWS SOAP request and response.
const (
	namespaceSOAP     = "http://schemas.xmlsoap.org/soap/envelope/"
	namespaceMessages = "http://schemas.microsoft.com/exchange/services/2006/messages"
	namespaceTypes    = "http://schemas.microsoft.com/exchange/services/2006/types"
	namespaceErrors   = "http://schemas.microsoft.com/exchange/services/2006/errors"
)

// qname builds the Clark-notation form ({uri}local) beevik/etree uses to
// address an element irrespective of the prefix the server happened to use.
func qname(namespace, local string) string {
	return "{" + namespace + "}" + local
}

package ews

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Azure/go-ntlmssp"
	"github.com/beevik/etree"

	"github.com/phishfry/phishfry/internal/phishlog"
)

// AuthMode selects how a Session authenticates to the EWS endpoint.
type AuthMode string

const (
	// AuthBasic is the default and the only mode spec.md requires: HTTP
	// Basic auth over TLS, matching the target protocol surface.
	AuthBasic AuthMode = "basic"
	// AuthNTLM negotiates NTLM instead, for on-premises Exchange servers
	// that reject Basic. OAuth remains explicitly out of scope.
	AuthNTLM AuthMode = "ntlm"
)

// SessionConfig describes one credential set, as loaded from the INI config.
type SessionConfig struct {
	Server   string
	User     string
	Pass     string
	Version  string
	Timezone string
	AuthMode AuthMode
	Timeout  time.Duration
}

const (
	defaultVersion  = "Exchange2016"
	defaultTimezone = "UTC"
	defaultTimeout  = 60 * time.Second
)

// Session wraps one credential set. It is immutable after construction.
type Session struct {
	server   string
	version  string
	timezone string
	user     string
	pass     string
	baseURL  string
	client   *http.Client
}

// NewSession builds a Session from a SessionConfig, applying the documented
// defaults for any field left zero.
func NewSession(cfg SessionConfig) *Session {
	version := cfg.Version
	if version == "" {
		version = defaultVersion
	}
	timezone := cfg.Timezone
	if timezone == "" {
		timezone = defaultTimezone
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}

	var transport http.RoundTripper
	if cfg.AuthMode == AuthNTLM {
		transport = ntlmssp.Negotiator{RoundTripper: &http.Transport{}}
	}

	return &Session{
		server:   cfg.Server,
		version:  version,
		timezone: timezone,
		user:     cfg.User,
		pass:     cfg.Pass,
		baseURL:  fmt.Sprintf("https://%s/EWS/Exchange.asmx", cfg.Server),
		client:   &http.Client{Timeout: timeout, Transport: transport},
	}
}

// send wraps request in a SOAP envelope carrying the RequestServerVersion
// and TimeZoneContext headers, plus the ExchangeImpersonation header and
// X-AnchorMailbox header when impersonate is non-empty. It posts the result,
// decodes the response with decode, and returns the parsed soap:Body
// element, which contains the operation's own response element.
func (s *Session) send(ctx context.Context, request *etree.Element, impersonate string, decode func(*etree.Element) error) (*etree.Element, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	envelope := doc.CreateElement("soap:Envelope")
	envelope.CreateAttr("xmlns:soap", namespaceSOAP)
	envelope.CreateAttr("xmlns:m", namespaceMessages)
	envelope.CreateAttr("xmlns:t", namespaceTypes)

	header := envelope.CreateElement("soap:Header")

	version := header.CreateElement("t:RequestServerVersion")
	version.CreateAttr("Version", s.version)

	anchorMailbox := ""
	if impersonate != "" {
		impersonation := header.CreateElement("t:ExchangeImpersonation")
		connectingSID := impersonation.CreateElement("t:ConnectingSID")
		primarySmtp := connectingSID.CreateElement("t:PrimarySmtpAddress")
		primarySmtp.SetText(impersonate)
		anchorMailbox = impersonate
	}

	timezoneContext := header.CreateElement("t:TimeZoneContext")
	timezoneDefinition := timezoneContext.CreateElement("t:TimeZoneDefinition")
	timezoneDefinition.CreateAttr("Id", s.timezone)

	body := envelope.CreateElement("soap:Body")
	body.AddChild(request)

	doc.Indent(2)
	requestXML, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("serializing SOAP request: %w", err)
	}

	phishlog.Debug("ews", string(requestXML))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(requestXML))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "text/xml; charset=utf-8")
	httpReq.SetBasicAuth(s.user, s.pass)
	if anchorMailbox != "" {
		httpReq.Header.Set("X-AnchorMailbox", anchorMailbox)
	}

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("posting to %s: %w", s.baseURL, err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("EWS server at %s returned HTTP %d", s.baseURL, httpResp.StatusCode)
	}

	responseDoc := etree.NewDocument()
	if _, err := responseDoc.ReadFrom(httpResp.Body); err != nil {
		return nil, fmt.Errorf("parsing SOAP response: %w", err)
	}
	responseRoot := responseDoc.Root()
	if responseRoot == nil {
		return nil, fmt.Errorf("empty SOAP response from %s", s.baseURL)
	}

	if err := decode(responseRoot); err != nil {
		return nil, err
	}

	responseBody := responseRoot.FindElement(".//" + qname(namespaceSOAP, "Body"))
	if responseBody == nil {
		return nil, fmt.Errorf("SOAP response has no Body")
	}
	phishlog.Debug("ews", "%s -> %s", request.Tag, responseBody.Tag)
	return responseBody, nil
}

// sendResolving is like send but uses decodeResolveError, for ResolveNames
// and ExpandDL, where ErrorNameResolutionNoResults means MailboxNotFound.
func (s *Session) sendResolving(ctx context.Context, request *etree.Element, impersonate string) (*etree.Element, error) {
	return s.send(ctx, request, impersonate, decodeResolveError)
}

// sendOperation is like send but uses the generic decoder.
func (s *Session) sendOperation(ctx context.Context, request *etree.Element, impersonate string) (*etree.Element, error) {
	return s.send(ctx, request, impersonate, decodeError)
}

package ews

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
)

// route pairs a substring to look for in the outgoing request body with the
// canned SOAP response to return when it matches. Routes are tried in
// order; the first match wins, and a route can match any number of times.
type route struct {
	contains string
	response string
}

// newFakeEWSServer starts an httptest server that dispatches on request body
// content, standing in for a real EWS endpoint across a whole remediation
// run (ResolveNames, FindFolder, FindItem, GetItem, DeleteItem/MoveItem,
// ExpandDL all share one URL in real EWS too).
func newFakeEWSServer(routes []route) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		text := string(body)
		for _, rt := range routes {
			if strings.Contains(text, rt.contains) {
				w.Header().Set("Content-Type", "text/xml")
				w.Write([]byte(rt.response))
				return
			}
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
}

func sessionAgainst(server *httptest.Server) *Session {
	session := NewSession(SessionConfig{Server: "ignored", User: "u", Pass: "p"})
	session.baseURL = server.URL
	return session
}

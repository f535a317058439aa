package client

import (
	"fmt"
	"net/http"

	"golang.org/x/net/http/httpguts"
)

// validateHeaders rejects header names and values that net/http would refuse
// to send, so that New fails instead of every request.
func validateHeaders(h http.Header) error {
	for name, values := range h {
		if !httpguts.ValidHeaderFieldName(name) {
			return fmt.Errorf("invalid header name %q", name)
		}
		for _, v := range values {
			if !httpguts.ValidHeaderFieldValue(v) {
				return fmt.Errorf("invalid value for header %q", name)
			}
		}
	}
	return nil
}

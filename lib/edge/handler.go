package edge

import (
	"context"
	"errors"
)

// ErrNoRecords is returned for an event without records.
var ErrNoRecords = errors.New("edge event has no records")

// RewriteHost sets the host header to the custom origin's domain name so the
// origin sees its own host instead of the viewer-facing one. Requests without a
// custom origin domain are returned as is.
func RewriteHost(req *Request) *Request {
	if req == nil || req.Origin == nil || req.Origin.Custom == nil || req.Origin.Custom.DomainName == "" {
		return req
	}
	if req.Headers == nil {
		req.Headers = make(map[string][]Header, 1)
	}
	req.Headers[HostHeaderName] = []Header{{Key: HostHeaderKey, Value: req.Origin.Custom.DomainName}}
	return req
}

// Handle applies RewriteHost to the first record's request.
func Handle(_ context.Context, event Event) (*Request, error) {
	if len(event.Records) == 0 {
		return nil, ErrNoRecords
	}
	return RewriteHost(&event.Records[0].CF.Request), nil
}

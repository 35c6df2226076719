package reader

import (
	"net/http"
	"strconv"
)

// Content types negotiated with the reader service.
const (
	AcceptJSON        = "application/json"
	AcceptEventStream = "text/event-stream"
)

// Reader request headers.
const (
	HeaderNoCache           = "X-No-Cache"
	HeaderTimeout           = "X-Timeout"
	HeaderTargetSelector    = "X-Target-Selector"
	HeaderWaitForSelector   = "X-Wait-For-Selector"
	HeaderRemoveSelector    = "X-Remove-Selector"
	HeaderWithLinksSummary  = "X-With-Links-Summary"
	HeaderWithImagesSummary = "X-With-Images-Summary"
	HeaderWithGeneratedAlt  = "X-With-Generated-Alt"
	HeaderWithIframe        = "X-With-Iframe"
)

// BuildHeaders maps validated arguments to reader request headers.
// Boolean options are sent as "true" only when set; a false option is
// omitted rather than sent as "false".
func BuildHeaders(args ReadURLArgs, apiKey string) http.Header {
	h := make(http.Header)
	h.Set("Authorization", "Bearer "+apiKey)
	h.Set("Accept", args.Accept())

	setFlag(h, HeaderNoCache, args.NoCache)
	if args.Timeout != nil {
		h.Set(HeaderTimeout, strconv.FormatFloat(*args.Timeout, 'f', -1, 64))
	}
	setString(h, HeaderTargetSelector, args.TargetSelector)
	setString(h, HeaderWaitForSelector, args.WaitForSelector)
	setString(h, HeaderRemoveSelector, args.RemoveSelector)
	setFlag(h, HeaderWithLinksSummary, args.WithLinksSummary)
	setFlag(h, HeaderWithImagesSummary, args.WithImagesSummary)
	setFlag(h, HeaderWithGeneratedAlt, args.WithGeneratedAlt)
	setFlag(h, HeaderWithIframe, args.WithIframe)

	return h
}

func setFlag(h http.Header, key string, on bool) {
	if on {
		h.Set(key, "true")
	}
}

func setString(h http.Header, key string, v *string) {
	if v != nil {
		h.Set(key, *v)
	}
}

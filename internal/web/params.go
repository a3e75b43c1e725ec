package web

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jpl-au/glossd/internal/search"
)

// Request parameters. They carry a gs_ prefix so the widget can be embedded
// in a host page without colliding with the host's own parameters; course
// belongs to the host.
const (
	ParamQuery      = "gs_q"
	ParamPage       = "gs_page"
	ParamWholeWord  = "gs_wholeword"
	ParamCollection = "gs_gid"
	ParamCourse     = "course"
)

// ParseRequest reads a search request from URL parameters. Malformed numbers
// read as 0, the page is clamped to [0, search.MaxPage] and the query is
// trimmed; nothing here fails.
func ParseRequest(v url.Values) search.Request {
	return search.Request{
		Query:        strings.TrimSpace(v.Get(ParamQuery)),
		Page:         int(min(max(intParam(v, ParamPage), 0), search.MaxPage)),
		WholeWord:    boolParam(v, ParamWholeWord),
		CollectionID: intParam(v, ParamCollection),
		OwnerScopeID: intParam(v, ParamCourse),
	}
}

// Values encodes req back into URL parameters, dropping zero values.
func Values(req search.Request) url.Values {
	v := url.Values{}
	v.Set(ParamQuery, req.Query)
	if req.WholeWord {
		v.Set(ParamWholeWord, "1")
	}
	if req.CollectionID > 0 {
		v.Set(ParamCollection, strconv.FormatInt(req.CollectionID, 10))
	}
	if req.OwnerScopeID > 0 {
		v.Set(ParamCourse, strconv.FormatInt(req.OwnerScopeID, 10))
	}
	if req.Page > 0 {
		v.Set(ParamPage, strconv.Itoa(req.Page))
	}
	return v
}

func intParam(v url.Values, key string) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(v.Get(key)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func boolParam(v url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(v.Get(key))) {
	case "1", "true", "on", "yes", "checked":
		return true
	}
	return false
}

package trace

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Format is the output encoding of trace events.
type Format uint8

const (
	FormatAuto   Format = iota // by file extension, text otherwise
	FormatText                 // human-readable
	FormatNDJSON               // newline-delimited JSON
)

// ParseFormat accepts auto, text, ndjson and json (an alias of ndjson).
func ParseFormat(s string) (Format, error) {
	if f, ok := formatNames[strings.ToLower(s)]; ok {
		return f, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

var formatNames = map[string]Format{
	"":       FormatAuto,
	"auto":   FormatAuto,
	"text":   FormatText,
	"ndjson": FormatNDJSON,
	"json":   FormatNDJSON,
}

// FormatEvent encodes ev; the result always ends with a newline.
func FormatEvent(ev *Event, format Format) []byte {
	if format == FormatNDJSON {
		return formatNDJSON(ev)
	}
	return formatText(ev)
}

type jsonEvent struct {
	Time     string            `json:"time"`
	Seq      uint64            `json:"seq"`
	Kind     string            `json:"kind"`
	Scope    string            `json:"scope"`
	SpanID   uint64            `json:"span_id"`
	ParentID uint64            `json:"parent_id,omitempty"`
	GID      uint64            `json:"gid,omitempty"`
	Name     string            `json:"name"`
	Detail   string            `json:"detail,omitempty"`
	Extra    map[string]string `json:"extra,omitempty"`
}

func formatNDJSON(ev *Event) []byte {
	data, err := json.Marshal(jsonEvent{
		Time:     ev.Time.Format("2006-01-02T15:04:05.000000Z07:00"),
		Seq:      ev.Seq,
		Kind:     ev.Kind.String(),
		Scope:    ev.Scope.String(),
		SpanID:   ev.SpanID,
		ParentID: ev.ParentID,
		GID:      ev.GID,
		Name:     ev.Name,
		Detail:   ev.Detail,
		Extra:    ev.Extra,
	})
	if err != nil {
		return []byte("{}\n")
	}
	return append(data, '\n')
}

var kindGlyphs = map[Kind]string{
	KindSpanBegin: "→",
	KindSpanEnd:   "←",
	KindPoint:     "•",
	KindHeartbeat: "♡",
}

// formatText: "15:04:05.000 [scope] → name (detail) {k=v}"; child events
// are indented by two spaces.
func formatText(ev *Event) []byte {
	buf := ev.Time.AppendFormat(nil, "15:04:05.000")
	indent := ""
	if ev.ParentID > 0 {
		indent = "  "
	}
	buf = fmt.Appendf(buf, " [%s] %s", ev.Scope, indent)
	if g, ok := kindGlyphs[ev.Kind]; ok {
		buf = append(buf, g+" "...)
	}
	buf = append(buf, ev.Name...)
	if ev.Detail != "" {
		buf = fmt.Appendf(buf, " (%s)", ev.Detail)
	}
	if len(ev.Extra) > 0 {
		pairs := make([]string, 0, len(ev.Extra))
		for _, k := range slices.Sorted(maps.Keys(ev.Extra)) {
			pairs = append(pairs, k+"="+ev.Extra[k])
		}
		buf = fmt.Appendf(buf, " {%s}", strings.Join(pairs, ", "))
	}
	return append(buf, '\n')
}

// Package pdflinks reads hyperlink targets out of raw PDF bytes by walking
// the document's URI action dictionaries. Link annotations survive even
// when text extraction mangles the visible URL, which makes them the most
// reliable URL source a tender PDF has.
//
// This is a deliberately small reader: it scans object dictionaries for
// /URI entries, inflating FlateDecode streams so links inside compressed
// object streams are found too. It does not attempt full PDF parsing.
package pdflinks

import (
	"bytes"
	"compress/zlib"
	"io"
	"regexp"
)

// uriEntry matches /URI (target) inside an action dictionary. PDF literal
// strings may escape parentheses with a backslash.
var uriEntry = regexp.MustCompile(`/URI\s*\(((?:\\.|[^\\)])*)\)`)

var streamMarker = []byte("stream")
var endstreamMarker = []byte("endstream")

// Extract returns the URI targets found in the document, in byte order,
// uncompressed objects first and inflated stream contents after. Returns
// nil for anything that is not recognizably a PDF.
func Extract(raw []byte) []string {
	if !bytes.HasPrefix(raw, []byte("%PDF-")) {
		return nil
	}

	var uris []string
	uris = append(uris, scanURIs(raw)...)

	// Compressed object streams can hide annotation dictionaries.
	for _, stream := range rawStreams(raw) {
		inflated, err := inflate(stream)
		if err != nil {
			continue
		}
		uris = append(uris, scanURIs(inflated)...)
	}

	var out []string
	seen := make(map[string]bool)
	for _, u := range uris {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		out = append(out, u)
	}
	return out
}

// scanURIs collects unescaped /URI string targets from a byte region.
func scanURIs(data []byte) []string {
	var uris []string
	for _, m := range uriEntry.FindAllSubmatch(data, -1) {
		uris = append(uris, unescape(m[1]))
	}
	return uris
}

// rawStreams returns the byte ranges between stream/endstream keywords.
func rawStreams(raw []byte) [][]byte {
	var streams [][]byte
	rest := raw
	for {
		start := bytes.Index(rest, streamMarker)
		if start < 0 {
			break
		}
		body := rest[start+len(streamMarker):]
		// The keyword is followed by an EOL before the stream data.
		body = bytes.TrimPrefix(body, []byte("\r\n"))
		body = bytes.TrimPrefix(body, []byte("\n"))
		end := bytes.Index(body, endstreamMarker)
		if end < 0 {
			break
		}
		streams = append(streams, body[:end])
		rest = body[end+len(endstreamMarker):]
	}
	return streams
}

// inflate decompresses a FlateDecode stream body.
func inflate(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// unescape resolves the PDF literal-string escapes that matter for URIs.
func unescape(s []byte) string {
	var b bytes.Buffer
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
			switch s[i] {
			case '(', ')', '\\':
				b.WriteByte(s[i])
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte('\\')
				b.WriteByte(s[i])
			}
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

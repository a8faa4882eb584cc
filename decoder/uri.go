package decoder

import (
	"errors"
	"fmt"
	"strings"
)

const wrapScheme = "wrap://"

// ErrInvalidURI is returned for decoder references that are not wrap URIs.
var ErrInvalidURI = errors.New("invalid wrap uri")

// URI is a parsed decoder reference, e.g. wrap://ipfs/Qm... or wrap://ens/decoder.eth.
type URI struct {
	Authority string
	Path      string
}

func (u URI) String() string {
	return wrapScheme + u.Authority + "/" + u.Path
}

// ParseURI parses a decoder reference. The scheme may be omitted ("ens/decoder.eth").
func ParseURI(ref string) (URI, error) {
	rest := strings.TrimPrefix(strings.TrimSpace(ref), wrapScheme)
	if strings.Contains(rest, "://") {
		return URI{}, fmt.Errorf("%w %q: unsupported scheme", ErrInvalidURI, ref)
	}

	authority, path, ok := strings.Cut(rest, "/")
	if !ok || authority == "" || path == "" {
		return URI{}, fmt.Errorf("%w %q: expected wrap://<authority>/<path>", ErrInvalidURI, ref)
	}

	return URI{Authority: authority, Path: path}, nil
}

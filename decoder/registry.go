package decoder

import (
	"errors"
	"fmt"
	"strings"
)

// ENSDecoderRef is the wrapper that describes ENS App transactions. Its source lives at
// https://github.com/dorgjelli/ens-decoder.
const ENSDecoderRef = "wrap://ipfs/QmQNDqGHFDfyhoWrMewq8riHsqQzCSHS4eN9cRXHww3gkM"

// Entry associates Safe Apps whose origin URL contains AppURLSubstring with a decoder.
type Entry struct {
	AppURLSubstring string `mapstructure:"app_url_substring" yaml:"app_url_substring" json:"appUrlSubstring"`
	DecoderRef      string `mapstructure:"decoder_ref" yaml:"decoder_ref" json:"decoderRef"`
}

// DefaultEntries is the built-in decoder table.
func DefaultEntries() []Entry {
	return []Entry{
		{AppURLSubstring: "ens.domains", DecoderRef: ENSDecoderRef},
	}
}

// Registry is an ordered, read-only table of decoders. The first matching entry wins, so
// entry order is significant. A Registry is safe for concurrent use.
type Registry struct {
	entries []Entry
}

// NewRegistry validates entries and builds a Registry that keeps their order.
func NewRegistry(entries []Entry) (*Registry, error) {
	var errs []error
	for i, e := range entries {
		if e.AppURLSubstring == "" {
			errs = append(errs, fmt.Errorf("entry %d: app url substring cannot be empty", i))
		}
		if _, err := ParseURI(e.DecoderRef); err != nil {
			errs = append(errs, fmt.Errorf("entry %d (%s): %w", i, e.AppURLSubstring, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	return &Registry{entries: append([]Entry(nil), entries...)}, nil
}

// MustNewRegistry is NewRegistry that panics on invalid entries.
func MustNewRegistry(entries []Entry) *Registry {
	r, err := NewRegistry(entries)
	if err != nil {
		panic(err)
	}

	return r
}

// DefaultRegistry returns a Registry of DefaultEntries.
func DefaultRegistry() *Registry {
	return MustNewRegistry(DefaultEntries())
}

// Lookup returns the decoder of the first entry whose substring is contained in appURL.
// Matching is plain substring containment.
func (r *Registry) Lookup(appURL string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, e := range r.entries {
		if strings.Contains(appURL, e.AppURLSubstring) {
			return e.DecoderRef, true
		}
	}

	return "", false
}

// Entries returns a copy of the table in lookup order.
func (r *Registry) Entries() []Entry {
	if r == nil {
		return nil
	}

	return append([]Entry(nil), r.entries...)
}

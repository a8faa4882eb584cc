package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Lookup(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry()

	tests := []struct {
		name    string
		appURL  string
		wantRef string
		wantOK  bool
	}{
		{
			name:    "ens app",
			appURL:  "https://app.ens.domains/tx",
			wantRef: ENSDecoderRef,
			wantOK:  true,
		},
		{
			name:    "bare ens domain",
			appURL:  "https://ens.domains",
			wantRef: ENSDecoderRef,
			wantOK:  true,
		},
		{
			name:    "substring anywhere in the url matches",
			appURL:  "https://evil.example/?redirect=ens.domains",
			wantRef: ENSDecoderRef,
			wantOK:  true,
		},
		{
			name:   "unknown app",
			appURL: "https://unknown.example",
		},
		{
			name:   "empty url",
			appURL: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ref, ok := reg.Lookup(tt.appURL)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRef, ref)
		})
	}
}

func TestRegistry_FirstEntryWins(t *testing.T) {
	t.Parallel()

	first := "wrap://ens/app-decoder.eth"
	second := "wrap://ens/ens-decoder.eth"

	reg, err := NewRegistry([]Entry{
		{AppURLSubstring: "app.ens", DecoderRef: first},
		{AppURLSubstring: "ens.domains", DecoderRef: second},
	})
	require.NoError(t, err)

	ref, ok := reg.Lookup("https://app.ens.domains")
	require.True(t, ok)
	assert.Equal(t, first, ref)

	reversed, err := NewRegistry([]Entry{
		{AppURLSubstring: "ens.domains", DecoderRef: second},
		{AppURLSubstring: "app.ens", DecoderRef: first},
	})
	require.NoError(t, err)

	ref, ok = reversed.Lookup("https://app.ens.domains")
	require.True(t, ok)
	assert.Equal(t, second, ref)
}

func TestNewRegistry_Validation(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry([]Entry{
		{AppURLSubstring: "", DecoderRef: ENSDecoderRef},
		{AppURLSubstring: "uniswap", DecoderRef: "ipfs"},
	})
	require.Error(t, err)
	require.ErrorContains(t, err, "entry 0: app url substring cannot be empty")
	require.ErrorContains(t, err, "entry 1 (uniswap)")
	require.ErrorIs(t, err, ErrInvalidURI)

	assert.Panics(t, func() {
		MustNewRegistry([]Entry{{AppURLSubstring: "x", DecoderRef: ""}})
	})
}

func TestRegistry_EntriesIsACopy(t *testing.T) {
	t.Parallel()

	entries := DefaultEntries()
	reg := MustNewRegistry(entries)
	entries[0].DecoderRef = "wrap://ens/changed.eth"

	got := reg.Entries()
	require.Len(t, got, 1)
	assert.Equal(t, ENSDecoderRef, got[0].DecoderRef)

	got[0].AppURLSubstring = "mutated"
	ref, ok := reg.Lookup("https://app.ens.domains")
	require.True(t, ok)
	assert.Equal(t, ENSDecoderRef, ref)
}

func TestRegistry_NilAndEmpty(t *testing.T) {
	t.Parallel()

	var nilReg *Registry
	_, ok := nilReg.Lookup("https://app.ens.domains")
	assert.False(t, ok)
	assert.Nil(t, nilReg.Entries())

	empty := MustNewRegistry(nil)
	_, ok = empty.Lookup("https://app.ens.domains")
	assert.False(t, ok)
}

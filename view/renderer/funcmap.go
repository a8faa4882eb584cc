package renderer

import (
	"math/big"
	"strings"
	"text/template"

	"github.com/smartcontractkit/safe-txdetails/format"
	"github.com/smartcontractkit/safe-txdetails/view"
)

const nilValue = "<nil>"

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"plain":           plainText,
		"markdown":        format.Markdown,
		"truncateAddress": truncateAddress,
		"amount":          amount,
		"actions":         joinActions,
		"add":             func(a, b int) int { return a + b },
	}
}

// plainText drops the emphasis of a formatted description.
func plainText(segments []format.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteString(seg.Text)
	}

	return sb.String()
}

// truncateAddress shortens a long address for display.
func truncateAddress(addr string) string {
	if strings.HasPrefix(addr, "0x") && len(addr) > 12 {
		return addr[:6] + ".." + addr[len(addr)-4:]
	}
	if len(addr) > 12 {
		return addr[:4] + ".." + addr[len(addr)-3:]
	}

	return addr
}

// amount groups the digits of a wei amount. Values that are not decimal integers are
// returned unchanged.
func amount(v any) string {
	var num *big.Int
	switch val := v.(type) {
	case *big.Int:
		if val == nil {
			return nilValue
		}
		num = val
	case string:
		var ok bool
		if num, ok = new(big.Int).SetString(val, 10); !ok {
			return val
		}
	default:
		return nilValue
	}

	s := num.String()
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = strings.TrimPrefix(s, "-")
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.WriteString(sign)
	for i, ch := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteRune(',')
		}
		b.WriteRune(ch)
	}

	return b.String()
}

func joinActions(actions []view.Action) string {
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		parts = append(parts, string(a))
	}

	return strings.Join(parts, ", ")
}

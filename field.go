package csvbind

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the declared type of one field position. The decoder is
// directed by Kind alone; the Go type each value materializes as is listed
// per constant.
type Kind uint8

const (
	// KindString yields string. Quoted-cell handling applies to string
	// fields only.
	KindString Kind = iota
	// KindBool yields bool. The first significant character decides:
	// y/t/1 are true, n/f/0 are false, anything else fails.
	KindBool
	// KindInt yields int.
	KindInt
	// KindInt64 yields int64.
	KindInt64
	// KindUint64 yields uint64.
	KindUint64
	// KindFloat64 yields float64.
	KindFloat64
)

var kindNames = map[Kind]string{
	KindString:  "string",
	KindBool:    "bool",
	KindInt:     "int",
	KindInt64:   "int64",
	KindUint64:  "uint64",
	KindFloat64: "float64",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// ParseKind maps a textual kind name (as used in CLI schema documents) to
// its Kind. Recognized names: string, bool, int, int64, uint64, float64.
func ParseKind(name string) (Kind, error) {
	for k, s := range kindNames {
		if s == name {
			return k, nil
		}
	}
	return 0, Issues{{Path: "/", Code: CodeParseError, Message: fmt.Sprintf("unknown field kind %q", name)}}
}

// zeroOf returns the kind's zero value.
func zeroOf(k Kind) any {
	switch k {
	case KindString:
		return ""
	case KindBool:
		return false
	case KindInt:
		return 0
	case KindInt64:
		return int64(0)
	case KindUint64:
		return uint64(0)
	case KindFloat64:
		return float64(0)
	}
	return nil
}

// decodeCell converts one raw cell into a value of kind k. An empty cell is
// the kind's zero value and never an error. Non-string kinds parse the
// longest valid leading token after skipping leading blanks; trailing
// unconsumed characters are tolerated, a cell with no valid leading token
// fails. Callers substitute the zero value on failure.
func decodeCell(cell string, k Kind) (any, error) {
	if cell == "" {
		return zeroOf(k), nil
	}
	if k == KindString {
		return cell, nil
	}

	s := strings.TrimLeft(cell, " \t")
	if s == "" {
		return zeroOf(k), decodeErr(k, cell)
	}

	switch k {
	case KindBool:
		switch s[0] {
		case 'y', 'Y', 't', 'T', '1':
			return true, nil
		case 'n', 'N', 'f', 'F', '0':
			return false, nil
		}
		return false, decodeErr(k, cell)
	case KindInt:
		tok := leadingInt(s)
		v, err := strconv.ParseInt(tok, 10, strconv.IntSize)
		if err != nil {
			return 0, decodeErr(k, cell)
		}
		return int(v), nil
	case KindInt64:
		v, err := strconv.ParseInt(leadingInt(s), 10, 64)
		if err != nil {
			return int64(0), decodeErr(k, cell)
		}
		return v, nil
	case KindUint64:
		v, err := strconv.ParseUint(strings.TrimPrefix(leadingInt(s), "+"), 10, 64)
		if err != nil {
			return uint64(0), decodeErr(k, cell)
		}
		return v, nil
	case KindFloat64:
		v, err := strconv.ParseFloat(leadingFloat(s), 64)
		if err != nil {
			return float64(0), decodeErr(k, cell)
		}
		return v, nil
	}
	return nil, decodeErr(k, cell)
}

func decodeErr(k Kind, cell string) error {
	return Issues{{
		Path:    "/",
		Code:    CodeCellDecode,
		Message: fmt.Sprintf("cannot decode %q as %s", cell, k),
	}}
}

// leadingInt returns the longest prefix of s that looks like a signed
// decimal integer. The prefix may be empty or a lone sign; strconv rejects
// those downstream.
func leadingInt(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return s[:i]
}

// leadingFloat returns the longest prefix of s that parses as a decimal
// floating point number, including an optional exponent.
func leadingFloat(s string) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits = true
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits = true
		}
	}
	if digits && i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		expDigits := false
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
			expDigits = true
		}
		if expDigits {
			i = j
		}
	}
	return s[:i]
}

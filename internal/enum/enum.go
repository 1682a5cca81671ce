// Package enum bridges numeric codes decoded from a feed to domain enumerations.
//
// A code on the wire is either absent, a bare integer the schema does not name,
// a member of the schema's enumeration, or text that is not an integer at all.
// Decode maps these onto a domain enumeration and is the only place where
// unknown-code semantics are defined:
//
//	bare integer n   -> D(n)
//	wire member w    -> D(w)
//	absent           -> missing
//	invalid text     -> missing (DecodeStrict: ErrUnknownCode)
//
// A resulting value that is not a member of D is reported as ErrUnknownCode.
package enum

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownCode is returned when a code has no member in the target enumeration.
var ErrUnknownCode = errors.New("unknown enumeration code")

// Code is implemented by every wire and domain enumeration.
type Code interface {
	~int
	Valid() bool
}

type state uint8

const (
	stateAbsent state = iota
	stateInt
	stateWire
	stateInvalid
)

// Raw is a wire code of enumeration W as decoded from a feed.
type Raw[W Code] struct {
	value int
	text  string
	state state
}

// Absent returns a code that was not present on the wire.
func Absent[W Code]() Raw[W] {
	return Raw[W]{}
}

// Int returns a bare integer code, whether or not W names it.
func Int[W Code](n int) Raw[W] {
	return Raw[W]{value: n, state: stateInt}
}

// Wire returns a code that is a member of W.
func Wire[W Code](w W) Raw[W] {
	return Raw[W]{value: int(w), state: stateWire}
}

// Invalid returns a present code whose text is not an integer in range.
func Invalid[W Code](text string) Raw[W] {
	return Raw[W]{text: text, state: stateInvalid}
}

// Parse classifies n the way the feed decoder does: members of W become wire
// codes, everything else stays a bare integer.
func Parse[W Code](n int) Raw[W] {
	if W(n).Valid() {
		return Wire(W(n))
	}
	return Int[W](n)
}

// IsAbsent reports whether the code was missing or empty on the wire.
func (r Raw[W]) IsAbsent() bool {
	return r.state == stateAbsent
}

// IsInvalid reports whether the code was present but unreadable.
func (r Raw[W]) IsInvalid() bool {
	return r.state == stateInvalid
}

// Text returns the wire text of an invalid code.
func (r Raw[W]) Text() string {
	return r.text
}

// Wire returns the code as a member of W.
func (r Raw[W]) Wire() (W, bool) {
	if r.state != stateWire {
		return 0, false
	}
	return W(r.value), true
}

// Int returns the numeric value of a readable code.
func (r Raw[W]) Int() (int, bool) {
	if r.state == stateAbsent || r.state == stateInvalid {
		return 0, false
	}
	return r.value, true
}

func (r Raw[W]) String() string {
	switch r.state {
	case stateAbsent:
		return "<absent>"
	case stateInvalid:
		return strconv.Quote(r.text)
	}
	return strconv.Itoa(r.value)
}

// UnmarshalXML decodes the element text. Empty text is absent; text that is
// not an int is kept as an invalid code.
func (r *Raw[W]) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := d.DecodeElement(&s, &start); err != nil {
		return err
	}

	s = strings.TrimSpace(s)
	if s == "" {
		*r = Absent[W]()
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		*r = Invalid[W](s)
		return nil
	}

	*r = Parse[W](n)
	return nil
}

// UnknownCodeError describes a code that is not a member of Type. Text is set
// instead of Code when the wire value was not an integer.
type UnknownCodeError struct {
	Type string
	Code int
	Text string
}

func (e *UnknownCodeError) Error() string {
	if e.Text != "" {
		return fmt.Sprintf("%s: %s has no member %q", ErrUnknownCode, e.Type, e.Text)
	}
	return fmt.Sprintf("%s: %s has no member %d", ErrUnknownCode, e.Type, e.Code)
}

func (e *UnknownCodeError) Unwrap() error {
	return ErrUnknownCode
}

// Decode converts a wire code into domain enumeration D, using missing when the
// code is absent or invalid.
func Decode[D Code, W Code](src Raw[W], missing D) (D, error) {
	n := int(missing)
	if v, ok := src.Int(); ok {
		n = v
	}

	d := D(n)
	if !d.Valid() {
		return missing, &UnknownCodeError{Type: fmt.Sprintf("%T", d), Code: n}
	}
	return d, nil
}

// DecodeStrict is Decode for codes that may only fall back when absent: an
// invalid code is an UnknownCodeError.
func DecodeStrict[D Code, W Code](src Raw[W], missing D) (D, error) {
	if src.IsInvalid() {
		return missing, &UnknownCodeError{Type: fmt.Sprintf("%T", missing), Text: src.Text()}
	}
	return Decode(src, missing)
}

// Bridge binds a wire enumeration to a domain enumeration and its missing value.
type Bridge[W Code, D Code] struct {
	Missing D
}

// NewBridge creates a bridge that falls back to missing for absent codes.
func NewBridge[W Code, D Code](missing D) Bridge[W, D] {
	return Bridge[W, D]{Missing: missing}
}

// Decode converts src using the bridge's missing value.
func (b Bridge[W, D]) Decode(src Raw[W]) (D, error) {
	return Decode(src, b.Missing)
}

// DecodeStrict converts src, rejecting invalid codes.
func (b Bridge[W, D]) DecodeStrict(src Raw[W]) (D, error) {
	return DecodeStrict(src, b.Missing)
}

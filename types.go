package jstnlab

import (
	"fmt"
	"strings"
)

// Role identifies one of the two buffers.
type Role int

const (
	RoleTypeDeclaration Role = iota // JSTN text.
	RoleDataDocument                // JSON text.
)

// Roles lists both roles in display order.
var Roles = [...]Role{RoleTypeDeclaration, RoleDataDocument}

// Other returns the counterpart role.
func (r Role) Other() Role {
	if r == RoleTypeDeclaration {
		return RoleDataDocument
	}
	return RoleTypeDeclaration
}

func (r Role) valid() bool { return r == RoleTypeDeclaration || r == RoleDataDocument }

func (r Role) String() string {
	switch r {
	case RoleTypeDeclaration:
		return "jstn"
	case RoleDataDocument:
		return "json"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Title is the document name shown to users.
func (r Role) Title() string { return strings.ToUpper(r.String()) }

// ParseRole accepts "jstn"/"type" and "json"/"data", case-insensitively.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jstn", "type":
		return RoleTypeDeclaration, nil
	case "json", "data":
		return RoleDataDocument, nil
	}
	return 0, fmt.Errorf("jstnlab: unknown role %q", s)
}

func (r Role) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Severity expresses how an input irregularity is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseSeverity accepts "ignore", "warn" and "error".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ignore":
		return Ignore, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	}
	return 0, fmt.Errorf("jstnlab: unknown severity %q", s)
}

// Strictness configures enforcement for irregular JSON input.
type Strictness struct {
	OnDuplicateKey Severity // JSON itself permits duplicates; the last one wins.
}

// ParseOpt bundles data document parsing options. The zero value accepts
// anything JSON accepts.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
}

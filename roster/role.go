package roster

import (
	"fmt"
	"strings"
)

// Role is a player's assigned function within a party.
type Role uint8

const (
	RedDPS Role = iota
	BlueDPS
	Healer
	MainTank
	Preceptor
	Feint
	SpiritDart

	NumRoles
)

var roleNames = [NumRoles]string{
	"Red DPS",
	"Blue DPS",
	"Healer",
	"Main Tank",
	"Preceptor",
	"Feint",
	"Spirit Dart",
}

var roleEmoji = [NumRoles]string{
	"🔴",
	"🔵",
	"💚",
	"🛡️",
	"📘",
	"🌀",
	"🎯",
}

// LeaderEmoji marks the party leader in rendered rosters.
const LeaderEmoji = "👑"

// AnyTank is the set of roles that satisfy a party's tank need.
var AnyTank = []Role{MainTank, BlueDPS}

// AnyDPS is the set of damage roles.
var AnyDPS = []Role{RedDPS, BlueDPS}

// Roles lists every role in display order.
func Roles() []Role {
	out := make([]Role, 0, NumRoles)
	for r := Role(0); r < NumRoles; r++ {
		out = append(out, r)
	}
	return out
}

func (r Role) Valid() bool {
	return r < NumRoles
}

func (r Role) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
	return roleNames[r]
}

func (r Role) Emoji() string {
	if !r.Valid() {
		return "❔"
	}
	return roleEmoji[r]
}

// ParseRole accepts a role name, case-insensitive.
func ParseRole(name string) (Role, error) {
	name = strings.TrimSpace(name)
	for r, n := range roleNames {
		if strings.EqualFold(n, name) {
			return Role(r), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRole, name)
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRole, uint8(r))
	}
	return []byte(roleNames[r]), nil
}

func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// RoleCounts is the per-role census of a party.
type RoleCounts [NumRoles]int

package disc

import (
	"fmt"
	"strconv"
	"strings"
)

// Component actions on a run's roster message.
const (
	ActSelectGroup   = "group"
	ActSelectRole    = "role"
	ActSetPassword   = "set-pass"
	ActPasswordModal = "pass-modal"
	ActReleasePass   = "release-pass"
	ActGetPassword   = "get-pass"
	ActLeave         = "leave"
	ActClaimLeader   = "claim-lead"
	ActRelinquish    = "relinquish-lead"
	ActPing          = "ping"
)

const customIDPrefix = "ba"

// CustomID is ba:<action>:<run>[:<group>].
type CustomID struct {
	Action string
	RunID  uint64
	Group  int
}

func MakeCustomID(action string, runID uint64) string {
	return fmt.Sprintf("%v:%v:%v", customIDPrefix, action, runID)
}

func MakeGroupCustomID(action string, runID uint64, group int) string {
	return fmt.Sprintf("%v:%v:%v:%v", customIDPrefix, action, runID, group)
}

func ParseCustomID(id string) (CustomID, bool) {
	parts := strings.Split(id, ":")
	if len(parts) < 3 || len(parts) > 4 || parts[0] != customIDPrefix {
		return CustomID{}, false
	}
	runID, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return CustomID{}, false
	}
	c := CustomID{Action: parts[1], RunID: runID, Group: -1}
	if len(parts) == 4 {
		g, err := strconv.Atoi(parts[3])
		if err != nil {
			return CustomID{}, false
		}
		c.Group = g
	}
	return c, true
}

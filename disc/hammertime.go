package disc

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"time"
)

/* Discord timestamp markup, <t:UNIX:STYLE> */
var hammertimeRe = regexp.MustCompile(`<t:(\d+):\w>`)

// ExtractTimestamps returns the distinct timestamps in content, oldest
// first.
func ExtractTimestamps(content string) []time.Time {
	seen := make(map[int64]bool)
	var out []time.Time
	for _, match := range hammertimeRe.FindAllStringSubmatch(content, -1) {
		stamp, err := strconv.ParseInt(match[1], 10, 64)
		if err != nil || seen[stamp] {
			continue
		}
		seen[stamp] = true
		out = append(out, time.Unix(stamp, 0).UTC())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// LatestTimestamp is the last timestamp in content, if any.
func LatestTimestamp(content string) (time.Time, bool) {
	stamps := ExtractTimestamps(content)
	if len(stamps) == 0 {
		return time.Time{}, false
	}
	return stamps[len(stamps)-1], true
}

func Hammertime(t time.Time) string {
	return fmt.Sprintf("<t:%v:R>", t.Unix())
}

func HammertimeDetailed(t time.Time) string {
	return fmt.Sprintf("<t:%v:F> (%v)", t.Unix(), Hammertime(t))
}

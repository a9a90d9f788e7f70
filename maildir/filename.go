package maildir

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/emersion/go-maildir"

	"github.com/infodancer/mailclean"
)

// namer generates delivery filenames unique across time, processes
// and hosts. The counter is per writer and never repeats a value.
type namer struct {
	counter  atomic.Uint64
	pid      int
	hostname string
	now      func() time.Time
}

func newNamer() *namer {
	return &namer{
		pid:      os.Getpid(),
		hostname: getHostname(),
		now:      time.Now,
	}
}

// next returns a fresh unique filename.
// Format: timestamp.pid_counter.hostname
// Example: 1705678901.12345_1.hostname
func (n *namer) next() string {
	counter := n.counter.Add(1)
	return fmt.Sprintf("%d.%d_%d.%s", n.now().Unix(), n.pid, counter, n.hostname)
}

// getHostname returns the sanitized system hostname.
func getHostname() string {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "localhost"
	}
	return sanitizeHostname(hostname)
}

// sanitizeHostname removes or replaces characters that are problematic in filenames.
func sanitizeHostname(hostname string) string {
	// Maildir reserves "/" and ":"; encode them as octal escapes.
	hostname = strings.ReplaceAll(hostname, "/", `\057`)
	hostname = strings.ReplaceAll(hostname, ":", `\072`)
	// Remove any other potentially problematic characters
	hostname = strings.ReplaceAll(hostname, "\x00", "")
	return hostname
}

// infoSuffix returns the ":2,<flags>" suffix for a cur/ filename.
// Flags are sorted as the maildir format requires.
func infoSuffix(flags []mailclean.Flag) string {
	runes := make([]rune, 0, len(flags))
	seen := make(map[mailclean.Flag]bool, len(flags))
	for _, f := range flags {
		if !seen[f] {
			seen[f] = true
			runes = append(runes, rune(f))
		}
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return ":2," + string(runes)
}

// parseInfo splits a maildir filename into its key and flags.
// Names without an info part, or with an experimental "1," info,
// have no flags.
func parseInfo(name string) (string, []maildir.Flag) {
	key, info, found := strings.Cut(name, ":")
	if !found {
		return key, nil
	}
	_, flagStr, ok := strings.Cut(info, ",")
	if !ok || !strings.HasPrefix(info, "2,") {
		return key, nil
	}
	var flags []maildir.Flag
	for _, r := range flagStr {
		flags = append(flags, maildir.Flag(r))
	}
	return key, flags
}

package maildir

import (
	"fmt"
	"os"
	"regexp"
	"testing"
	"time"

	"github.com/infodancer/mailclean"
)

func TestNamer_Format(t *testing.T) {
	n := newNamer()
	n.hostname = "mx1.example.com"
	n.now = func() time.Time { return time.Unix(1705678901, 0) }

	want := fmt.Sprintf("1705678901.%d_1.mx1.example.com", os.Getpid())
	if got := n.next(); got != want {
		t.Errorf("next() = %q, want %q", got, want)
	}
	want = fmt.Sprintf("1705678901.%d_2.mx1.example.com", os.Getpid())
	if got := n.next(); got != want {
		t.Errorf("second next() = %q, want %q", got, want)
	}
}

func TestNamer_Pattern(t *testing.T) {
	re := regexp.MustCompile(`^\d+\.\d+_\d+\.[^/:]+$`)
	n := newNamer()
	for i := 0; i < 3; i++ {
		if name := n.next(); !re.MatchString(name) {
			t.Errorf("name %q does not match %s", name, re)
		}
	}
}

func TestSanitizeHostname(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mail.example.com", "mail.example.com"},
		{"host/with/slash", `host\057with\057slash`},
		{"host:25", `host\07225`},
		{"nul\x00byte", "nulbyte"},
	}
	for _, tt := range tests {
		if got := sanitizeHostname(tt.in); got != tt.want {
			t.Errorf("sanitizeHostname(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestInfoSuffix(t *testing.T) {
	tests := []struct {
		flags []mailclean.Flag
		want  string
	}{
		{nil, ":2,"},
		{[]mailclean.Flag{mailclean.FlagSeen}, ":2,S"},
		{[]mailclean.Flag{mailclean.FlagSeen, mailclean.FlagFlagged}, ":2,FS"},
		{[]mailclean.Flag{mailclean.FlagSeen, mailclean.FlagSeen, mailclean.FlagReplied}, ":2,RS"},
	}
	for _, tt := range tests {
		if got := infoSuffix(tt.flags); got != tt.want {
			t.Errorf("infoSuffix(%q) = %q, want %q", tt.flags, got, tt.want)
		}
	}
}

func TestParseInfo(t *testing.T) {
	tests := []struct {
		name      string
		wantKey   string
		wantFlags string
	}{
		{"100.a.host", "100.a.host", ""},
		{"100.a.host:2,FS", "100.a.host", "FS"},
		{"100.a.host:2,", "100.a.host", ""},
		{"100.a.host:1,xyz", "100.a.host", ""},
	}
	for _, tt := range tests {
		key, flags := parseInfo(tt.name)
		var got string
		for _, f := range flags {
			got += string(rune(f))
		}
		if key != tt.wantKey || got != tt.wantFlags {
			t.Errorf("parseInfo(%q) = %q, %q; want %q, %q", tt.name, key, got, tt.wantKey, tt.wantFlags)
		}
	}
}

package object

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// String renders the identity in the canonical commit-header form:
// "<name> <email> <unix-timestamp> <±HHMM>".
func (i Ident) String() string {
	return fmt.Sprintf("%s <%s> %d %s", i.Name, i.Email, i.When, i.TZ)
}

// ParseIdent parses the canonical identity form. The name may contain
// spaces, so the line is consumed from the right: timezone, timestamp,
// then the angle-bracketed email.
func ParseIdent(s string) (Ident, error) {
	rest, tz, ok := cutLast(s, " ")
	if !ok || !validTZ(tz) {
		return Ident{}, fmt.Errorf("parse ident %q: missing timezone", s)
	}
	rest, tsStr, ok := cutLast(rest, " ")
	if !ok {
		return Ident{}, fmt.Errorf("parse ident %q: missing timestamp", s)
	}
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	if err != nil {
		return Ident{}, fmt.Errorf("parse ident %q: bad timestamp %q", s, tsStr)
	}
	if !strings.HasSuffix(rest, ">") {
		return Ident{}, fmt.Errorf("parse ident %q: missing email", s)
	}
	name, email, ok := cutLast(rest[:len(rest)-1], " <")
	if !ok {
		return Ident{}, fmt.Errorf("parse ident %q: missing email", s)
	}
	return Ident{Name: name, Email: email, When: ts, TZ: tz}, nil
}

func cutLast(s, sep string) (before, after string, found bool) {
	idx := strings.LastIndex(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

func validTZ(tz string) bool {
	if len(tz) != 5 || (tz[0] != '+' && tz[0] != '-') {
		return false
	}
	for i := 1; i < 5; i++ {
		if tz[i] < '0' || tz[i] > '9' {
			return false
		}
	}
	return true
}

// FormatTZ renders a time's UTC offset in the signed HHMM form used by
// commit headers.
func FormatTZ(t time.Time) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("%s%02d%02d", sign, offset/3600, (offset%3600)/60)
}

// MarshalCommit serializes a CommitObj into the commit text format:
//
//	tree <hash>
//	parent <hash>          (omitted for root commits)
//	author <ident>
//	committer <ident>
//	signature <encoded>    (only when the commit is signed)
//
//	<message>
func MarshalCommit(c *CommitObj) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "tree %s\n", string(c.TreeHash))
	if c.ParentHash != "" {
		fmt.Fprintf(&buf, "parent %s\n", string(c.ParentHash))
	}
	fmt.Fprintf(&buf, "author %s\n", c.Author)
	fmt.Fprintf(&buf, "committer %s\n", c.Committer)
	if strings.TrimSpace(c.Signature) != "" {
		fmt.Fprintf(&buf, "signature %s\n", c.Signature)
	}
	buf.WriteByte('\n')
	buf.WriteString(c.Message)
	return buf.Bytes()
}

// UnmarshalCommit parses a CommitObj from its serialized form. Headers
// end at the first blank line; each header line is a key, one space,
// then the value. Trailing whitespace of the message is trimmed.
func UnmarshalCommit(data []byte) (*CommitObj, error) {
	idx := bytes.Index(data, []byte("\n\n"))
	if idx < 0 {
		return nil, fmt.Errorf("parse commit: missing header/message separator")
	}
	header := string(data[:idx])
	message := string(data[idx+2:])

	c := &CommitObj{Message: strings.TrimRight(message, " \t\r\n")}
	for _, line := range strings.Split(header, "\n") {
		key, val, ok := strings.Cut(line, " ")
		if !ok {
			return nil, fmt.Errorf("parse commit: malformed header line %q", line)
		}
		switch key {
		case "tree":
			c.TreeHash = Hash(val)
		case "parent":
			c.ParentHash = Hash(val)
		case "author":
			ident, err := ParseIdent(val)
			if err != nil {
				return nil, fmt.Errorf("parse commit: author: %w", err)
			}
			c.Author = ident
		case "committer":
			ident, err := ParseIdent(val)
			if err != nil {
				return nil, fmt.Errorf("parse commit: committer: %w", err)
			}
			c.Committer = ident
		case "signature":
			c.Signature = val
		default:
			return nil, fmt.Errorf("parse commit: unknown header key %q", key)
		}
	}
	if c.TreeHash == "" {
		return nil, fmt.Errorf("parse commit: missing tree header")
	}
	return c, nil
}

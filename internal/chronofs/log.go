package chronofs

import (
	"fmt"
	"strings"
	"time"
)

// Log walks from HEAD's resolved commit backward via parent links,
// returning one text stanza per commit: digest, author, timestamp, a
// blank line, then the message indented by four spaces. An unborn HEAD
// yields a single informational stanza.
func (r *Repository) Log() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.RequireInitialized(); err != nil {
		return nil, err
	}

	head, err := r.resolveHEAD()
	if err != nil {
		return nil, err
	}
	if head == "" {
		return []string{"(no commits yet)\n"}, nil
	}

	var stanzas []string
	hash := head
	for hash != "" {
		c, err := r.store.ReadCommit(hash)
		if err != nil {
			return nil, err
		}

		var b strings.Builder
		fmt.Fprintf(&b, "commit %s\n", hash)
		fmt.Fprintf(&b, "Author: %s\n", c.Author)
		fmt.Fprintf(&b, "Date:   %s\n\n", time.Unix(c.Time, 0).UTC().Format(time.RFC1123Z))
		for _, line := range strings.Split(c.Message, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
		stanzas = append(stanzas, b.String())

		hash = c.Parent
	}

	return stanzas, nil
}

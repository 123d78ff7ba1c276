package spajsonpo

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const templateHeader = "msgid \"\"\n" +
	"msgstr \"\"\n" +
	"\"Content-Type: text/plain; charset=UTF-8\\n\"\n" +
	"\"Content-Transfer-Encoding: 8bit\\n\"\n" +
	"\n"

// WriteTemplate writes c to w as a gettext template: the fixed header, then
// for each entry in Entries order one "#." / "#:" comment pair per
// occurrence, the quoted msgid and an empty msgstr.
func WriteTemplate(w io.Writer, c *Catalog) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(templateHeader); err != nil {
		return err
	}
	for _, e := range c.Entries() {
		for _, occ := range e.Occurrences {
			fmt.Fprintf(bw, "#. %s\n#: %s\n", occ.Path, occ.File)
		}
		msgid, err := quote(e.MsgID)
		if err != nil {
			return err
		}
		fmt.Fprintf(bw, "msgid %s\nmsgstr \"\"\n\n", msgid)
	}
	return bw.Flush()
}

// quote renders s as a JSON string literal. Non-ASCII text stays raw UTF-8
// and <, > and & are left alone.
func quote(s string) (string, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("quote msgid: %w", err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}

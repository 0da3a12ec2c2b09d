// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

package users

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const samplePasswd = `root:x:0:0:root:/root:/bin/bash
daemon:x:1:1:daemon:/usr/sbin:/usr/sbin/nologin
# a comment some tool left behind
stacy:x:1000:1000:Stacy:/home/stacy:/bin/zsh
kiosk:x:1001:1001::/home/kiosk:/bin/bash
backup:x:34:34:backup:/var/backups:/usr/sbin/nologin
printing:x:1002:1002::/var/spool:/usr/bin/false
broken line without colons
shortline:x:notanumber
`

func TestParseSkipsMalformedLines(t *testing.T) {
	entries := Parse(strings.NewReader(samplePasswd))
	if len(entries) != 6 {
		t.Fatalf("expected 6 entries, got %d: %+v", len(entries), entries)
	}
	if entries[0].Name != "root" || entries[0].UID != 0 || entries[0].Shell != "/bin/bash" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}

func TestLoginNamesFiltersSystemAccounts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "passwd")
	if err := os.WriteFile(path, []byte(samplePasswd), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	names, err := LoginNames(path)
	if err != nil {
		t.Fatalf("LoginNames: %v", err)
	}
	want := []string{"kiosk", "stacy"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestLoginNamesMissingFile(t *testing.T) {
	if _, err := LoginNames(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

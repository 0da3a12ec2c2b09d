// Copyright (c) 2026 ToeiRei
// Cliffcrown - a greetd greeter
// This source code is licensed under the MIT license found in the LICENSE file.

// package users reads login candidates from the system user database. The
// greeter only completes usernames with them; greetd remains the authority
// on whether a login is allowed.
package users

import (
	"bufio"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// PasswdPath is the user database consulted for completion candidates.
const PasswdPath = "/etc/passwd"

// minLoginUID is the first UID distributions hand out to human users.
const minLoginUID = 1000

// Entry is one passwd line.
type Entry struct {
	Name  string
	UID   int
	Gecos string
	Home  string
	Shell string
}

// nologinShells are shells that mark an account as not interactively
// usable; such accounts make no sense on a login screen.
var nologinShells = map[string]bool{
	"/sbin/nologin":     true,
	"/usr/sbin/nologin": true,
	"/bin/false":        true,
	"/usr/bin/false":    true,
}

// Parse reads passwd-format lines. Malformed lines are skipped: the greeter
// must not die over a hand-edited /etc/passwd.
func Parse(r io.Reader) []Entry {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) < 7 {
			continue
		}
		uid, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:  parts[0],
			UID:   uid,
			Gecos: parts[4],
			Home:  parts[5],
			Shell: parts[6],
		})
	}
	return entries
}

// LoginNames returns the sorted login names of regular, interactively
// usable accounts from the file at path.
func LoginNames(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	for _, e := range Parse(f) {
		if e.UID < minLoginUID {
			continue
		}
		if nologinShells[e.Shell] {
			continue
		}
		names = append(names, e.Name)
	}
	sort.Strings(names)
	return names, nil
}

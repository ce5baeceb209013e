package pkgmgr

import (
	"bufio"
	"bytes"
	"encoding/json"
	"iter"
	"slices"
	"strings"
)

// Outdated describes one package with a newer version available.
type Outdated struct {
	Name    string `json:"name"`
	Current string `json:"current"`
	Wanted  string `json:"wanted"`
	Latest  string `json:"latest"`
}

// dependencyKeys are the sections of a listing tree that hold packages.
var dependencyKeys = []string{"dependencies", "devDependencies", "optionalDependencies"}

// parseListing extracts name -> version from the JSON printed by a list
// command. It understands a single tree object, an array of tree objects,
// and line-delimited event streams with a "tree" record.
func parseListing(data []byte) map[string]string {
	out := map[string]string{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return out
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err == nil {
		collectListing(doc, out)
		return out
	}
	for line := range jsonLines(data) {
		var rec any
		if json.Unmarshal(line, &rec) == nil {
			collectListing(rec, out)
		}
	}
	return out
}

func collectListing(doc any, out map[string]string) {
	switch v := doc.(type) {
	case []any:
		for _, item := range v {
			collectListing(item, out)
		}
	case map[string]any:
		if v["type"] == "tree" {
			collectTrees(v, out)
			return
		}
		for _, key := range dependencyKeys {
			deps, ok := v[key].(map[string]any)
			if !ok {
				continue
			}
			for name, raw := range deps {
				info, ok := raw.(map[string]any)
				if !ok {
					continue
				}
				if version, ok := info["version"].(string); ok {
					out[name] = version
				}
			}
		}
	}
}

// collectTrees reads a {"type":"tree","data":{"trees":[{"name":"x@1.0.0"}]}} record.
func collectTrees(rec map[string]any, out map[string]string) {
	data, _ := rec["data"].(map[string]any)
	trees, _ := data["trees"].([]any)
	for _, t := range trees {
		tree, _ := t.(map[string]any)
		label, _ := tree["name"].(string)
		if name, version, ok := splitNameVersion(label); ok {
			out[name] = version
		}
	}
}

// parseOutdated extracts outdated packages from the JSON printed by an
// outdated command: either an object keyed by package name, or a
// line-delimited stream carrying a "table" record.
func parseOutdated(data []byte) []Outdated {
	out := []Outdated{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return out
	}

	var byName map[string]struct {
		Current string `json:"current"`
		Wanted  string `json:"wanted"`
		Latest  string `json:"latest"`
	}
	if err := json.Unmarshal(data, &byName); err == nil {
		for name, info := range byName {
			out = append(out, Outdated{Name: name, Current: info.Current, Wanted: info.Wanted, Latest: info.Latest})
		}
		return sortOutdated(out)
	}

	for line := range jsonLines(data) {
		var rec struct {
			Type string `json:"type"`
			Data struct {
				Head []string   `json:"head"`
				Body [][]string `json:"body"`
			} `json:"data"`
		}
		if json.Unmarshal(line, &rec) != nil || rec.Type != "table" {
			continue
		}
		col := columnIndex(rec.Data.Head)
		for _, row := range rec.Data.Body {
			o := Outdated{
				Name:    cell(row, col("package")),
				Current: cell(row, col("current")),
				Wanted:  cell(row, col("wanted")),
				Latest:  cell(row, col("latest")),
			}
			if o.Name != "" {
				out = append(out, o)
			}
		}
	}
	return sortOutdated(out)
}

func sortOutdated(list []Outdated) []Outdated {
	slices.SortFunc(list, func(a, b Outdated) int { return strings.Compare(a.Name, b.Name) })
	return list
}

// columnIndex returns a lookup from lower-cased header to column, or -1.
func columnIndex(head []string) func(string) int {
	idx := make(map[string]int, len(head))
	for i, h := range head {
		idx[strings.ToLower(h)] = i
	}
	return func(name string) int {
		if i, ok := idx[name]; ok {
			return i
		}
		return -1
	}
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// jsonLines yields the non-empty lines of data.
func jsonLines(data []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		sc := bufio.NewScanner(bytes.NewReader(data))
		sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for sc.Scan() {
			line := bytes.TrimSpace(sc.Bytes())
			if len(line) == 0 {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}

// splitNameVersion splits "name@1.2.3" and "@scope/name@1.2.3".
func splitNameVersion(s string) (string, string, bool) {
	i := strings.LastIndex(s, "@")
	if i <= 0 || i == len(s)-1 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

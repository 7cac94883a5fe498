//go:build mage

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// statsRoots are the trees whose packages Stats reports on.
var statsRoots = []string{"cmd", "internal", "pkg"}

// pkgStats is one line of Stats output.
type pkgStats struct {
	Package  string `json:"package"`
	LOCProd  int    `json:"go_loc_prod"`
	LOCTest  int    `json:"go_loc_test"`
	TestFunc int    `json:"test_funcs"`
}

// Stats prints one JSON record per tcm package with production and test
// line counts and the number of top-level Test functions, then a total.
func Stats() error {
	byPkg := map[string]*pkgStats{}

	for _, root := range statsRoots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(path, ".go") {
				return nil
			}
			dir := filepath.ToSlash(filepath.Dir(path))
			ps, ok := byPkg[dir]
			if !ok {
				ps = &pkgStats{Package: dir}
				byPkg[dir] = ps
			}
			return ps.add(path)
		})
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("walking %s: %w", root, err)
		}
	}

	dirs := make([]string, 0, len(byPkg))
	for dir := range byPkg {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	total := pkgStats{Package: "total"}
	enc := json.NewEncoder(os.Stdout)
	for _, dir := range dirs {
		ps := byPkg[dir]
		total.LOCProd += ps.LOCProd
		total.LOCTest += ps.LOCTest
		total.TestFunc += ps.TestFunc
		if err := enc.Encode(ps); err != nil {
			return err
		}
	}
	if err := enc.Encode(total); err != nil {
		return fmt.Errorf("encoding total: %w", err)
	}
	return nil
}

// add counts the lines of one file into ps.
func (ps *pkgStats) add(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	isTest := strings.HasSuffix(path, "_test.go")
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if !isTest {
			ps.LOCProd++
			continue
		}
		ps.LOCTest++
		if strings.HasPrefix(scanner.Text(), "func Test") {
			ps.TestFunc++
		}
	}
	return scanner.Err()
}

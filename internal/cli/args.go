package cli

import (
	"fmt"
	"strconv"
	"strings"
)

func parseIndex(kind, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid %s index: %q", kind, s)
	}
	return n, nil
}

func parsePageSection(args []string) (int, int, error) {
	p, err := parseIndex("page", args[0])
	if err != nil {
		return 0, 0, err
	}
	s, err := parseIndex("section", args[1])
	if err != nil {
		return 0, 0, err
	}
	return p, s, nil
}

package reconcile

import (
	"fmt"
	"strings"
	"time"
)

// LookupErrorPolicy decides what happens to a pending record whose receipt
// lookup errored.
type LookupErrorPolicy string

const (
	PolicyFail LookupErrorPolicy = "fail"
	PolicyKeep LookupErrorPolicy = "keep"
)

func ParsePolicy(s string) (LookupErrorPolicy, error) {
	switch p := LookupErrorPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyFail, nil
	case PolicyFail, PolicyKeep:
		return p, nil
	default:
		return "", fmt.Errorf("unknown lookup error policy %q", s)
	}
}

const DefaultWindow = 24 * time.Hour

type Options struct {
	Window       time.Duration
	Policy       LookupErrorPolicy
	ChainTimeout time.Duration
}

// Summary counts what one scan did.
type Summary struct {
	Scanned   int
	Confirmed int
	Failed    int
	Pending   int
	Skipped   int // resolved by someone else mid-scan
	Errors    int
}

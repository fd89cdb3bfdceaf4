package target

import (
	"fmt"

	"go.uber.org/multierr"
)

// Kind selects which prober handles a target.
type Kind string

const (
	KindTCP  Kind = "tcp"
	KindHTTP Kind = "http"
)

// HTTPOptions customizes an HTTP check: instead of GET/200 the prober POSTs
// a body and compares against OK. Exactly one of Params or JSON must be set.
type HTTPOptions struct {
	Params map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
	JSON   any               `yaml:"json,omitempty" json:"json,omitempty"`
	OK     int               `yaml:"ok" json:"ok"`
}

// Target is one configured endpoint to check. Addr is host:port for tcp
// targets and a URL for http targets. Targets are built once from
// configuration and never mutated.
type Target struct {
	Kind   Kind         `yaml:"kind" json:"kind"`
	Desc   string       `yaml:"desc" json:"desc"`
	Addr   string       `yaml:"addr" json:"addr"`
	Custom *HTTPOptions `yaml:"custom,omitempty" json:"custom,omitempty"`
}

func (o *HTTPOptions) validate() error {
	hasParams := len(o.Params) > 0
	hasJSON := o.JSON != nil
	if hasParams && hasJSON {
		return fmt.Errorf("custom check: params and json are mutually exclusive")
	}
	if !hasParams && !hasJSON {
		return fmt.Errorf("custom check: one of params or json is required")
	}
	if o.OK < 100 || o.OK > 599 {
		return fmt.Errorf("custom check: ok must be a valid HTTP status, got %d", o.OK)
	}
	return nil
}

// Validate rejects descriptors the probers cannot act on.
func (t Target) Validate() error {
	if t.Desc == "" {
		return fmt.Errorf("desc is required")
	}
	if t.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	switch t.Kind {
	case KindTCP:
		if t.Custom != nil {
			return fmt.Errorf("custom is only valid for http targets")
		}
	case KindHTTP:
		if t.Custom != nil {
			return t.Custom.validate()
		}
	default:
		return fmt.Errorf("unknown kind %q (want tcp or http)", t.Kind)
	}
	return nil
}

// ValidateAll checks every target and reports all problems at once, each
// prefixed with the target's position and description.
func ValidateAll(targets []Target) error {
	var err error
	for i, t := range targets {
		if verr := t.Validate(); verr != nil {
			err = multierr.Append(err, fmt.Errorf("target %d (%s): %w", i, t.Desc, verr))
		}
	}
	return err
}

package debate

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below through errors.Is.
var (
	ErrConfiguration     = errors.New("invalid debate configuration")
	ErrContractViolation = errors.New("generator contract violation")
	ErrOutputSink        = errors.New("output sink failure")
)

// ConfigError is raised before any stage runs.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "debate: " + e.Reason
	}
	return fmt.Sprintf("debate: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

// ContractViolation reports a generator emitting output the engine cannot
// apply. The run is aborted.
type ContractViolation struct {
	Node   Node
	Round  int
	Record any
	Reason string
}

func (e *ContractViolation) Error() string {
	return fmt.Sprintf("debate: %s round %d: %s (record: %+v)", e.Node, e.Round, e.Reason, e.Record)
}

func (e *ContractViolation) Is(target error) bool { return target == ErrContractViolation }

// SinkError wraps a persistence failure. The in-memory result stays valid.
type SinkError struct {
	Sink string
	Path string
	Err  error
}

func (e *SinkError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("debate: sink %s: %v", e.Sink, e.Err)
	}
	return fmt.Sprintf("debate: sink %s: %s: %v", e.Sink, e.Path, e.Err)
}

func (e *SinkError) Unwrap() error { return e.Err }

func (e *SinkError) Is(target error) bool { return target == ErrOutputSink }

package logging

import "github.com/rs/zerolog"

// SensitiveDataHook flags log events whose message looks like it carries a secret.
// zerolog hooks cannot rewrite the message, so call sites still filter values;
// the flag makes a leak easy to find in the log file.
type SensitiveDataHook struct{}

// NewSensitiveDataHook creates a SensitiveDataHook.
func NewSensitiveDataHook() *SensitiveDataHook {
	return &SensitiveDataHook{}
}

// Run implements zerolog.Hook.
func (h *SensitiveDataHook) Run(e *zerolog.Event, _ zerolog.Level, msg string) {
	if ContainsSensitiveData(msg) {
		e.Bool("contains_filtered_data", true)
	}
}

var _ zerolog.Hook = (*SensitiveDataHook)(nil)

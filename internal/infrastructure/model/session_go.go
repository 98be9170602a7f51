//go:build !ORT

package model

import (
	"errors"

	"github.com/knights-analytics/hugot"

	"github.com/seqcls/verdict/internal/infrastructure/config"
)

// newSession uses the pure Go backend, which only runs on the CPU.
func newSession(cfg *config.ModelConfig) (*hugot.Session, Device, error) {
	if cfg.Device == string(DeviceCUDA) {
		return nil, DeviceCPU, errors.New("cuda requested but this binary was built without the ORT backend")
	}

	session, err := hugot.NewGoSession()
	return session, DeviceCPU, err
}
